package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowsite/cmserrors"
	"flowsite/config"
)

type fakeBlobStore struct {
	putName string
	putData []byte
	deleted []string
	putErr  error
	delErr  error
}

func (f *fakeBlobStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.putName = name
	f.putData = data
	return "http://cdn.test/uploads/" + name, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return f.delErr
}

func testUploader(store BlobStore) *Uploader {
	return NewUploader(store, config.UploadsConfig{
		MaxWidth:         1200,
		MaxHeight:        800,
		JPEGQuality:      85,
		RecompressOverKB: 500,
	})
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadTranscodesAndResizesLargeImage(t *testing.T) {
	store := &fakeBlobStore{}
	u := testUploader(store)

	data := encodePNG(t, 1600, 1200)
	url, err := u.Upload(context.Background(), bytes.NewReader(data), "Team Photo.png", "image/png", "entry-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.test/uploads/entry-1/team-photo-"))
	assert.True(t, strings.HasSuffix(store.putName, ".jpg"))

	stored, format, err := image.Decode(bytes.NewReader(store.putData))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	b := stored.Bounds()
	assert.LessOrEqual(t, b.Dx(), 1200)
	assert.LessOrEqual(t, b.Dy(), 800)
	// 1600x1200 fits 1200x800 at scale 2/3 -> 1066x800
	assert.Equal(t, 800, b.Dy())
	assert.Equal(t, 1066, b.Dx())
}

func TestUploadKeepsSmallJPEGUntouched(t *testing.T) {
	store := &fakeBlobStore{}
	u := testUploader(store)

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	src := buf.Bytes()

	_, err := u.Upload(context.Background(), bytes.NewReader(src), "logo.jpg", "image/jpeg", "entry-2")
	require.NoError(t, err)
	assert.Equal(t, src, store.putData)
}

func TestUploadNeverUpscalesSmallImages(t *testing.T) {
	store := &fakeBlobStore{}
	u := testUploader(store)

	data := encodePNG(t, 300, 200)
	_, err := u.Upload(context.Background(), bytes.NewReader(data), "icon.png", "image/png", "entry-3")
	require.NoError(t, err)

	stored, _, err := image.Decode(bytes.NewReader(store.putData))
	require.NoError(t, err)
	assert.Equal(t, 300, stored.Bounds().Dx())
	assert.Equal(t, 200, stored.Bounds().Dy())
}

func TestUploadRejectsUndecodableData(t *testing.T) {
	store := &fakeBlobStore{}
	u := testUploader(store)

	_, err := u.Upload(context.Background(), strings.NewReader("not an image"), "x.png", "image/png", "entry-4")
	require.Error(t, err)
	assert.True(t, cmserrors.IsUpload(err))
	assert.Empty(t, store.putName)
}

func TestUploadPropagatesStoreFailure(t *testing.T) {
	store := &fakeBlobStore{putErr: eris.Wrap(cmserrors.ErrUpload, "disk full")}
	u := testUploader(store)

	data := encodePNG(t, 10, 10)
	_, err := u.Upload(context.Background(), bytes.NewReader(data), "a.png", "image/png", "entry-5")
	require.Error(t, err)
	assert.True(t, cmserrors.IsUpload(err))
}

func TestDeleteForwardsToStore(t *testing.T) {
	store := &fakeBlobStore{}
	u := testUploader(store)

	require.NoError(t, u.Delete(context.Background(), "http://cdn.test/uploads/entry-1/a.jpg"))
	assert.Equal(t, []string{"http://cdn.test/uploads/entry-1/a.jpg"}, store.deleted)
}
