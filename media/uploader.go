// Package media normalizes uploaded images and persists them to blob
// storage, returning retrievable references.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"flowsite/cmserrors"
	"flowsite/config"
	"flowsite/content"
	"flowsite/logger"
)

// Uploader transcodes images to a bounded JPEG and stores the result.
// No retry or backoff is built in; callers own that decision.
type Uploader struct {
	store          BlobStore
	maxWidth       int
	maxHeight      int
	quality        int
	recompressOver int
}

func NewUploader(store BlobStore, cfg config.UploadsConfig) *Uploader {
	return &Uploader{
		store:          store,
		maxWidth:       cfg.MaxWidth,
		maxHeight:      cfg.MaxHeight,
		quality:        cfg.JPEGQuality,
		recompressOver: cfg.RecompressOverKB * 1024,
	}
}

// Upload reads an image, normalizes it and stores it under a name
// namespaced by ownerID with a randomized suffix. Returns the public URL.
//
// JPEG sources at or under the recompress threshold are stored untouched.
// Everything else is decoded, resized so neither dimension exceeds the
// configured bound (aspect ratio preserved, never upscaled) and re-encoded
// at the configured quality.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, originalName, contentType, ownerID string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", eris.Wrap(cmserrors.ErrUpload, err.Error())
	}

	isJPEG := contentType == "image/jpeg" || contentType == "image/jpg"
	if !isJPEG || len(data) > u.recompressOver {
		data, err = u.transcode(data)
		if err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("%s/%s-%s.jpg", ownerID, baseSlug(originalName), uuid.NewString()[:8])
	url, err := u.store.Put(ctx, name, data)
	if err != nil {
		return "", err
	}
	return url, nil
}

// Delete removes the blob behind ref. Failures are logged and returned, but
// callers performing cascade cleanup proceed regardless.
func (u *Uploader) Delete(ctx context.Context, ref string) error {
	if err := u.store.Delete(ctx, ref); err != nil {
		logger.Log.Warnf("image delete failed ref=%s err=%v", ref, err)
		return err
	}
	return nil
}

func (u *Uploader) transcode(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(cmserrors.ErrUpload, "decode image: "+err.Error())
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > u.maxWidth || h > u.maxHeight {
		newW, newH := w, h
		if newW > u.maxWidth {
			newH = newH * u.maxWidth / newW
			newW = u.maxWidth
		}
		if newH > u.maxHeight {
			newW = newW * u.maxHeight / newH
			newH = u.maxHeight
		}
		if newW < 1 {
			newW = 1
		}
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: u.quality}); err != nil {
		return nil, eris.Wrap(cmserrors.ErrUpload, "encode jpeg: "+err.Error())
	}
	return buf.Bytes(), nil
}

// baseSlug turns the original filename (without extension) into a URL-safe
// slug for the stored object name.
func baseSlug(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return content.GenerateSlug(base)
}
