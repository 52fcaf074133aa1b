package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"flowsite/cmserrors"
)

// BlobStore persists processed image bytes and serves them back by URL.
type BlobStore interface {
	// Put stores data under name and returns a publicly resolvable URL.
	Put(ctx context.Context, name string, data []byte) (string, error)
	// Delete removes the blob behind ref. Callers treat failures as
	// non-fatal cleanup errors.
	Delete(ctx context.Context, ref string) error
}

// LocalStore keeps blobs on the local filesystem under root and serves them
// from baseURL/uploads/.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	rel, err := safeRelPath(name)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", eris.Wrap(cmserrors.ErrUpload, err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrap(cmserrors.ErrUpload, err.Error())
	}
	return s.baseURL + "/uploads/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	name := ref
	if idx := strings.Index(ref, "/uploads/"); idx >= 0 {
		name = ref[idx+len("/uploads/"):]
	}
	rel, err := safeRelPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, rel)); err != nil {
		return eris.Wrap(err, "remove blob")
	}
	return nil
}

// safeRelPath rejects names that would escape the storage root.
func safeRelPath(name string) (string, error) {
	rel := filepath.FromSlash(name)
	if name == "" || filepath.IsAbs(rel) || strings.Contains(name, "..") {
		return "", eris.Wrap(cmserrors.ErrValidation, "invalid blob name")
	}
	return rel, nil
}
