// Package cmserrors defines the error taxonomy surfaced by the content
// service. Callers classify failures with errors.Is against the sentinels;
// none of these are retried automatically.
package cmserrors

import (
	"errors"

	"github.com/rotisserie/eris"
)

var (
	// ErrStoreUnavailable means the document store client failed to
	// initialize or connect.
	ErrStoreUnavailable = eris.New("store unavailable")

	// ErrNotFound means a mutation targeted an identifier with no
	// corresponding document. Reads report absence with a nil result
	// instead.
	ErrNotFound = eris.New("not found")

	// ErrValidation means required fields were missing or malformed.
	ErrValidation = eris.New("validation failed")

	// ErrUpload means an image failed to transcode or persist.
	ErrUpload = eris.New("upload failed")
)

func IsStoreUnavailable(err error) bool { return errors.Is(err, ErrStoreUnavailable) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsUpload(err error) bool           { return errors.Is(err, ErrUpload) }
