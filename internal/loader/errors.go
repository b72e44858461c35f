package loader

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDocumentUnavailable is returned by a single origin that could not provide a document
var ErrDocumentUnavailable = errors.New("document unavailable")

// LoadError reports a mandatory document that neither the remote nor the local origin could provide
type LoadError struct {
	Document string
	Remote   error
	Local    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: remote: %v; local: %v", e.Document, e.Remote, e.Local)
}

// Unwrap exposes the local error, which is the last one attempted
func (e *LoadError) Unwrap() error {
	return e.Local
}

// IsLoadError reports whether err carries a *LoadError
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
