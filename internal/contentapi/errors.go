package contentapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is matched by an UpstreamError carrying a 404.
	ErrNotFound = errors.New("content not found")

	// ErrInvalidPath is returned for request paths that would escape the
	// upstream endpoint.
	ErrInvalidPath = errors.New("invalid content path")
)

// UpstreamError is a non-2xx answer from the content API.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("content api: status %d", e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match upstream 404s.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
