package ports

import (
	"errors"
	"fmt"
)

// ErrUpstream indicates a non-success response from an external backend.
var ErrUpstream = errors.New("upstream failure")

// UpstreamError carries the upstream status or message for a failed
// backend call. It is never retried by this core.
type UpstreamError struct {
	Backend string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Backend == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
