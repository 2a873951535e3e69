package domain

import "errors"

// ErrTimeout reports that the recommendation deadline passed before both
// completion calls finished. Callers should treat it as retryable.
var ErrTimeout = errors.New("domain: recommendation deadline exceeded")

// ErrNotFound reports a missing record or asset.
var ErrNotFound = errors.New("domain: not found")
