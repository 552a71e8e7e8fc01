package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// NotFound builds an error matching ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// BadRequest builds an error matching ErrBadRequest.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBadRequest)
}

// FeedWriteError reports that a mutation was stored but its feed event was not.
type FeedWriteError struct {
	Op  string
	Err error
}

func (e *FeedWriteError) Error() string {
	return fmt.Sprintf("%s succeeded but feed write failed: %v", e.Op, e.Err)
}

func (e *FeedWriteError) Unwrap() error {
	return e.Err
}

// IsFeedWriteError reports whether err carries a FeedWriteError.
func IsFeedWriteError(err error) bool {
	var fwe *FeedWriteError
	return errors.As(err, &fwe)
}
