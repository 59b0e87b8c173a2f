package urlnorm

import (
	"errors"
	"fmt"
)

// ErrInvalidURL is returned when an operation receives
// a string that is not a valid URL.
//
// Use errors.Is to check for it:
//
//   if errors.Is(err, urlnorm.ErrInvalidURL) {
//     // ...
//   }
//
var ErrInvalidURL = errors.New("invalid url")

// Error represents a failed operation.
//
// The error records the operation, the URL it received and
// the underlying cause, which is ErrInvalidURL when the URL
// did not pass validation.
type Error struct {
	Op  string
	URL string
	Err error
}

// Error implementation.
func (err *Error) Error() string {
	return fmt.Sprintf("urlnorm: %s %q - %s", err.Op, err.URL, err.Err)
}

// Unwrap returns the underlying error.
func (err *Error) Unwrap() error {
	return err.Err
}

// Invalid returns an invalid URL error.
func invalid(op, uri string) error {
	return &Error{Op: op, URL: uri, Err: ErrInvalidURL}
}
