package state

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken is returned by operations that need a session before one exists.
	ErrNoToken = errors.New("no token found")
	// ErrSuperseded is returned to a request whose result was discarded because
	// a newer request of the same kind started or its state was cleared.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// ValidationError reports input rejected before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthRequiredError reports a protected operation attempted without a token.
type AuthRequiredError struct {
	Action string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("Please login to %s", e.Action)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuthRequired reports whether err is an AuthRequiredError.
func IsAuthRequired(err error) bool {
	var a *AuthRequiredError
	return errors.As(err, &a)
}
