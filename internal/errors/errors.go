package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal
var (
	// Backend errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrBadRequest         = errors.New("bad request")
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Session errors
	ErrInvalidRole     = errors.New("invalid role")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrSessionNotReady = errors.New("session not ready")

	// Token errors
	ErrNoRefreshToken = errors.New("no refresh token")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
