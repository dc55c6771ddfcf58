// Package account provides use cases for user registration and login, and for
// resolving session credentials back to stored accounts.
package account

import "errors"

// Sentinel errors for account use case operations.
var (
	// ErrDuplicateIdentity indicates that the username is already registered.
	ErrDuplicateIdentity = errors.New("username already registered")

	// ErrInvalidCredentials indicates a failed login. It deliberately does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
