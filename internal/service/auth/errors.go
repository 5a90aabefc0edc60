// Package auth provides token issuing/validation and password hashing for
// the API's authentication layer.
package auth

import "errors"

// Authentication errors.
var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials is returned when a login attempt fails. The
	// same error covers unknown usernames and wrong passwords so the API
	// does not reveal which one was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
