package model

import "errors"

var (
	// ErrMalformedToken is returned when a token cannot be decoded or lacks a principal id.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken is returned when a token expiry is at or before the current time.
	ErrExpiredToken = errors.New("token expired")
	// ErrIdentityFetch is returned when the backend cannot resolve a token to an identity.
	ErrIdentityFetch = errors.New("identity fetch failed")
)
