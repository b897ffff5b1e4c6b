package model

import "context"

// NavigationRequest asks the host application to move to Target.
// ID correlates the request with its completion.
type NavigationRequest struct {
	ID     uint64
	Target string
}

// Navigator performs navigation on behalf of the session controller.
// The host reports completion through Controller.LocationChanged.
type Navigator interface {
	Navigate(ctx context.Context, req NavigationRequest) error
}

// IdentityFetcher resolves a bearer token to the current identity via the backend.
type IdentityFetcher interface {
	FetchIdentity(ctx context.Context, token string) (Identity, error)
}
