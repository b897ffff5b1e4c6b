package model

import (
	"context"
	"io"
)

// Storage is a flat object store.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TokenSlot is a durable key-value slot holding exactly one bearer token.
type TokenSlot interface {
	Load(ctx context.Context) (token string, ok bool, err error)
	Store(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
