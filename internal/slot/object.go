package slot

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dtroode/jobboard/internal/model"
)

var _ model.TokenSlot = (*Object)(nil)

// Object keeps the token as a single object in an object store.
type Object struct {
	storage model.Storage
	key     string
}

// NewObject creates a slot stored as object key.
func NewObject(storage model.Storage, key string) *Object {
	if key == "" {
		key = DefaultKey
	}
	return &Object{storage: storage, key: key}
}

func (o *Object) Load(ctx context.Context) (string, bool, error) {
	exists, err := o.storage.Exists(ctx, o.key)
	if err != nil {
		return "", false, fmt.Errorf("failed to stat token object: %w", err)
	}
	if !exists {
		return "", false, nil
	}

	rc, err := o.storage.Download(ctx, o.key)
	if err != nil {
		return "", false, fmt.Errorf("failed to download token object: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("failed to read token object: %w", err)
	}

	token := strings.TrimSpace(string(data))
	return token, token != "", nil
}

func (o *Object) Store(ctx context.Context, token string) error {
	if err := o.storage.Upload(ctx, o.key, strings.NewReader(token)); err != nil {
		return fmt.Errorf("failed to upload token object: %w", err)
	}
	return nil
}

func (o *Object) Clear(ctx context.Context) error {
	exists, err := o.storage.Exists(ctx, o.key)
	if err != nil {
		return fmt.Errorf("failed to stat token object: %w", err)
	}
	if !exists {
		return nil
	}
	if err := o.storage.Delete(ctx, o.key); err != nil {
		return fmt.Errorf("failed to delete token object: %w", err)
	}
	return nil
}
