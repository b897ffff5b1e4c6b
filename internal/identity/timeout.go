package identity

import (
	"context"
	"time"

	"github.com/dtroode/jobboard/internal/model"
)

type timeoutFetcher struct {
	next    model.IdentityFetcher
	timeout time.Duration
}

// WithTimeout bounds every fetch of next by timeout. A zero timeout returns next unchanged.
func WithTimeout(next model.IdentityFetcher, timeout time.Duration) model.IdentityFetcher {
	if timeout <= 0 {
		return next
	}
	return &timeoutFetcher{next: next, timeout: timeout}
}

func (f *timeoutFetcher) FetchIdentity(ctx context.Context, token string) (model.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.next.FetchIdentity(ctx, token)
}
