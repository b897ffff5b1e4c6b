package testutil

import (
	"context"
	"sync"

	"github.com/dtroode/jobboard/internal/model"
)

// MemorySlot is an in-memory TokenSlot.
type MemorySlot struct {
	mu       sync.Mutex
	token    string
	ok       bool
	LoadErr  error
	StoreErr error
	ClearErr error
}

// NewMemorySlot returns a slot holding token, or an empty slot when token is "".
func NewMemorySlot(token string) *MemorySlot {
	return &MemorySlot{token: token, ok: token != ""}
}

func (s *MemorySlot) Load(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return "", false, s.LoadErr
	}
	return s.token, s.ok, nil
}

func (s *MemorySlot) Store(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.token, s.ok = token, true
	return nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.token, s.ok = "", false
	return nil
}

// Token returns the stored token.
func (s *MemorySlot) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.ok
}

// Navigator records navigation requests.
type Navigator struct {
	mu       sync.Mutex
	requests []model.NavigationRequest
	Err      error
}

func (n *Navigator) Navigate(_ context.Context, req model.NavigationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
	return n.Err
}

// Requests returns a copy of the recorded requests.
func (n *Navigator) Requests() []model.NavigationRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.NavigationRequest(nil), n.requests...)
}

// Targets returns the targets of the recorded requests in order.
func (n *Navigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	targets := make([]string, 0, len(n.requests))
	for _, r := range n.requests {
		targets = append(targets, r.Target)
	}
	return targets
}

// FetcherFunc adapts a function to model.IdentityFetcher.
type FetcherFunc func(ctx context.Context, token string) (model.Identity, error)

func (f FetcherFunc) FetchIdentity(ctx context.Context, token string) (model.Identity, error) {
	return f(ctx, token)
}
