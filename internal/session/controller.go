// Package session implements the client-side session controller: it owns the
// bearer token and the identity derived from it, and turns session changes
// into navigation requests for the hosting application.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

// Deps are the collaborators of a Controller.
type Deps struct {
	Slot      model.TokenSlot
	Decoder   model.TokenDecoder
	Fetcher   model.IdentityFetcher
	Navigator model.Navigator
	Logger    *logger.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithRoutes overrides the location table.
func WithRoutes(routes Routes) Option {
	return func(c *Controller) { c.routes = routes }
}

// WithLocation sets the location the host is at when the controller starts.
func WithLocation(location string) Option {
	return func(c *Controller) { c.location = location }
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller maintains the Session. All operations are safe for concurrent use.
// Backend round-trips and slot I/O run without holding the lock; a result is
// dropped if another operation started in the meantime.
type Controller struct {
	slot      model.TokenSlot
	decoder   model.TokenDecoder
	fetcher   model.IdentityFetcher
	navigator model.Navigator
	logger    *logger.Logger
	routes    Routes
	now       func() time.Time

	mu         sync.Mutex
	identity   *model.Identity
	token      string
	loading    bool
	location   string
	generation uint64
	inflight   *model.NavigationRequest
	lastNavID  uint64
	started    bool
	disposed   bool

	listeners    map[uint64]func(model.Session)
	lastListener uint64
	clearGen     uint64

	// slotMu orders slot writes; a write older than slotGen is dropped.
	slotMu  sync.Mutex
	slotGen uint64
}

// New creates an uninitialized Controller. Call Start to restore a persisted session.
func New(deps Deps, opts ...Option) *Controller {
	c := &Controller{
		slot:      deps.Slot,
		decoder:   deps.Decoder,
		fetcher:   deps.Fetcher,
		navigator: deps.Navigator,
		logger:    deps.Logger.With("component", "session"),
		routes:    DefaultRoutes(),
		now:       time.Now,
		listeners: make(map[uint64]func(model.Session)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// outbox carries the side effects of a state change out of the critical section.
type outbox struct {
	clearGen  uint64
	nav       *model.NavigationRequest
	session   model.Session
	listeners []func(model.Session)
}

// Start reads the persisted token. Without one the controller becomes
// anonymous without navigating; otherwise the token is validated as in Refresh.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.disposed || c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.establish(ctx, false)
}

// Refresh re-reads the persisted token and re-validates it against the backend.
// Every failure ends in the logged-out state; the returned error is always nil.
func (c *Controller) Refresh(ctx context.Context) error {
	c.establish(ctx, true)
	return nil
}

func (c *Controller) establish(ctx context.Context, logoutIfMissing bool) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.loading = true
	out := c.outboxLocked(nil)
	c.mu.Unlock()
	c.dispatch(ctx, out)

	token, ok, err := c.slot.Load(ctx)
	if err != nil {
		c.logger.Error("Session controller: failed to read token slot", "error", err.Error())
		// The persisted token may still be valid, so it is kept in the slot.
		c.settle(ctx, gen, func() *model.NavigationRequest {
			c.clearLocked()
			if logoutIfMissing {
				return c.requestLocked(c.routes.Login)
			}
			return nil
		})
		return
	}

	if !ok || token == "" {
		c.settle(ctx, gen, func() *model.NavigationRequest {
			if logoutIfMissing {
				return c.logoutLocked()
			}
			c.clearLocked()
			return nil
		})
		return
	}

	if _, err := c.decodeValid(token); err != nil {
		c.logger.Warn("Session controller: persisted token rejected", "error", err.Error())
		c.settle(ctx, gen, func() *model.NavigationRequest { return c.logoutLocked() })
		return
	}

	identity, err := c.fetcher.FetchIdentity(ctx, token)
	if err == nil && identity.ID == "" {
		err = fmt.Errorf("%w: empty identity", model.ErrIdentityFetch)
	}

	c.settle(ctx, gen, func() *model.NavigationRequest {
		if err != nil {
			c.logger.Warn("Session controller: identity validation failed", "error", err.Error())
			return c.logoutLocked()
		}
		c.identity = &identity
		c.token = token
		c.loading = false
		c.logger.Info("Session controller: session restored",
			"user_id", identity.ID,
			"role", string(identity.Role))
		return c.evaluateLocked()
	})
}

// settle applies fn only if no other operation started since gen was taken.
func (c *Controller) settle(ctx context.Context, gen uint64, fn func() *model.NavigationRequest) {
	c.mu.Lock()
	if c.disposed || c.generation != gen {
		c.mu.Unlock()
		c.logger.Debug("Session controller: discarding stale result", "generation", gen)
		return
	}
	nav := fn()
	out := c.outboxLocked(nav)
	c.mu.Unlock()
	c.dispatch(ctx, out)
}

// Login persists a freshly issued token and populates the session from its payload.
// preferredRoute, when set, is honoured unless the identity must change its password.
func (c *Controller) Login(ctx context.Context, token, preferredRoute string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	claims, err := c.decodeValid(token)
	if err != nil {
		c.logger.Warn("Session controller: login token rejected", "error", err.Error())
		c.settle(ctx, gen, func() *model.NavigationRequest { return c.logoutLocked() })
		return
	}

	c.writeSlot(gen, func() error { return c.slot.Store(ctx, token) }, "Session controller: failed to persist token")

	c.settle(ctx, gen, func() *model.NavigationRequest {
		identity := claims.Identity()
		c.identity = &identity
		c.token = token
		c.loading = false

		c.logger.Info("Session controller: logged in",
			"user_id", identity.ID,
			"role", string(identity.Role),
			"must_change_password", identity.MustChangePassword)

		if preferredRoute != "" && !identity.MustChangePassword {
			return c.requestLocked(preferredRoute)
		}
		return c.evaluateLocked()
	})
}

// Logout clears the persisted token and the session and sends the host to the login location.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	nav := c.logoutLocked()
	out := c.outboxLocked(nav)
	c.mu.Unlock()
	c.dispatch(ctx, out)
}

// UpdateProfile merges patch into the cached identity. It never calls the
// backend, persists or navigates, and does nothing while unauthenticated.
func (c *Controller) UpdateProfile(patch model.ProfilePatch) {
	c.mu.Lock()
	if c.disposed || !c.authenticatedLocked() {
		c.mu.Unlock()
		return
	}
	patch.Apply(c.identity)
	out := c.outboxLocked(nil)
	c.mu.Unlock()
	c.dispatch(context.Background(), out)
}

// LocationChanged reports that the host is now at location. It completes the
// in-flight navigation request and re-evaluates the routing policy.
func (c *Controller) LocationChanged(ctx context.Context, location string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.location = location
	c.inflight = nil

	var nav *model.NavigationRequest
	if c.authenticatedLocked() && !c.loading {
		nav = c.evaluateLocked()
	}
	out := c.outboxLocked(nav)
	c.mu.Unlock()
	c.dispatch(ctx, out)
}

// Session returns a snapshot of the current session.
func (c *Controller) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Location returns the last location reported by the host.
func (c *Controller) Location() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

// Subscribe registers fn to be called with a snapshot after every session change.
func (c *Controller) Subscribe(fn func(model.Session)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return func() {}
	}
	c.lastListener++
	id := c.lastListener
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Dispose tears the controller down. Pending results are discarded and later calls are no-ops.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.generation++
	c.inflight = nil
	c.listeners = make(map[uint64]func(model.Session))
}

func (c *Controller) decodeValid(token string) (model.Claims, error) {
	claims, err := c.decoder.Decode(token)
	if err != nil {
		if !errors.Is(err, model.ErrMalformedToken) {
			err = fmt.Errorf("%w: %v", model.ErrMalformedToken, err)
		}
		return model.Claims{}, err
	}
	if claims.Expired(c.now()) {
		return model.Claims{}, model.ErrExpiredToken
	}
	return claims, nil
}

// logoutLocked resets the session and schedules the slot to be cleared once
// the lock is released.
func (c *Controller) logoutLocked() *model.NavigationRequest {
	c.generation++
	c.clearGen = c.generation
	if c.identity != nil {
		c.logger.Info("Session controller: logged out", "user_id", c.identity.ID)
	}
	c.clearLocked()
	return c.requestLocked(c.routes.Login)
}

func (c *Controller) clearLocked() {
	c.identity = nil
	c.token = ""
	c.loading = false
}

func (c *Controller) authenticatedLocked() bool {
	return c.identity != nil && c.token != ""
}

// effectiveLocationLocked is where the host is, or is about to be.
func (c *Controller) effectiveLocationLocked() string {
	if c.inflight != nil {
		return c.inflight.Target
	}
	return c.location
}

func (c *Controller) evaluateLocked() *model.NavigationRequest {
	if !c.authenticatedLocked() {
		return nil
	}
	target := Resolve(*c.identity, c.effectiveLocationLocked(), c.routes)
	return c.requestLocked(target)
}

// requestLocked issues a navigation to target unless the host is already at,
// or already heading to, target. A new request supersedes the in-flight one.
func (c *Controller) requestLocked(target string) *model.NavigationRequest {
	if target == "" || cleanPath(target) == cleanPath(c.effectiveLocationLocked()) {
		return nil
	}
	c.lastNavID++
	req := model.NavigationRequest{ID: c.lastNavID, Target: target}
	c.inflight = &req
	return &req
}

func (c *Controller) snapshotLocked() model.Session {
	s := model.Session{Token: c.token, IsLoading: c.loading}
	if c.identity != nil {
		id := *c.identity
		s.Identity = &id
	}
	return s
}

func (c *Controller) outboxLocked(nav *model.NavigationRequest) outbox {
	out := outbox{clearGen: c.clearGen, nav: nav, session: c.snapshotLocked()}
	c.clearGen = 0
	for _, fn := range c.listeners {
		out.listeners = append(out.listeners, fn)
	}
	return out
}

// writeSlot runs write unless a slot write of a later generation already happened.
func (c *Controller) writeSlot(gen uint64, write func() error, failure string) {
	c.slotMu.Lock()
	defer c.slotMu.Unlock()
	if gen < c.slotGen {
		c.logger.Debug("Session controller: skipping outdated slot write", "generation", gen)
		return
	}
	c.slotGen = gen
	if err := write(); err != nil {
		c.logger.Error(failure, "error", err.Error())
	}
}

func (c *Controller) dispatch(ctx context.Context, out outbox) {
	if out.clearGen != 0 {
		c.writeSlot(out.clearGen, func() error { return c.slot.Clear(ctx) }, "Session controller: failed to clear token slot")
	}
	if out.nav != nil {
		c.logger.Debug("Session controller: navigating", "id", out.nav.ID, "target", out.nav.Target)
		if err := c.navigator.Navigate(ctx, *out.nav); err != nil {
			c.logger.Error("Session controller: navigation failed",
				"target", out.nav.Target,
				"error", err.Error())
			c.mu.Lock()
			if c.inflight != nil && c.inflight.ID == out.nav.ID {
				c.inflight = nil
			}
			c.mu.Unlock()
		}
	}
	for _, fn := range out.listeners {
		fn(out.session)
	}
}
