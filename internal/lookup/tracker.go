package lookup

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"cinelookup/internal/services"
)

// Tracker implements last-requested-wins. Only the most recent token is
// current; Begin cancels the context of the request it replaces.
type Tracker struct {
	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Begin issues a new token and returns a context bound to it. The previous
// request's context is cancelled.
func (t *Tracker) Begin(ctx context.Context) (context.Context, string) {
	token := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	ctx = services.WithRequestID(ctx, token)

	t.mu.Lock()
	previous := t.cancel
	t.current = token
	t.cancel = cancel
	t.mu.Unlock()

	if previous != nil {
		previous()
	}
	return ctx, token
}

// Current reports whether token belongs to the latest request.
func (t *Tracker) Current(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token != "" && token == t.current
}

// Release cancels the current request if token is still current.
func (t *Tracker) Release(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token == t.current && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
