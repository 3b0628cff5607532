package journal

import (
	"context"
	"sync"

	"github.com/roach88/craftkit/internal/crafting"
)

// Recorder adapts a Store to crafting.Observer.
//
// Observe has no error return, so the first write failure is kept and
// every later event is dropped. Callers check Err after each pass.
type Recorder struct {
	store *Store
	ctx   context.Context

	mu  sync.Mutex
	err error
}

// NewRecorder returns an observer that writes every event to s.
func NewRecorder(ctx context.Context, s *Store) *Recorder {
	return &Recorder{store: s, ctx: ctx}
}

// Observe implements crafting.Observer.
func (r *Recorder) Observe(ev crafting.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	r.err = r.store.WriteEvent(r.ctx, ev)
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
