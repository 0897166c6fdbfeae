package state

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"LocalPaint/internal/paint"
)

// Entry is one live paint session and the actor that owns it.
type Entry struct {
	ID        string
	Actor     *paint.Actor
	CreatedAt time.Time

	// Prompts receives the positions of text requests raised by the session.
	Prompts chan paint.Point

	changes  atomic.Uint64
	attached atomic.Bool
	cancel   context.CancelFunc
}

// Changes counts the pixel changes made so far. Hosts compare it across an
// actor call to decide whether to repaint.
func (e *Entry) Changes() uint64 { return e.changes.Load() }

func (e *Entry) markChanged() { e.changes.Add(1) }

// prompt keeps only the newest pending request when nobody is listening.
func (e *Entry) prompt(at paint.Point) {
	select {
	case e.Prompts <- at:
	default:
		select {
		case <-e.Prompts:
		default:
		}
		e.Prompts <- at
	}
}

// TryAttach claims the entry for a single interactive client.
func (e *Entry) TryAttach() bool { return e.attached.CompareAndSwap(false, true) }

func (e *Entry) Detach() { e.attached.Store(false) }

// Stop ends the entry's actor loop.
func (e *Entry) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

// ErrTooManySessions is returned by Start when the registry is full.
var ErrTooManySessions = errors.New("state: too many live sessions")

// Registry tracks the sessions served by this host.
type Registry struct {
	entries map[string]*Entry
	max     int
	mu      sync.RWMutex
}

// NewRegistry holds at most max live sessions; max <= 0 means no cap.
func NewRegistry(max int) *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		max:     max,
	}
}

// Start creates a session with opts, registers it under a new id and runs
// its actor until the entry is removed or ctx ends. The session reports
// changes and text requests to the returned entry.
func (r *Registry) Start(ctx context.Context, opts ...paint.Option) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.entries) >= r.max {
		return nil, ErrTooManySessions
	}

	ctx, cancel := context.WithCancel(ctx)
	e := &Entry{
		ID:        NewSessionID(),
		CreatedAt: time.Now(),
		Prompts:   make(chan paint.Point, 1),
		cancel:    cancel,
	}
	opts = append(opts,
		paint.WithOnChange(e.markChanged),
		paint.WithPrompter(paint.PrompterFunc(e.prompt)),
	)
	e.Actor = paint.NewActor(paint.NewSession(opts...))
	go e.Actor.Run(ctx)

	r.entries[e.ID] = e
	log.Printf("[STATE] Session started: %s (%d live)", e.ID, len(r.entries))
	return e, nil
}

func (r *Registry) Get(id string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Remove stops and forgets the session. It reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		e.Stop()
		log.Printf("[STATE] Session removed: %s", id)
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// IDs returns the live session ids, oldest first.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// StopAll stops every session.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		e.Stop()
		delete(r.entries, id)
	}
}
