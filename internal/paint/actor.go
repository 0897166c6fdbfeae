package paint

import (
	"context"
	"errors"
)

// ErrActorStopped is returned by Do once the actor's Run loop has exited.
var ErrActorStopped = errors.New("paint: session actor stopped")

// Actor gives a Session a single owner goroutine. Every caller, whatever
// goroutine it runs on, submits work through Do; work runs one item at a
// time in submission order, so pointer input, keyboard shortcuts and
// exports can never interleave.
type Actor struct {
	session *Session
	ops     chan func(*Session)
	done    chan struct{}
}

func NewActor(s *Session) *Actor {
	return &Actor{
		session: s,
		ops:     make(chan func(*Session)),
		done:    make(chan struct{}),
	}
}

// Run executes submitted work until ctx is cancelled.
func (a *Actor) Run(ctx context.Context) {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-a.ops:
			op(a.session)
		}
	}
}

// Do runs fn on the owner goroutine and waits for it to return.
func (a *Actor) Do(ctx context.Context, fn func(*Session)) error {
	finished := make(chan struct{})
	op := func(s *Session) {
		defer close(finished)
		fn(s)
	}
	select {
	case a.ops <- op:
	case <-a.done:
		return ErrActorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Run only exits between ops, so a received op always completes.
	<-finished
	return nil
}

// Done is closed when Run returns.
func (a *Actor) Done() <-chan struct{} { return a.done }
