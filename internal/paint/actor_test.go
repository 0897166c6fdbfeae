package paint

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_Serialises(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSession()
	a := NewActor(s)
	go a.Run(ctx)

	var initErr error
	require.NoError(t, a.Do(ctx, func(s *Session) {
		initErr = s.Init(64, 64)
	}))
	require.NoError(t, initErr)

	// Unsynchronised counting is safe only because every op runs on the
	// actor goroutine.
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, a.Do(ctx, func(s *Session) {
				count++
				s.PointerDown(Pt(float64(i), 1))
				s.PointerMove(Pt(float64(i), 20))
				s.PointerUp(Pt(float64(i), 20))
			}))
		}(i)
	}
	wg.Wait()

	var undo int
	require.NoError(t, a.Do(ctx, func(s *Session) { undo = s.History().UndoLen() }))
	assert.Equal(t, 50, count)
	assert.Equal(t, 50, undo)
}

func TestActor_Stopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := NewActor(NewSession())
	go a.Run(ctx)
	cancel()
	<-a.Done()

	err := a.Do(context.Background(), func(*Session) {})
	assert.ErrorIs(t, err, ErrActorStopped)
}

func TestActor_CallerContext(t *testing.T) {
	// Nobody runs the actor, so only the caller's context can end the wait.
	a := NewActor(NewSession())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Do(ctx, func(*Session) {}), context.Canceled)
}
