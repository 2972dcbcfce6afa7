package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32

	bus.Subscribe("unit.rented", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	bus.Subscribe("unit.rented", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("listener failure is swallowed")
	})
	bus.Subscribe("other", func(ctx context.Context, event Event) error {
		t.Error("listener for another event must not run")
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "unit.rented"})
	bus.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestBus_ListenerOutlivesCancelledPublisher(t *testing.T) {
	bus := New(zap.NewNop())
	var ctxErr error

	bus.Subscribe("e", func(ctx context.Context, event Event) error {
		ctxErr = ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{name: "e"})
	bus.Wait()

	assert.NoError(t, ctxErr)
}

func TestBus_PanickingListenerIsRecovered(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Subscribe("boom", func(ctx context.Context, event Event) error {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "boom"})
		bus.Wait()
	})
}
