package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string](0)
	ch := bus.Subscribe()
	assert.Equal(t, 1, bus.Publish("hello"))
	assert.Equal(t, "hello", <-ch)
	bus.Unsubscribe(ch)
	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, bus.Publish("nobody"))
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := New[int](1)
	ch := bus.Subscribe()
	bus.Publish(1)
	assert.Zero(t, bus.Publish(2))
	assert.Equal(t, uint64(1), bus.Dropped())
	assert.Equal(t, 1, <-ch)
}

func TestBusClose(t *testing.T) {
	bus := New[int](0)
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	bus.Close()
	_, ok := <-ch1
	assert.False(t, ok)
	_, ok = <-ch2
	assert.False(t, ok)

	late := bus.Subscribe()
	_, ok = <-late
	assert.False(t, ok, "subscribe after close returns a closed channel")
	assert.NotPanics(t, func() { bus.Unsubscribe(ch1) })
	assert.Zero(t, bus.Publish(3))
}

func TestConsume(t *testing.T) {
	bus := New[int](0)
	sub := bus.Subscribe()
	var got []int
	done := make(chan struct{})
	go func() {
		Consume(context.Background(), sub, func(v int) { got = append(got, v) })
		close(done)
	}()
	bus.Publish(1)
	bus.Publish(2)
	bus.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume did not return after close")
	}
	require.Equal(t, []int{1, 2}, got)
}

func TestConsumeStopsOnContext(t *testing.T) {
	bus := New[int](0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		Consume(ctx, bus.Subscribe(), func(int) {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume ignored cancelled context")
	}
}
