package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/event"
)

func TestEventBus_SyncAndAsync(t *testing.T) {
	eb := New(nil)

	var received string
	handler := func(data string) { received = data }
	require.NoError(t, eb.Subscribe(event.EventType("sync"), handler))
	assert.True(t, eb.HasCallback(event.EventType("sync")))

	eb.Publish(event.EventType("sync"), "hello world")
	assert.Equal(t, "hello world", received)

	var (
		mu    sync.Mutex
		async []int
	)
	require.NoError(t, eb.SubscribeAsync(event.EventType("async"), func(n int) {
		mu.Lock()
		async = append(async, n)
		mu.Unlock()
	}, true))

	eb.Publish(event.EventType("async"), 1)
	eb.Publish(event.EventType("async"), 2)
	eb.WaitAsync()

	mu.Lock()
	assert.ElementsMatch(t, []int{1, 2}, async)
	mu.Unlock()
	assert.Equal(t, uint64(3), eb.Published())
}

func TestEventBus_Unsubscribe(t *testing.T) {
	eb := New(nil)
	calls := 0
	handler := func() { calls++ }

	require.NoError(t, eb.Subscribe(event.EventType("t"), handler))
	eb.Publish(event.EventType("t"))
	require.NoError(t, eb.Unsubscribe(event.EventType("t"), handler))
	eb.Publish(event.EventType("t"))

	assert.Equal(t, 1, calls)
	assert.False(t, eb.HasCallback(event.EventType("t")))
}
