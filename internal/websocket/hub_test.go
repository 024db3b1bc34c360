package websocket

import (
	"context"
	"testing"
	"time"

	"smart-pdf-assistant/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run(ctx)
	return h
}

func fakeClient(h *Hub, buffer int) *Client {
	return &Client{Hub: h, ID: uuid.New(), Send: make(chan []byte, buffer)}
}

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	h := startHub(t)
	a, b := fakeClient(h, 4), fakeClient(h, 4)
	h.register <- a
	h.register <- b
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	h.Broadcast([]byte(`{"type":"session"}`))

	assert.Equal(t, `{"type":"session"}`, string(<-a.Send))
	assert.Equal(t, `{"type":"session"}`, string(<-b.Send))
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := fakeClient(h, 1)
	h.register <- c
	h.unregister <- c

	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	_, ok := <-c.Send
	assert.False(t, ok)

	// A second unregister for the same client must not panic on a closed channel.
	h.unregister <- c
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := startHub(t)
	slow := fakeClient(h, 1)
	h.register <- slow
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	h.Broadcast([]byte(`1`))
	h.Broadcast([]byte(`2`))

	assert.Equal(t, 0, h.ClientCount())
	assert.Equal(t, `1`, string(<-slow.Send))
	_, ok := <-slow.Send
	assert.False(t, ok)
}

func TestHub_StoppedHubDoesNotBlockClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run(ctx)

	c := fakeClient(h, 1)
	require.True(t, h.join(c))
	cancel()

	select {
	case <-h.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	left := make(chan bool, 1)
	go func() {
		h.leave(c)
		left <- h.join(fakeClient(h, 1))
	}()

	select {
	case joined := <-left:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("leave blocked after the hub stopped")
	}
}
