package relay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPoller(t *testing.T) {
	t.Run("processes feed files on each tick", func(t *testing.T) {
		client := &fakeAPIClient{}
		processor, dir := newTestProcessor(t, client, 10)
		writeFeedFile(t, dir, customerFileName, customerFeedXML)

		poller := NewPoller(processor, 10*time.Millisecond, zap.NewNop())
		require.NoError(t, poller.Start(context.Background()))

		assert.Eventually(t, func() bool {
			client.mu.Lock()
			defer client.mu.Unlock()
			return len(client.customerCalls) > 0
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, poller.Stop(context.Background()))
	})

	t.Run("start is idempotent and stop without start is a no-op", func(t *testing.T) {
		client := &fakeAPIClient{}
		processor, _ := newTestProcessor(t, client, 10)
		poller := NewPoller(processor, time.Hour, zap.NewNop())

		require.NoError(t, poller.Stop(context.Background()))
		require.NoError(t, poller.Start(context.Background()))
		require.NoError(t, poller.Start(context.Background()))
		require.NoError(t, poller.Stop(context.Background()))
	})
}
