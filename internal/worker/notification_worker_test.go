package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/music-library/internal/config"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/observability"
	"github.com/spec-kit/music-library/internal/service"
)

func TestStartNotificationWorkerSubscribesHandlers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	notifications := service.NewNotificationService(dispatcher, zap.NewNop(), metrics, config.NotificationConfig{
		WebhookURL: "http://hooks.local/favorites",
	})

	StartNotificationWorker(notifications)
	StartNotificationWorker(nil)

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventFavoriteAdded, "acc-1", events.FavoritePayload{ItemID: "trk-1"})))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventCatalogChanged, "acc-1", nil)))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Events[string(events.EventFavoriteAdded)])
	assert.Equal(t, int64(1), snap.Events[string(events.EventCatalogChanged)])
}
