package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/music-library/internal/config"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/observability"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     loggerOrNop(logger),
		metrics:    metrics,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
	n.dispatcher.Subscribe(events.EventAccountLoggedOut, n.handleAccountLoggedOut)
	n.dispatcher.Subscribe(events.EventFavoriteAdded, n.handleFavoriteChanged)
	n.dispatcher.Subscribe(events.EventFavoriteRemoved, n.handleFavoriteChanged)
	n.dispatcher.Subscribe(events.EventCatalogChanged, n.handleCatalogChanged)
}

func (n *NotificationService) handleAccountRegistered(ctx context.Context, event events.Event) error {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info("AccountRegistered", zap.String("account_id", event.AccountID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAccountLoggedOut(_ context.Context, event events.Event) error {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info("AccountLoggedOut", zap.String("account_id", event.AccountID))
	return nil
}

func (n *NotificationService) handleFavoriteChanged(ctx context.Context, event events.Event) error {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info("FavoriteChanged",
		zap.String("event_type", string(event.Type)),
		zap.String("account_id", event.AccountID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCatalogChanged(ctx context.Context, event events.Event) error {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info("CatalogChanged", zap.String("actor_id", event.AccountID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("account_id", event.AccountID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
