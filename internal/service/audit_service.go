package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/events"
	"github.com/spec-kit/booking-gateway/internal/repository"
)

// AuditService persists gateway events for operational review.
type AuditService struct {
	dispatcher events.Dispatcher
	repo       repository.AuditEventRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, repo repository.AuditEventRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		repo:       repo,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every event type worth keeping a trail of.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.record)
	a.dispatcher.Subscribe(events.EventSessionRefreshed, a.record)
	a.dispatcher.Subscribe(events.EventSessionInvalidated, a.record)
	a.dispatcher.Subscribe(events.EventCheckoutRedirected, a.record)
}

// Recent lists the latest persisted events.
func (a *AuditService) Recent(ctx context.Context, limit int) ([]repository.AuditEvent, error) {
	return a.repo.ListRecent(ctx, limit)
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	if err := a.repo.Record(ctx, event); err != nil {
		a.logger.Warn("record audit event",
			zap.String("type", string(event.Type)),
			zap.String("user_id", event.UserID),
			zap.Error(err))
		return err
	}
	return nil
}
