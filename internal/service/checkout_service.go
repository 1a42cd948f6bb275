package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/checkout"
	"github.com/spec-kit/booking-gateway/internal/domain"
	"github.com/spec-kit/booking-gateway/internal/events"
	"github.com/spec-kit/booking-gateway/internal/observability"
	"github.com/spec-kit/booking-gateway/internal/repository"
	"github.com/spec-kit/booking-gateway/internal/upstream"
	apperrors "github.com/spec-kit/booking-gateway/pkg/util"
)

// BookingAPI is the slice of the upstream booking surface the checkout
// service needs.
type BookingAPI interface {
	CurrentBooking(ctx context.Context, accessToken string) (*domain.Booking, error)
}

// StepDecision is the outcome of guarding a checkout page request.
type StepDecision struct {
	Booking  *domain.Booking
	Redirect bool
	Target   string
}

// CheckoutService fetches the customer's current booking (through a short
// Redis cache) and applies the step guard to page requests.
type CheckoutService struct {
	bookings   BookingAPI
	cache      repository.BookingCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewCheckoutService builds the service.
func NewCheckoutService(
	bookings BookingAPI,
	cache repository.BookingCache,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		bookings:   bookings,
		cache:      cache,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// CurrentBooking returns the session user's in-progress booking, or nil
// when none exists. Cache failures fall through to the upstream.
func (s *CheckoutService) CurrentBooking(ctx context.Context, session *domain.Session) (*domain.Booking, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, session.User.ID)
		if err != nil {
			s.logger.Warn("booking cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	booking, err := s.bookings.CurrentBooking(ctx, session.AccessToken)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, upstream.ErrUnauthorized) {
			return nil, apperrors.NewUnauthorized("session expired")
		}
		return nil, apperrors.NewUpstreamError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session.User.ID, booking); err != nil {
			s.logger.Warn("booking cache write failed", zap.Error(err))
		}
	}
	return booking, nil
}

// GuardStep decides whether the requested checkout page may render for the
// session's booking. A customer with no booking yet is treated as being at
// the start of the flow: the info page renders, later steps redirect back.
func (s *CheckoutService) GuardStep(ctx context.Context, session *domain.Session, step domain.CheckoutStep) (StepDecision, error) {
	booking, err := s.CurrentBooking(ctx, session)
	if err != nil {
		return StepDecision{}, err
	}

	status := domain.BookingStatusPending
	if booking != nil {
		status = booking.Status
	}

	target, redirect := checkout.RedirectTarget(status, step)
	if !redirect {
		return StepDecision{Booking: booking}, nil
	}

	s.metrics.RecordCheckoutRedirect(target)
	payload := events.CheckoutRedirectedPayload{
		BookingStatus: status,
		RequestedStep: step,
		Target:        target,
	}
	if booking != nil {
		payload.BookingID = booking.ID
	}
	s.publish(ctx, events.Event{
		Type:    events.EventCheckoutRedirected,
		UserID:  session.User.ID,
		Payload: payload,
	})

	return StepDecision{Booking: booking, Redirect: true, Target: target}, nil
}

// InvalidateBookingCache drops the cached booking after an action that is
// known to advance the checkout (payment submitted, booking confirmed).
func (s *CheckoutService) InvalidateBookingCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("booking cache invalidate failed", zap.Error(err))
	}
}

func (s *CheckoutService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
