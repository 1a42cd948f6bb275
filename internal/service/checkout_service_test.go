package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/checkout"
	"github.com/spec-kit/booking-gateway/internal/domain"
	"github.com/spec-kit/booking-gateway/internal/events"
	"github.com/spec-kit/booking-gateway/internal/observability"
	"github.com/spec-kit/booking-gateway/internal/upstream"
)

type MockBookingAPI struct {
	mock.Mock
}

func (m *MockBookingAPI) CurrentBooking(ctx context.Context, accessToken string) (*domain.Booking, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockBookingCache struct {
	mock.Mock
}

func (m *MockBookingCache) Get(ctx context.Context, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingCache) Set(ctx context.Context, userID string, booking *domain.Booking) error {
	args := m.Called(ctx, userID, booking)
	return args.Error(0)
}

func (m *MockBookingCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testSession() *domain.Session {
	return &domain.Session{
		User:        domain.User{ID: "user-1", Email: "u@example.com"},
		AccessToken: "access-1",
	}
}

func newCheckoutService(api *MockBookingAPI, cache *MockBookingCache) *CheckoutService {
	return NewCheckoutService(api, cache, events.NewInMemoryDispatcher(), observability.NewMetrics(), zap.NewNop())
}

func TestCurrentBookingCacheHit(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	cached := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPendingPayment}
	cache.On("Get", mock.Anything, "user-1").Return(cached, nil)

	svc := newCheckoutService(api, cache)
	booking, err := svc.CurrentBooking(context.Background(), testSession())

	require.NoError(t, err)
	assert.Equal(t, cached, booking)
	api.AssertNotCalled(t, "CurrentBooking", mock.Anything, mock.Anything)
}

func TestCurrentBookingCacheMissFetchesUpstream(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	booking := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPending}
	cache.On("Get", mock.Anything, "user-1").Return(nil, nil)
	cache.On("Set", mock.Anything, "user-1", booking).Return(nil)
	api.On("CurrentBooking", mock.Anything, "access-1").Return(booking, nil)

	svc := newCheckoutService(api, cache)
	got, err := svc.CurrentBooking(context.Background(), testSession())

	require.NoError(t, err)
	assert.Equal(t, booking, got)
	cache.AssertExpectations(t)
}

func TestCurrentBookingCacheFailureFallsThrough(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	booking := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPending}
	cache.On("Get", mock.Anything, "user-1").Return(nil, errors.New("redis down"))
	cache.On("Set", mock.Anything, "user-1", booking).Return(errors.New("redis down"))
	api.On("CurrentBooking", mock.Anything, "access-1").Return(booking, nil)

	svc := newCheckoutService(api, cache)
	got, err := svc.CurrentBooking(context.Background(), testSession())

	require.NoError(t, err)
	assert.Equal(t, booking, got)
}

func TestCurrentBookingNoneInProgress(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	cache.On("Get", mock.Anything, "user-1").Return(nil, nil)
	api.On("CurrentBooking", mock.Anything, "access-1").
		Return(nil, fmt.Errorf("GET /user/booking/current: %w", upstream.ErrNotFound))

	svc := newCheckoutService(api, cache)
	booking, err := svc.CurrentBooking(context.Background(), testSession())

	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestGuardStepAllowsMatchingStep(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	booking := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPendingPayment}
	cache.On("Get", mock.Anything, "user-1").Return(booking, nil)

	svc := newCheckoutService(api, cache)
	decision, err := svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepPayment)

	require.NoError(t, err)
	assert.False(t, decision.Redirect)
	assert.Equal(t, booking, decision.Booking)
}

func TestGuardStepRedirectsPastProgress(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	booking := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPendingPayment}
	cache.On("Get", mock.Anything, "user-1").Return(booking, nil)

	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventCheckoutRedirected, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewCheckoutService(api, cache, dispatcher, observability.NewMetrics(), zap.NewNop())

	decision, err := svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepConfirm)

	require.NoError(t, err)
	assert.True(t, decision.Redirect)
	assert.Equal(t, checkout.PathPayment, decision.Target)
	require.Len(t, published, 1)
	payload := published[0].Payload.(events.CheckoutRedirectedPayload)
	assert.Equal(t, "bk-1", payload.BookingID)
	assert.Equal(t, domain.CheckoutStepConfirm, payload.RequestedStep)
}

func TestGuardStepNoBookingTreatedAsFlowStart(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	cache.On("Get", mock.Anything, "user-1").Return(nil, nil)
	api.On("CurrentBooking", mock.Anything, "access-1").
		Return(nil, fmt.Errorf("GET /user/booking/current: %w", upstream.ErrNotFound))

	svc := newCheckoutService(api, cache)

	decision, err := svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepInfo)
	require.NoError(t, err)
	assert.False(t, decision.Redirect)
	assert.Nil(t, decision.Booking)

	decision, err = svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepPayment)
	require.NoError(t, err)
	assert.True(t, decision.Redirect)
	assert.Equal(t, checkout.PathInfo, decision.Target)
}

func TestGuardStepConfirmedBookingLockedToCompletion(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	booking := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusConfirmed}
	cache.On("Get", mock.Anything, "user-1").Return(booking, nil)

	svc := newCheckoutService(api, cache)

	decision, err := svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepPayment)
	require.NoError(t, err)
	assert.True(t, decision.Redirect)
	assert.Equal(t, checkout.PathComplete, decision.Target)

	decision, err = svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepWaitingSupplier)
	require.NoError(t, err)
	assert.False(t, decision.Redirect)
}

func TestGuardStepUpstreamFailure(t *testing.T) {
	api := new(MockBookingAPI)
	cache := new(MockBookingCache)
	cache.On("Get", mock.Anything, "user-1").Return(nil, nil)
	api.On("CurrentBooking", mock.Anything, "access-1").
		Return(nil, errors.New("connection refused"))

	svc := newCheckoutService(api, cache)
	_, err := svc.GuardStep(context.Background(), testSession(), domain.CheckoutStepInfo)
	assert.Error(t, err)
}
