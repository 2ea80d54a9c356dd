package fulfillment

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	logmocks "github.com/Lexv0lk/coin-shop/gen/mocks/logging"
	storemocks "github.com/Lexv0lk/coin-shop/gen/mocks/store"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = domain.FulfillmentPayload{
	OrderID:   uuid.MustParse("7d1f0c2e-3b4a-4c5d-8e6f-9a0b1c2d3e4f"),
	ItemName:  "Nitro",
	Text:      "https://example.com/redeem/abc",
	PricePaid: 75,
}

func TestFormatDelivery(t *testing.T) {
	t.Parallel()

	text := FormatDelivery(payload)

	assert.Contains(t, text, "Product: Nitro")
	assert.Contains(t, text, "Price: 75 coins")
	assert.Contains(t, text, "https://example.com/redeem/abc")
	assert.Contains(t, text, "Do not share this link")
}

func TestDeliveryStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusDelivered, DeliveryStatus(true))
	assert.Equal(t, StatusUndelivered, DeliveryStatus(false))
}

func TestNotifier_DeliverSchedulesRetraction(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := storemocks.NewMockNotificationTransport(ctrl)

	retracted := make(chan domain.MessageRef, 1)
	transport.EXPECT().SendPrivate(gomock.Any(), int64(1), FormatDelivery(payload)).Return(domain.MessageRef("dm-1"), nil)
	transport.EXPECT().Retract(gomock.Any(), domain.MessageRef("dm-1")).
		DoAndReturn(func(_ context.Context, ref domain.MessageRef) error {
			retracted <- ref
			return nil
		})

	notifier := NewNotifier(transport, 20*time.Millisecond, logging.NewNopLogger())
	defer notifier.Close()

	assert.True(t, notifier.Deliver(testContext(t), 1, payload))

	select {
	case ref := <-retracted:
		assert.Equal(t, domain.MessageRef("dm-1"), ref)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not retracted")
	}

	assert.Eventually(t, func() bool { return notifier.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNotifier_UndeliverableIsReportedNotRaised(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := storemocks.NewMockNotificationTransport(ctrl)
	logger := logmocks.NewMockLogger(ctrl)

	transport.EXPECT().SendPrivate(gomock.Any(), int64(2), gomock.Any()).
		Return(domain.MessageRef(""), &domain.UndeliverableError{UserID: 2, Err: assert.AnError})
	logger.EXPECT().Warn("fulfillment message not delivered", gomock.Any())

	notifier := NewNotifier(transport, time.Minute, logger)
	defer notifier.Close()

	assert.False(t, notifier.Deliver(testContext(t), 2, payload))
	assert.Equal(t, 0, notifier.Pending())
}

func TestNotifier_RetractionWithoutDelay(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := storemocks.NewMockNotificationTransport(ctrl)
	transport.EXPECT().SendPrivate(gomock.Any(), int64(1), gomock.Any()).Return(domain.MessageRef("dm-1"), nil)

	notifier := NewNotifier(transport, 0, logging.NewNopLogger())
	defer notifier.Close()

	assert.True(t, notifier.Deliver(testContext(t), 1, payload))
	assert.Equal(t, 0, notifier.Pending())
}

func TestNotifier_GoneMessageCountsAsRetracted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := storemocks.NewMockNotificationTransport(ctrl)
	logger := logmocks.NewMockLogger(ctrl)

	done := make(chan struct{})
	transport.EXPECT().Retract(gomock.Any(), domain.MessageRef("dm-9")).
		DoAndReturn(func(_ context.Context, ref domain.MessageRef) error {
			close(done)
			return &domain.MessageGoneError{Ref: ref}
		})
	logger.EXPECT().Debug("fulfillment message already gone", gomock.Any())

	notifier := NewNotifier(transport, 0, logger)
	notifier.ScheduleRetraction("dm-9", 5*time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("retraction did not run")
	}

	notifier.Close()
}

func TestNotifier_CancelledRetractionNeverRuns(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := storemocks.NewMockNotificationTransport(ctrl)

	notifier := NewNotifier(transport, 0, logging.NewNopLogger())
	defer notifier.Close()

	cancel := notifier.ScheduleRetraction("dm-1", 20*time.Millisecond)
	require.Equal(t, 1, notifier.Pending())

	cancel()
	cancel()
	assert.Equal(t, 0, notifier.Pending())

	time.Sleep(60 * time.Millisecond)
}

func TestNotifier_CloseStopsPendingTimers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := storemocks.NewMockNotificationTransport(ctrl)

	var calls atomic.Int32
	transport.EXPECT().Retract(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.MessageRef) error {
			calls.Add(1)
			return nil
		}).AnyTimes()

	notifier := NewNotifier(transport, 0, logging.NewNopLogger())
	for _, ref := range []domain.MessageRef{"a", "b", "c"} {
		notifier.ScheduleRetraction(ref, 30*time.Millisecond)
	}
	require.Equal(t, 3, notifier.Pending())

	notifier.Close()
	assert.Equal(t, 0, notifier.Pending())

	cancel := notifier.ScheduleRetraction("d", time.Millisecond)
	cancel()
	assert.Equal(t, 0, notifier.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
