package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

const (
	defaultSendTimeout = 5 * time.Second

	StatusDelivered   = "Link sent to your DM!"
	StatusUndelivered = "I couldn't DM you. Please enable DMs."
)

// Notifier hands fulfillment payloads to buyers over private messages and retracts them later.
// Delivery is best effort: a failed message never reverses the purchase.
type Notifier struct {
	transport    domain.NotificationTransport
	retractAfter time.Duration
	sendTimeout  time.Duration
	logger       logging.Logger

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*time.Timer
	closed  bool
	running sync.WaitGroup
}

// NewNotifier builds a notifier. A zero retractAfter keeps delivered messages forever.
func NewNotifier(transport domain.NotificationTransport, retractAfter time.Duration, logger logging.Logger) *Notifier {
	return &Notifier{
		transport:    transport,
		retractAfter: retractAfter,
		sendTimeout:  defaultSendTimeout,
		logger:       logger,
		pending:      make(map[uint64]*time.Timer),
	}
}

// Deliver sends the payload to the buyer and reports whether the message went out.
func (n *Notifier) Deliver(ctx context.Context, userID int64, payload domain.FulfillmentPayload) bool {
	ctx, cancel := context.WithTimeout(ctx, n.sendTimeout)
	defer cancel()

	ref, err := n.transport.SendPrivate(ctx, userID, FormatDelivery(payload))
	if err != nil {
		n.logger.Warn("fulfillment message not delivered",
			"user_id", userID,
			"order_id", payload.OrderID.String(),
			"error", err,
		)
		return false
	}

	n.logger.Info("fulfillment message delivered", "user_id", userID, "order_id", payload.OrderID.String())

	if n.retractAfter > 0 {
		n.ScheduleRetraction(ref, n.retractAfter)
	}

	return true
}

// ScheduleRetraction removes the message after the given delay unless the returned cancel runs first.
// A message that is already gone counts as retracted.
func (n *Notifier) ScheduleRetraction(ref domain.MessageRef, after time.Duration) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return func() {}
	}

	n.nextID++
	id := n.nextID

	n.pending[id] = time.AfterFunc(after, func() {
		if !n.begin(id) {
			return
		}
		defer n.running.Done()

		n.retract(ref)
	})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		if timer, ok := n.pending[id]; ok {
			timer.Stop()
			delete(n.pending, id)
		}
	}
}

// Pending is the number of retractions that have not fired or been cancelled.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.pending)
}

// Close cancels every pending retraction and waits for running ones to finish.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	for id, timer := range n.pending {
		timer.Stop()
		delete(n.pending, id)
	}
	n.mu.Unlock()

	n.running.Wait()
}

// begin claims a fired timer so that Close waits for its retraction.
func (n *Notifier) begin(id uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.pending[id]; !ok {
		return false
	}

	delete(n.pending, id)
	n.running.Add(1)
	return true
}

func (n *Notifier) retract(ref domain.MessageRef) {
	ctx, cancel := context.WithTimeout(context.Background(), n.sendTimeout)
	defer cancel()

	err := n.transport.Retract(ctx, ref)
	if err == nil {
		n.logger.Debug("fulfillment message retracted", "message", string(ref))
		return
	}

	if errors.Is(err, &domain.MessageGoneError{}) {
		n.logger.Debug("fulfillment message already gone", "message", string(ref))
		return
	}

	n.logger.Warn("failed to retract fulfillment message", "message", string(ref), "error", err)
}

// FormatDelivery renders the private message a buyer receives.
func FormatDelivery(payload domain.FulfillmentPayload) string {
	return fmt.Sprintf("Purchase successful!\n\n"+
		"Product: %s\n"+
		"Price: %d coins\n\n"+
		"Your link:\n%s\n\n"+
		"Do not share this link with others.",
		payload.ItemName, payload.PricePaid, payload.Text)
}

// DeliveryStatus is the line shown to the buyer next to the purchase confirmation.
func DeliveryStatus(delivered bool) string {
	if delivered {
		return StatusDelivered
	}
	return StatusUndelivered
}
