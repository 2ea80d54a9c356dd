package display

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

const defaultRefreshTimeout = 5 * time.Second

type watch struct {
	itemID int64
	cancel context.CancelFunc
	done   chan struct{}
}

// Registry owns one refresh task per published card.
// A task stops when its item is deleted, its card is gone, or it is unwatched.
type Registry struct {
	items     domain.ItemReader
	publisher domain.CardPublisher
	renderer  Renderer
	interval  time.Duration
	logger    logging.Logger

	mu      sync.Mutex
	watches map[domain.CardRef]*watch
	closed  bool
}

func NewRegistry(
	items domain.ItemReader,
	publisher domain.CardPublisher,
	renderer Renderer,
	interval time.Duration,
	logger logging.Logger,
) *Registry {
	return &Registry{
		items:     items,
		publisher: publisher,
		renderer:  renderer,
		interval:  interval,
		logger:    logger,
		watches:   make(map[domain.CardRef]*watch),
	}
}

// Watch starts refreshing the card from the item. Watching a card again replaces its previous task.
func (r *Registry) Watch(itemID int64, ref domain.CardRef) error {
	if r.interval <= 0 {
		return &domain.InvalidArgumentsError{Msg: "refresh interval must be positive"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return &domain.InvalidArgumentsError{Msg: "display registry is closed"}
	}

	if previous, ok := r.watches[ref]; ok {
		previous.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &watch{itemID: itemID, cancel: cancel, done: make(chan struct{})}
	r.watches[ref] = w

	go r.run(ctx, ref, w)

	return nil
}

// Unwatch stops the card's task and waits for it to exit.
func (r *Registry) Unwatch(ref domain.CardRef) bool {
	r.mu.Lock()
	w, ok := r.watches[ref]
	if ok {
		delete(r.watches, ref)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	w.cancel()
	<-w.done
	return true
}

// Watched lists the cards that are still being refreshed.
func (r *Registry) Watched() []domain.CardRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	refs := make([]domain.CardRef, 0, len(r.watches))
	for ref := range r.watches {
		refs = append(refs, ref)
	}
	return refs
}

func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	watches := make([]*watch, 0, len(r.watches))
	for ref, w := range r.watches {
		watches = append(watches, w)
		delete(r.watches, ref)
	}
	r.mu.Unlock()

	for _, w := range watches {
		w.cancel()
		<-w.done
	}
}

func (r *Registry) run(ctx context.Context, ref domain.CardRef, w *watch) {
	defer close(w.done)
	defer r.forget(ref, w)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	if !r.refresh(ctx, ref, w.itemID) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !r.refresh(ctx, ref, w.itemID) {
				return
			}
		}
	}
}

// refresh publishes one render and reports whether the task should keep going.
func (r *Registry) refresh(ctx context.Context, ref domain.CardRef, itemID int64) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultRefreshTimeout)
	defer cancel()

	item, err := r.items.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, &domain.ItemNotFoundError{}) {
			r.logger.Info("item removed, card refresh stopped", "item_id", itemID, "card", string(ref))
			return false
		}

		r.logger.Warn("failed to read item for card", "item_id", itemID, "card", string(ref), "error", err)
		return true
	}

	err = r.publisher.PublishCard(ctx, ref, r.renderer.Render(item))
	if err != nil {
		if errors.Is(err, &domain.TargetGoneError{}) {
			r.logger.Info("card gone, refresh stopped", "item_id", itemID, "card", string(ref))
			return false
		}

		r.logger.Warn("failed to publish card", "item_id", itemID, "card", string(ref), "error", err)
	}

	return true
}

func (r *Registry) forget(ref domain.CardRef, w *watch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.watches[ref]; ok && current == w {
		delete(r.watches, ref)
	}
}
