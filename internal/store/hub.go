package store

import (
	"context"
	"sync"

	"priestconnect-api/internal/domain"
)

// hub fans write notifications out to live subscriptions. Delivery is
// per-collection: a write to "bookings" wakes every bookings subscription.
type hub struct {
	mu   sync.Mutex
	subs map[*subscription]struct{}
}

type subscription struct {
	collection string
	wake       chan struct{}
	done       chan struct{}
	cancelOnce sync.Once
}

func newHub() *hub {
	return &hub{subs: map[*subscription]struct{}{}}
}

func (h *hub) add(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sub] = struct{}{}
}

func (h *hub) remove(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

func (h *hub) notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub.collection != collection {
			continue
		}
		select {
		case sub.wake <- struct{}{}:
		default:
			// a wake-up is already pending; the next snapshot covers this
			// change too
		}
	}
}

func (s *Store) notify(collection string) {
	if s.hub != nil {
		s.hub.notify(collection)
	}
}

// Subscribe registers a long-lived observation of a collection slice.
// onChange receives the full current matching set, first immediately and
// then after every write to the collection. Snapshots for one subscription
// are delivered in order. A failed re-query goes to onError and the
// subscription stays alive. The returned cancel func stops delivery and is
// safe to call more than once; it never rolls back writes already issued.
func (s *Store) Subscribe(collection string, preds []domain.Predicate, onChange func([]Document), onError func(error)) func() {
	sub := &subscription{
		collection: collection,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	s.hub.add(sub)

	go func() {
		deliver := func() {
			docs, err := s.Query(context.Background(), collection, preds)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			onChange(docs)
		}

		deliver()
		for {
			select {
			case <-sub.done:
				return
			case <-sub.wake:
				// drain-check done again so a cancel racing a wake-up does
				// not deliver after cancellation
				select {
				case <-sub.done:
					return
				default:
				}
				deliver()
			}
		}
	}()

	return func() {
		sub.cancelOnce.Do(func() {
			close(sub.done)
			s.hub.remove(sub)
		})
	}
}
