package store

import (
	"sync"

	"spaarpot/internal/core"
)

// Subscriber receives the full contract list after every change.
type Subscriber func([]core.Contract)

// CancelFunc removes a subscription. Safe to call more than once.
type CancelFunc func()

type subscription struct {
	id int
	fn Subscriber
}

// ContractStore holds the current contract list and notifies
// subscribers synchronously, in subscription order, whenever the list
// is replaced. Snapshots handed out are deep copies.
type ContractStore struct {
	mu      sync.Mutex
	current []core.Contract
	subs    []subscription
	nextID  int
}

func New() *ContractStore {
	return &ContractStore{}
}

// Current returns a snapshot of the contract list.
func (s *ContractStore) Current() []core.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneList(s.current)
}

// Replace swaps in a new contract list and notifies all subscribers.
// Notification happens on the calling goroutine, outside the lock, so
// a subscriber may call back into the store.
func (s *ContractStore) Replace(list []core.Contract) {
	s.mu.Lock()
	s.current = cloneList(list)
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	snapshot := cloneList(s.current)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(cloneList(snapshot))
	}
}

// Subscribe registers fn and immediately invokes it with the current
// list, so new subscribers never start from a stale view.
func (s *ContractStore) Subscribe(fn Subscriber) CancelFunc {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	snapshot := cloneList(s.current)
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func cloneList(list []core.Contract) []core.Contract {
	if list == nil {
		return nil
	}
	out := make([]core.Contract, len(list))
	for i, c := range list {
		out[i] = c.Clone()
	}
	return out
}
