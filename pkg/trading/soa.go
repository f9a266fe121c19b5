// Package trading is the service graph: keyed stores connected by listeners.
// A record entering a service through OnMessage is stored and pushed through
// every registered listener synchronously, in registration order, before
// OnMessage returns. Wiring happens before the feeds start, so the listener
// list is effectively frozen while records flow.
package trading

import "sync"

// Listener receives the events of one service. Most listeners only care
// about adds; embed nopListener for the rest.
type Listener[V any] interface {
	ProcessAdd(v V)
	ProcessRemove(v V)
	ProcessUpdate(v V)
}

// nopListener supplies empty remove/update handlers.
type nopListener[V any] struct{}

func (nopListener[V]) ProcessRemove(V) {}
func (nopListener[V]) ProcessUpdate(V) {}

// Store is the keyed record map plus listener list every service embeds.
// Reads and writes are guarded; listener delivery runs outside the lock so a
// listener can call back into any service, including this one.
type Store[K comparable, V any] struct {
	mu        sync.RWMutex
	records   map[K]V
	listeners []Listener[V]
}

func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{records: make(map[K]V)}
}

// GetData returns the stored record for key.
func (s *Store[K, V]) GetData(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return v, ok
}

// AddListener appends l to the notification chain. Listeners are notified in
// the order they were added.
func (s *Store[K, V]) AddListener(l Listener[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store[K, V]) put(key K, v V) {
	s.mu.Lock()
	s.records[key] = v
	s.mu.Unlock()
}

func (s *Store[K, V]) remove(key K) {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
}

// mutate applies fn to the record under key while holding the write lock and
// returns the result. Absent keys hand fn the zero record. fn must not call
// back into the store.
func (s *Store[K, V]) mutate(key K, fn func(v V, ok bool) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.records[key]
	v := fn(old, ok)
	s.records[key] = v
	return v
}

// amend is mutate restricted to existing records; absent keys are left
// untouched and reported.
func (s *Store[K, V]) amend(key K, fn func(v V) V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	if !ok {
		var zero V
		return zero, false
	}
	v = fn(v)
	s.records[key] = v
	return v, true
}

// notifyAdd walks the chain synchronously.
func (s *Store[K, V]) notifyAdd(v V) {
	for _, l := range s.chain() {
		l.ProcessAdd(v)
	}
}

func (s *Store[K, V]) chain() []Listener[V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listeners
}
