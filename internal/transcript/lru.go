package transcript

import (
	"container/list"
	"sync"
)

// LRUStore is an in-memory LRU cache that delegates to a backing Store on
// miss. Save and Load hit the cache; List always goes to the backing store,
// which holds the complete history.
type LRUStore struct {
	mu    sync.Mutex
	cap   int
	back  Store
	order *list.List               // most recent at front; values are *Record
	items map[string]*list.Element // record ID -> element in order
}

// NewLRUStore creates an LRU cache with the given capacity delegating to
// back on cache misses. Capacity must be >= 1.
func NewLRUStore(capacity int, back Store) *LRUStore {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUStore{
		cap:   capacity,
		back:  back,
		order: list.New(),
		items: make(map[string]*list.Element, capacity),
	}
}

// Save writes the record to the cache and delegates to the backing store.
func (s *LRUStore) Save(rec *Record) error {
	s.mu.Lock()
	s.put(rec)
	s.mu.Unlock()

	return s.back.Save(rec)
}

// Load checks the cache first. On miss, it loads from the backing store and
// promotes the record into the cache.
func (s *LRUStore) Load(id string) (*Record, error) {
	s.mu.Lock()
	if el, ok := s.items[id]; ok {
		s.order.MoveToFront(el)
		rec := el.Value.(*Record)
		s.mu.Unlock()
		return rec, nil
	}
	s.mu.Unlock()

	rec, err := s.back.Load(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.put(rec)
	s.mu.Unlock()
	return rec, nil
}

// List delegates to the backing store.
func (s *LRUStore) List() ([]*Record, error) {
	return s.back.List()
}

// put inserts or refreshes rec and evicts the oldest entry when over
// capacity. Caller holds s.mu.
func (s *LRUStore) put(rec *Record) {
	if el, ok := s.items[rec.ID]; ok {
		el.Value = rec
		s.order.MoveToFront(el)
		return
	}
	s.items[rec.ID] = s.order.PushFront(rec)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*Record).ID)
	}
}
