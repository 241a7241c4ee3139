package store

import (
	"sync"
	"time"

	"github.com/sachaos/launchy/pkg/run"
)

// Record is one submitted search.
type Record struct {
	ID         int64
	SearchText string
	Start      time.Time

	// Result is nil while the request is in flight.
	Result *run.Result

	Additions    int
	Deletions    int
	DiffPrepared bool
}

func (r *Record) Completed() bool {
	return r.Result != nil
}

func (r *Record) Failed() bool {
	return r.Result != nil && r.Result.Err != nil
}

// Store keeps records in submission order.
type Store struct {
	mu      sync.RWMutex
	records []*Record
	index   map[int64]int
}

func NewStore() *Store {
	return &Store{
		records: nil,
		index:   map[int64]int{},
	}
}

// Set adds r, or replaces the record with the same ID.
func (h *Store) Set(r *Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i, ok := h.index[r.ID]
	if !ok {
		h.records = append(h.records, r)
		h.index[r.ID] = len(h.records) - 1
		return
	}

	h.records[i] = r
}

func (h *Store) Get(id int64) *Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, ok := h.index[id]
	if !ok {
		return nil
	}

	return h.records[i]
}

func (h *Store) GetByIndex(i int) *Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.records) <= i || i < 0 {
		return nil
	}

	return h.records[i]
}

func (h *Store) GetIndexOf(r *Record) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, ok := h.index[r.ID]
	if !ok {
		return -1
	}
	return i
}

// PreviousSuccessful returns the latest successful record submitted before r.
func (h *Store) PreviousSuccessful(r *Record) *Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, ok := h.index[r.ID]
	if !ok {
		i = len(h.records)
	}

	for j := i - 1; j >= 0; j-- {
		if p := h.records[j]; p.Completed() && !p.Failed() {
			return p
		}
	}

	return nil
}

func (h *Store) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.records)
}
