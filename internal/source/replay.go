package source

import (
	"fmt"
	"sync"
)

// Replay yields a queued sequence of canned route tables, one per Fetch
// call. It drives test mode through the same parse/diff/record path as the
// live source. Once the queue is exhausted the last table is repeated, so a
// monitor polling past the end observes a stable routing table.
type Replay struct {
	mutex  sync.Mutex
	tables [][]string
	next   int
}

// NewReplay returns a Replay that serves the given tables in order.
func NewReplay(tables ...[]string) *Replay {
	return &Replay{tables: tables}
}

// Fetch returns the next queued table.
func (r *Replay) Fetch() ([]string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.tables) == 0 {
		return nil, fmt.Errorf("replay source has no tables")
	}
	table := r.tables[r.next]
	if r.next < len(r.tables)-1 {
		r.next++
	}
	return table, nil
}
