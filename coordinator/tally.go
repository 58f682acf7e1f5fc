package coordinator

import (
	"sync"

	"github.com/kbukum/nexus/adapter"
)

// Stats are the running totals for one producer.
type Stats struct {
	ProducerID string       `json:"producer_id"`
	Kind       adapter.Kind `json:"kind"`
	Processed  int          `json:"processed"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Recovered  int          `json:"recovered"`
}

// Tally accumulates per-producer stats from reports. It is owned by the
// caller; adapters and the coordinator keep no counters.
type Tally struct {
	mu    sync.Mutex
	order []string
	stats map[string]*Stats
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{stats: make(map[string]*Stats)}
}

// Observe counts each report against its producer.
func (t *Tally) Observe(reports ...adapter.Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range reports {
		s, ok := t.stats[r.ProducerID]
		if !ok {
			s = &Stats{ProducerID: r.ProducerID, Kind: r.ProducerKind}
			t.stats[r.ProducerID] = s
			t.order = append(t.order, r.ProducerID)
		}
		s.Processed++
		if r.Succeeded() {
			s.Succeeded++
		} else {
			s.Failed++
		}
		if r.Recovered {
			s.Recovered++
		}
	}
}

// Stats returns the totals for producerID.
func (t *Tally) Stats(producerID string) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.stats[producerID]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// All returns every producer's totals in first-seen order.
func (t *Tally) All() []Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Stats, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.stats[id])
	}
	return out
}

// Total returns the number of reports observed.
func (t *Tally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, s := range t.stats {
		n += s.Processed
	}
	return n
}
