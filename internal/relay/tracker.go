package relay

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"shoprelay/internal/models"
)

// Journal persists tracker updates. Append failures must not block the relay
// path, so the tracker logs and keeps going.
type Journal interface {
	Append(models.OrderTrack) error
}

// Tracker holds per-order relay state in memory and journals every update so
// the state survives restarts.
type Tracker struct {
	mu      sync.RWMutex
	orders  map[string]models.OrderTrack
	journal Journal
}

func NewTracker(j Journal) *Tracker {
	return &Tracker{orders: make(map[string]models.OrderTrack), journal: j}
}

// Restore loads one journaled record; later records for the same order
// overwrite earlier ones. Used as the yield function for Store.Replay.
func (t *Tracker) Restore(rec models.OrderTrack) bool {
	t.mu.Lock()
	t.orders[rec.Number] = rec
	trackedGauge.Set(float64(len(t.orders)))
	t.mu.Unlock()
	return true
}

func (t *Tracker) Get(number string) (models.OrderTrack, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.orders[number]
	return rec, ok
}

// Put stores a record and journals it.
func (t *Tracker) Put(rec models.OrderTrack) {
	rec.UpdatedAt = time.Now().UTC()
	t.mu.Lock()
	t.orders[rec.Number] = rec
	trackedGauge.Set(float64(len(t.orders)))
	t.mu.Unlock()

	if t.journal != nil {
		if err := t.journal.Append(rec); err != nil {
			log.Error().Err(err).Str("order", rec.Number).Msg("journal append")
		}
	}
}

// Snapshot returns all tracked orders sorted by number.
func (t *Tracker) Snapshot() []models.OrderTrack {
	t.mu.RLock()
	out := make([]models.OrderTrack, 0, len(t.orders))
	for _, rec := range t.orders {
		out = append(out, rec)
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.orders)
}
