package persistence

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Autosaver pushes facility snapshots into a ring at most once per interval.
// When a store is attached every accepted snapshot is also written to disk.
type Autosaver struct {
	ring    *Ring
	store   *FileStore
	limiter *rate.Limiter
	logger  *utils.Logger
}

// NewAutosaver creates an autosaver. store may be nil for memory-only autosave.
func NewAutosaver(ring *Ring, store *FileStore, interval time.Duration, logger *utils.Logger) *Autosaver {
	if logger == nil {
		logger = utils.Discard()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Autosaver{
		ring:    ring,
		store:   store,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Offer records racks if the interval since the last accepted snapshot has passed
func (a *Autosaver) Offer(racks []*models.Rack) bool {
	return a.OfferAt(time.Now(), racks)
}

// OfferAt is Offer with an explicit clock reading
func (a *Autosaver) OfferAt(now time.Time, racks []*models.Rack) bool {
	if !a.limiter.AllowN(now, 1) {
		return false
	}
	a.record(racks)
	return true
}

// Flush records racks regardless of the interval
func (a *Autosaver) Flush(racks []*models.Rack) {
	a.record(racks)
}

// Ring returns the backing snapshot ring
func (a *Autosaver) Ring() *Ring {
	return a.ring
}

func (a *Autosaver) record(racks []*models.Rack) {
	a.ring.Push(racks)
	if a.store == nil {
		return
	}
	if _, err := a.store.Save(racks); err != nil {
		a.logger.Error("Autosave failed", err)
	}
}
