package cleanup

import (
	"log"
	"time"
)

// StaleLogStore rejects pending terminal logs older than the cutoff and
// returns how many were touched.
type StaleLogStore interface {
	RejectStale(cutoff time.Time) (int64, error)
}

// Sweeper periodically auto-rejects terminal logs that sat in
// pending_confirmation past the allowed age.
type Sweeper struct {
	store         StaleLogStore
	interval      time.Duration
	maxPendingAge time.Duration
	stopChan      chan bool
}

func NewSweeper(store StaleLogStore, interval, maxPendingAge time.Duration) *Sweeper {
	return &Sweeper{
		store:         store,
		interval:      interval,
		maxPendingAge: maxPendingAge,
		stopChan:      make(chan bool),
	}
}

// Start begins the sweep loop. Blocks; run in a goroutine.
func (s *Sweeper) Start() {
	log.Printf("Starting terminal log sweeper (interval: %v, max pending age: %v)", s.interval, s.maxPendingAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			log.Println("Stopping terminal log sweeper")
			return
		}
	}
}

func (s *Sweeper) Stop() {
	s.stopChan <- true
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.maxPendingAge)
	rejected, err := s.store.RejectStale(cutoff)
	if err != nil {
		log.Printf("Terminal log sweep failed: %v", err)
		return
	}
	if rejected > 0 {
		log.Printf("Auto-rejected %d stale terminal logs", rejected)
	}
}
