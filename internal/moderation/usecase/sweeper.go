package usecase

import (
	"log"
	"time"

	authdomain "newsdesk-backend/internal/auth/domain"
)

// staleStrikeStore is the slice of the user repository the sweep reads.
type staleStrikeStore interface {
	UserStore
	FindStaleStrikes(cutoff time.Time) ([]authdomain.User, error)
}

// StrikeSweeper periodically resets users whose last strike is older than
// the sweep window, self-healing stale warning states without waiting for an
// explicit block check. Users with an active block are left to CheckBlock.
type StrikeSweeper struct {
	users    staleStrikeStore
	ledger   *StrikeLedger
	interval time.Duration
	window   time.Duration
	stopChan chan struct{}
}

func NewStrikeSweeper(users staleStrikeStore, ledger *StrikeLedger, interval, window time.Duration) *StrikeSweeper {
	return &StrikeSweeper{
		users:    users,
		ledger:   ledger,
		interval: interval,
		window:   window,
		stopChan: make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (s *StrikeSweeper) Start() {
	log.Printf("[StrikeSweep] Starting sweeper (interval: %s, window: %s)", s.interval, s.window)

	go func() {
		// Run immediately on start
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				log.Println("[StrikeSweep] Sweeper stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the sweeper.
func (s *StrikeSweeper) Stop() {
	close(s.stopChan)
}

func (s *StrikeSweeper) sweep() {
	cutoff := time.Now().Add(-s.window)
	users, err := s.users.FindStaleStrikes(cutoff)
	if err != nil {
		log.Printf("[StrikeSweep] Error finding stale strikes: %v", err)
		return
	}
	if len(users) == 0 {
		return
	}

	log.Printf("[StrikeSweep] Resetting %d stale strike states", len(users))
	for i := range users {
		user := &users[i]
		s.ledger.reset(user)
		if err := s.users.Update(user); err != nil {
			log.Printf("[StrikeSweep] Error resetting user %s: %v", user.ID, err)
		}
	}
}
