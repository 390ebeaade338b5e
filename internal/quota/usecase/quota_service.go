package usecase

import (
	"log"
	"time"

	"newsdesk-backend/internal/metrics"
	"newsdesk-backend/internal/quota/repository"
)

// ReserveResult is the outcome of a quota reservation.
type ReserveResult struct {
	Allowed   bool `json:"allowed"`
	Reserved  int  `json:"reserved"`
	Remaining int  `json:"remaining"`
}

// UsageStatus is a non-atomic snapshot for status endpoints.
type UsageStatus struct {
	Service   string `json:"service"`
	Date      string `json:"date"`
	Used      int    `json:"used"`
	Cap       int    `json:"cap"`
	Remaining int    `json:"remaining"`
	Warning   bool   `json:"warning"`
}

// Limits carries the provider-documented limit plus the ratios applied to it.
type Limits struct {
	DailyLimit        func(service string) int
	ConservativeRatio float64
	WarningRatio      float64
}

// QuotaService is the per-service, per-day usage ledger. Reservation is the
// only operation with atomicity guarantees; the reads are advisory.
type QuotaService struct {
	repo     repository.QuotaRepository
	limits   Limits
	location *time.Location
}

// NewQuotaService builds the ledger. tz is the provider's reset timezone; the
// "day" a request is billed to rolls over there, not in server-local time.
func NewQuotaService(repo repository.QuotaRepository, limits Limits, tz string) *QuotaService {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("[Quota] Unknown timezone %q, falling back to UTC: %v", tz, err)
		loc = time.UTC
	}
	return &QuotaService{repo: repo, limits: limits, location: loc}
}

// Today returns the current date string in the provider reset timezone.
func (s *QuotaService) Today() string {
	return time.Now().In(s.location).Format("2006-01-02")
}

// Cap returns the conservative cap for a service: floor(limit × ratio). The
// headroom absorbs crash-recovery drift and requests already in flight.
func (s *QuotaService) Cap(service string) int {
	return int(float64(s.limits.DailyLimit(service)) * s.limits.ConservativeRatio)
}

// Reserve atomically claims count units of today's quota for service. On any
// unexpected backend error the ledger fails open: a broken quota store must
// not take down every AI feature, and occasional overrun is the cheaper
// failure. The fail-open result is logged and counted so it stays visible.
func (s *QuotaService) Reserve(service string, count int) ReserveResult {
	date := s.Today()
	cap := s.Cap(service)

	applied, err := s.repo.IncrementIfBelow(service, date, count, cap)
	if err != nil {
		return s.failOpen(service, count, err)
	}
	if !applied {
		// Either the day's row does not exist yet, or the cap is hit.
		// Lazily create the row and retry the conditional increment once.
		if err := s.repo.EnsureRecord(service, date); err != nil {
			return s.failOpen(service, count, err)
		}
		applied, err = s.repo.IncrementIfBelow(service, date, count, cap)
		if err != nil {
			return s.failOpen(service, count, err)
		}
	}

	remaining := cap - s.CurrentCount(service)
	if remaining < 0 {
		remaining = 0
	}

	if !applied {
		metrics.QuotaReservations.WithLabelValues(service, "denied").Inc()
		return ReserveResult{Allowed: false, Reserved: 0, Remaining: remaining}
	}

	metrics.QuotaReservations.WithLabelValues(service, "allowed").Inc()
	return ReserveResult{Allowed: true, Reserved: count, Remaining: remaining}
}

func (s *QuotaService) failOpen(service string, count int, err error) ReserveResult {
	log.Printf("[Quota] Backend error for %s, failing open: %v", service, err)
	metrics.QuotaReservations.WithLabelValues(service, "fail_open").Inc()
	return ReserveResult{Allowed: true, Reserved: count, Remaining: 0}
}

// CurrentCount is a non-atomic read of today's usage for status and for the
// selector's per-model checks. Zero on error or before the first request.
func (s *QuotaService) CurrentCount(service string) int {
	record, err := s.repo.Get(service, s.Today())
	if err != nil {
		log.Printf("[Quota] Failed to read usage for %s: %v", service, err)
		return 0
	}
	if record == nil {
		return 0
	}
	return record.RequestCount
}

// HasQuotaAvailable is an advisory, non-reserving read. Races against
// concurrent reservations are acceptable for UI hints; actual gating goes
// through Reserve.
func (s *QuotaService) HasQuotaAvailable(service string) bool {
	return s.CurrentCount(service) < s.Cap(service)
}

// CheckQuotaAvailabilityForBatch returns how many of n items can be processed
// without reserving. Used to pre-shrink batch sizes, not to gate calls.
func (s *QuotaService) CheckQuotaAvailabilityForBatch(service string, n int) int {
	available := s.Cap(service) - s.CurrentCount(service)
	if available <= 0 {
		return 0
	}
	if n < available {
		return n
	}
	return available
}

// Status reports usage against the raw provider limit, flagging when the
// warning ratio is crossed.
func (s *QuotaService) Status(service string) UsageStatus {
	used := s.CurrentCount(service)
	cap := s.Cap(service)
	remaining := cap - used
	if remaining < 0 {
		remaining = 0
	}
	warnAt := int(float64(s.limits.DailyLimit(service)) * s.limits.WarningRatio)
	return UsageStatus{
		Service:   service,
		Date:      s.Today(),
		Used:      used,
		Cap:       cap,
		Remaining: remaining,
		Warning:   used >= warnAt,
	}
}
