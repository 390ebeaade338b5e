package usecase

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	authdomain "newsdesk-backend/internal/auth/domain"
	"newsdesk-backend/internal/metrics"
)

const maxViolationExcerpt = 200

// Thresholds configures the escalation policy: strikes below the cooldown
// strike are warnings, the cooldown strike blocks for CooldownMinutes, and
// anything past it blocks for BlockDays.
type Thresholds struct {
	CooldownStrike  int
	CooldownMinutes int
	BlockDays       int
	AutoResetHours  int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CooldownStrike:  3,
		CooldownMinutes: 30,
		BlockDays:       7,
		AutoResetHours:  48,
	}
}

// UserStore is the slice of the user repository the ledger mutates through.
type UserStore interface {
	Update(user *authdomain.User) error
}

// StrikeResult describes a user's state after a strike is applied.
type StrikeResult struct {
	Count        int        `json:"count"`
	Blocked      bool       `json:"blocked"`
	BlockType    string     `json:"block_type,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
	Message      string     `json:"message"`
}

// BlockStatus is the outcome of a block check.
type BlockStatus struct {
	Blocked       bool       `json:"blocked"`
	WasReset      bool       `json:"was_reset"`
	BlockType     string     `json:"block_type,omitempty"`
	BlockedUntil  *time.Time `json:"blocked_until,omitempty"`
	RemainingText string     `json:"remaining,omitempty"`
}

// StrikeLedger tracks per-user violations with escalating blocks and
// time-based auto-reset.
type StrikeLedger struct {
	users      UserStore
	thresholds Thresholds
}

func NewStrikeLedger(users UserStore, thresholds Thresholds) *StrikeLedger {
	return &StrikeLedger{users: users, thresholds: thresholds}
}

// ApplyStrike records a violation, escalates the user's block state per the
// thresholds, and returns a user-facing description of the new state.
func (l *StrikeLedger) ApplyStrike(user *authdomain.User, violationType, content string) (*StrikeResult, error) {
	now := time.Now()

	if len(content) > maxViolationExcerpt {
		content = content[:maxViolationExcerpt]
	}
	l.appendHistory(user, authdomain.StrikeEvent{
		Violation: violationType,
		Content:   content,
		At:        now,
	})

	user.StrikeCount++
	user.LastStrikeAt = &now

	result := &StrikeResult{Count: user.StrikeCount}
	switch {
	case user.StrikeCount > l.thresholds.CooldownStrike:
		until := now.Add(time.Duration(l.thresholds.BlockDays) * 24 * time.Hour)
		user.BlockedUntil = &until
		user.BlockType = authdomain.BlockLong
		result.Blocked = true
		result.BlockType = authdomain.BlockLong
		result.BlockedUntil = &until
		result.Message = fmt.Sprintf("Your account is blocked for %d days due to repeated misuse.", l.thresholds.BlockDays)
	case user.StrikeCount == l.thresholds.CooldownStrike:
		until := now.Add(time.Duration(l.thresholds.CooldownMinutes) * time.Minute)
		user.BlockedUntil = &until
		user.BlockType = authdomain.BlockCooldown
		result.Blocked = true
		result.BlockType = authdomain.BlockCooldown
		result.BlockedUntil = &until
		result.Message = fmt.Sprintf("You are temporarily blocked for %d minutes.", l.thresholds.CooldownMinutes)
	default:
		result.Message = fmt.Sprintf("Warning %d of %d: further misuse leads to a temporary block.",
			user.StrikeCount, l.thresholds.CooldownStrike-1)
	}

	metrics.StrikesTotal.WithLabelValues(violationType).Inc()
	if err := l.users.Update(user); err != nil {
		// Violation logging must never abort the caller's request.
		log.Printf("[Strikes] Failed to persist strike for user %s: %v", user.ID, err)
	}
	return result, nil
}

// CheckBlock resolves a user's current block state. A last strike older than
// the auto-reset window fully resets the user regardless of any block; an
// expired block clears only the block fields, keeping count and history.
func (l *StrikeLedger) CheckBlock(user *authdomain.User) (*BlockStatus, error) {
	now := time.Now()

	if user.LastStrikeAt != nil && now.Sub(*user.LastStrikeAt) >= time.Duration(l.thresholds.AutoResetHours)*time.Hour {
		l.reset(user)
		if err := l.users.Update(user); err != nil {
			return nil, err
		}
		return &BlockStatus{Blocked: false, WasReset: true}, nil
	}

	if user.BlockedUntil != nil {
		if user.BlockedUntil.After(now) {
			return &BlockStatus{
				Blocked:       true,
				BlockType:     user.BlockType,
				BlockedUntil:  user.BlockedUntil,
				RemainingText: formatRemaining(user.BlockedUntil.Sub(now)),
			}, nil
		}
		// Block served; keep the strike count and history.
		user.BlockedUntil = nil
		user.BlockType = authdomain.BlockNone
		if err := l.users.Update(user); err != nil {
			return nil, err
		}
	}

	return &BlockStatus{Blocked: false}, nil
}

// IsBlocked is the boolean view of CheckBlock used as a job entry gate.
func (l *StrikeLedger) IsBlocked(user *authdomain.User) (bool, error) {
	status, err := l.CheckBlock(user)
	if err != nil {
		return false, err
	}
	return status.Blocked, nil
}

func (l *StrikeLedger) reset(user *authdomain.User) {
	user.StrikeCount = 0
	user.LastStrikeAt = nil
	user.BlockedUntil = nil
	user.BlockType = authdomain.BlockNone
	user.StrikeHistory = nil
}

func (l *StrikeLedger) appendHistory(user *authdomain.User, event authdomain.StrikeEvent) {
	var history []authdomain.StrikeEvent
	if len(user.StrikeHistory) > 0 {
		if err := json.Unmarshal(user.StrikeHistory, &history); err != nil {
			log.Printf("[Strikes] Corrupt strike history for user %s, starting fresh: %v", user.ID, err)
			history = nil
		}
	}
	history = append(history, event)
	if raw, err := json.Marshal(history); err == nil {
		user.StrikeHistory = raw
	}
}

// formatRemaining renders a countdown as minutes, switching to "Hh Mm" past
// an hour.
func formatRemaining(d time.Duration) string {
	minutes := int(d.Minutes())
	if d > time.Duration(minutes)*time.Minute {
		minutes++ // round up partial minutes
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
