package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ValidationError reports missing or conflicting input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing resource (user, article).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// QuotaExceededError reports an exhausted daily quota. Always recoverable by
// waiting for the daily reset, never fatal.
type QuotaExceededError struct {
	Service   string
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota exceeded for %s (remaining: %d)", e.Service, e.Remaining)
}

// BlockedError reports an active strike-based block. Carries the remaining
// time and block kind so clients can render a countdown.
type BlockedError struct {
	Until   time.Time
	Kind    string
	Message string
}

func (e *BlockedError) Error() string { return e.Message }

// UpstreamParseError reports an AI response that did not match the expected
// schema or failed enum validation. Triggers fallback to the next model
// rather than immediate surfacing.
type UpstreamParseError struct {
	Task  string
	Model string
	Err   error
}

func (e *UpstreamParseError) Error() string {
	return fmt.Sprintf("%s: model %s returned unparseable response: %v", e.Task, e.Model, e.Err)
}

func (e *UpstreamParseError) Unwrap() error { return e.Err }

// UpstreamExhaustedError reports that every model in the fallback chain
// failed. Terminal for the request.
type UpstreamExhaustedError struct {
	Task string
}

func (e *UpstreamExhaustedError) Error() string {
	return fmt.Sprintf("%s failed: all models exhausted", e.Task)
}

// ScrapeFailedError reports a content acquisition failure.
type ScrapeFailedError struct {
	URL string
	Err error
}

func (e *ScrapeFailedError) Error() string {
	return fmt.Sprintf("failed to scrape %s: %v", e.URL, e.Err)
}

func (e *ScrapeFailedError) Unwrap() error { return e.Err }

// StatusAndCode maps an error to an HTTP status and a stable machine-readable
// code for the response body.
func StatusAndCode(err error) (int, string) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		quota      *QuotaExceededError
		blocked    *BlockedError
		parse      *UpstreamParseError
		exhausted  *UpstreamExhaustedError
		scrape     *ScrapeFailedError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.As(err, &notFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.As(err, &quota):
		return http.StatusTooManyRequests, "QUOTA_EXCEEDED"
	case errors.As(err, &blocked):
		return http.StatusForbidden, "BLOCKED"
	case errors.As(err, &exhausted):
		return http.StatusServiceUnavailable, "AI_UNAVAILABLE"
	case errors.As(err, &parse):
		return http.StatusBadGateway, "AI_RESPONSE_INVALID"
	case errors.As(err, &scrape):
		return http.StatusBadRequest, "SCRAPE_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
