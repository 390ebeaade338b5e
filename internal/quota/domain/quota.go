package domain

import "time"

// QuotaRecord tracks API usage for one service on one provider-timezone day.
// One row per (service, date); the request count only moves through atomic
// conditional increments so concurrent callers can never over-reserve.
type QuotaRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Service      string    `json:"service" gorm:"uniqueIndex:idx_service_date;not null"`
	Date         string    `json:"date" gorm:"uniqueIndex:idx_service_date;not null"` // YYYY-MM-DD in the provider reset timezone
	RequestCount int       `json:"request_count" gorm:"not null;default:0"`
	LastResetAt  time.Time `json:"last_reset_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (QuotaRecord) TableName() string {
	return "quota_records"
}
