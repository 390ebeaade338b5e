package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	quotadomain "newsdesk-backend/internal/quota/domain"
)

// QuotaRepository persists per-(service, day) usage counters.
type QuotaRepository interface {
	// IncrementIfBelow atomically adds count to the day's counter only while
	// the result stays at or below cap. Returns whether the increment applied.
	// The row must already exist; callers ensure it via EnsureRecord.
	IncrementIfBelow(service, date string, count, cap int) (bool, error)
	// EnsureRecord creates the day's row if absent. Safe under concurrent
	// callers: a duplicate-key conflict is ignored.
	EnsureRecord(service, date string) error
	// Get returns the day's record, or nil if no request has been made yet.
	Get(service, date string) (*quotadomain.QuotaRecord, error)
}

type quotaRepository struct {
	db *gorm.DB
}

func NewQuotaRepository(db *gorm.DB) QuotaRepository {
	return &quotaRepository{db: db}
}

// IncrementIfBelow runs the conditional increment server-side so there is no
// read-modify-write gap between checking the cap and bumping the counter.
func (r *quotaRepository) IncrementIfBelow(service, date string, count, cap int) (bool, error) {
	result := r.db.Model(&quotadomain.QuotaRecord{}).
		Where("service = ? AND date = ? AND request_count + ? <= ?", service, date, count, cap).
		UpdateColumn("request_count", gorm.Expr("request_count + ?", count))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *quotaRepository) EnsureRecord(service, date string) error {
	record := quotadomain.QuotaRecord{
		ID:          uuid.New().String(),
		Service:     service,
		Date:        date,
		LastResetAt: time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "service"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *quotaRepository) Get(service, date string) (*quotadomain.QuotaRecord, error) {
	var record quotadomain.QuotaRecord
	err := r.db.Where("service = ? AND date = ?", service, date).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
