package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsdesk-backend/internal/enhancement/domain"
)

// EnhancementRepository persists per-article enhancement records.
type EnhancementRepository interface {
	// GetByID returns the record for an article id, or nil if absent.
	GetByID(articleID string) (*domain.ArticleEnhancement, error)
	// GetByIDs returns the existing records for a batch of article ids.
	GetByIDs(articleIDs []string) ([]domain.ArticleEnhancement, error)
	// UpsertPending creates or refreshes the record in pending state without
	// touching already-resolved fields.
	UpsertPending(record *domain.ArticleEnhancement) error
	// Complete stores resolved fields and moves pending→completed. A record
	// that already left pending is untouched; the status never moves backward.
	Complete(record *domain.ArticleEnhancement) error
	// Fail moves pending→failed.
	Fail(articleID string) error
}

type enhancementRepository struct {
	db *gorm.DB
}

func NewEnhancementRepository(db *gorm.DB) EnhancementRepository {
	return &enhancementRepository{db: db}
}

func (r *enhancementRepository) GetByID(articleID string) (*domain.ArticleEnhancement, error) {
	var record domain.ArticleEnhancement
	err := r.db.Where("id = ?", articleID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *enhancementRepository) GetByIDs(articleIDs []string) ([]domain.ArticleEnhancement, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}
	var records []domain.ArticleEnhancement
	err := r.db.Where("id IN ?", articleIDs).Find(&records).Error
	return records, err
}

func (r *enhancementRepository) UpsertPending(record *domain.ArticleEnhancement) error {
	record.ProcessingStatus = domain.StatusPending
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "title", "processing_status", "updated_at"}),
	}).Create(record).Error
}

func (r *enhancementRepository) Complete(record *domain.ArticleEnhancement) error {
	// Struct-based update with an explicit column list so the JSON serializer
	// applies to the slice fields. Only resolved fields are written.
	columns := []string{"processing_status", "updated_at"}
	if len(record.Tags) > 0 {
		columns = append(columns, "tags")
	}
	if record.Sentiment != nil {
		columns = append(columns, "sentiment", "sentiment_score")
	}
	if len(record.KeyPoints) > 0 {
		columns = append(columns, "key_points")
	}
	if record.ComplexityMeter != nil {
		columns = append(columns, "complexity_meter")
	}
	if len(record.Locations) > 0 {
		columns = append(columns, "locations")
	}
	if len(record.Questions) > 0 {
		columns = append(columns, "questions")
	}
	if len(record.NewsInsights) > 0 {
		columns = append(columns, "news_insights")
	}
	if record.ReadingMinutes != nil {
		columns = append(columns, "reading_minutes")
	}
	if record.Complexity != nil {
		columns = append(columns, "complexity")
	}

	record.ProcessingStatus = domain.StatusCompleted
	record.UpdatedAt = time.Now()
	return r.db.Model(&domain.ArticleEnhancement{}).
		Where("id = ? AND processing_status = ?", record.ID, domain.StatusPending).
		Select(columns).
		Updates(record).Error
}

func (r *enhancementRepository) Fail(articleID string) error {
	return r.db.Model(&domain.ArticleEnhancement{}).
		Where("id = ? AND processing_status = ?", articleID, domain.StatusPending).
		Updates(map[string]any{
			"processing_status": domain.StatusFailed,
			"updated_at":        time.Now(),
		}).Error
}
