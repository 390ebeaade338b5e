package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsdesk-backend/internal/enhancement/domain"
	"newsdesk-backend/internal/metrics"
)

// ArtifactCacheRepository is the content-hash keyed cache over every AI
// artifact kind. Lookups never extend TTLs; a miss means "compute now".
type ArtifactCacheRepository interface {
	GetSummary(hash string) (*domain.SummaryCache, error)
	SaveSummary(hash, summary, style, language string, ttl time.Duration) error
	GetSentiment(hash string) (*domain.SentimentCache, error)
	SaveSentiment(hash, sentiment string, confidence float64, ttl time.Duration) error
	GetQA(hash string) (*domain.QACache, error)
	SaveQA(hash string, questions []domain.QuestionAnswer, ttl time.Duration) error
	GetCaption(hash string) (*domain.CaptionCache, error)
	SaveCaption(hash, caption string, ttl time.Duration) error
	GetEnhancement(hash string) (*domain.EnhancementCache, error)
	SaveEnhancement(hash, kind string, payload []byte, ttl time.Duration) error
}

type artifactCacheRepository struct {
	db *gorm.DB
}

func NewArtifactCacheRepository(db *gorm.DB) ArtifactCacheRepository {
	return &artifactCacheRepository{db: db}
}

// lookup fetches a row by content hash into dest, deleting it lazily when
// expired. Reports hit/miss per artifact kind.
func (r *artifactCacheRepository) lookup(kind, hash string, dest any, expired func() bool) (bool, error) {
	err := r.db.Where("content_hash = ?", hash).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.CacheMisses.WithLabelValues(kind).Inc()
			return false, nil
		}
		metrics.CacheMisses.WithLabelValues(kind).Inc()
		return false, err
	}
	if expired() {
		r.db.Where("content_hash = ?", hash).Delete(dest)
		metrics.CacheMisses.WithLabelValues(kind).Inc()
		return false, nil
	}
	metrics.CacheHits.WithLabelValues(kind).Inc()
	return true, nil
}

// upsert writes through on the content hash column so recomputing the same
// hash overwrites rather than duplicates.
func (r *artifactCacheRepository) upsert(value any, updateColumns []string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_hash"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(value).Error
}

func (r *artifactCacheRepository) GetSummary(hash string) (*domain.SummaryCache, error) {
	var cached domain.SummaryCache
	found, err := r.lookup("summary", hash, &cached, func() bool { return cached.IsExpired() })
	if err != nil || !found {
		return nil, err
	}
	return &cached, nil
}

func (r *artifactCacheRepository) SaveSummary(hash, summary, style, language string, ttl time.Duration) error {
	return r.upsert(&domain.SummaryCache{
		ID:          uuid.New().String(),
		ContentHash: hash,
		Summary:     summary,
		Style:       style,
		Language:    language,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
	}, []string{"summary", "style", "language", "expires_at"})
}

func (r *artifactCacheRepository) GetSentiment(hash string) (*domain.SentimentCache, error) {
	var cached domain.SentimentCache
	found, err := r.lookup("sentiment", hash, &cached, func() bool { return cached.IsExpired() })
	if err != nil || !found {
		return nil, err
	}
	return &cached, nil
}

func (r *artifactCacheRepository) SaveSentiment(hash, sentiment string, confidence float64, ttl time.Duration) error {
	return r.upsert(&domain.SentimentCache{
		ID:          uuid.New().String(),
		ContentHash: hash,
		Sentiment:   sentiment,
		Confidence:  confidence,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
	}, []string{"sentiment", "confidence", "expires_at"})
}

func (r *artifactCacheRepository) GetQA(hash string) (*domain.QACache, error) {
	var cached domain.QACache
	found, err := r.lookup("qa", hash, &cached, func() bool { return cached.IsExpired() })
	if err != nil || !found {
		return nil, err
	}
	return &cached, nil
}

func (r *artifactCacheRepository) SaveQA(hash string, questions []domain.QuestionAnswer, ttl time.Duration) error {
	return r.upsert(&domain.QACache{
		ID:          uuid.New().String(),
		ContentHash: hash,
		Questions:   questions,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
	}, []string{"questions", "expires_at"})
}

func (r *artifactCacheRepository) GetCaption(hash string) (*domain.CaptionCache, error) {
	var cached domain.CaptionCache
	found, err := r.lookup("caption", hash, &cached, func() bool { return cached.IsExpired() })
	if err != nil || !found {
		return nil, err
	}
	return &cached, nil
}

func (r *artifactCacheRepository) SaveCaption(hash, caption string, ttl time.Duration) error {
	return r.upsert(&domain.CaptionCache{
		ID:          uuid.New().String(),
		ContentHash: hash,
		Caption:     caption,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
	}, []string{"caption", "expires_at"})
}

func (r *artifactCacheRepository) GetEnhancement(hash string) (*domain.EnhancementCache, error) {
	var cached domain.EnhancementCache
	found, err := r.lookup("enhancement", hash, &cached, func() bool { return cached.IsExpired() })
	if err != nil || !found {
		return nil, err
	}
	return &cached, nil
}

func (r *artifactCacheRepository) SaveEnhancement(hash, kind string, payload []byte, ttl time.Duration) error {
	return r.upsert(&domain.EnhancementCache{
		ID:          uuid.New().String(),
		ContentHash: hash,
		Kind:        kind,
		Payload:     datatypes.JSON(payload),
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
	}, []string{"kind", "payload", "expires_at"})
}
