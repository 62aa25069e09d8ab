package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "monetrix/database/models_pkg"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles database operations for analysis records
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new analysis repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save persists a new analysis record, assigning its ID. CreatedAt is
// assigned by the database layer at insert time.
func (r *Repository) Save(ctx context.Context, record *models.AnalysisRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// LatestByUser retrieves the most recent analysis record for a user.
// Returns nil, nil when the user has no records yet.
func (r *Repository) LatestByUser(ctx context.Context, userID string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("LatestByUser: %w", err)
	}
	return &record, nil
}

// HistoryByUser retrieves up to limit records for a user, newest first
func (r *Repository) HistoryByUser(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("HistoryByUser: %w", err)
	}
	return records, nil
}

// ByIDAndUser retrieves a record by id, scoped to its owner. Returns
// nil, nil when no record matches both the id and the user.
func (r *Repository) ByIDAndUser(ctx context.Context, id, userID string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ByIDAndUser: %w", err)
	}
	return &record, nil
}

// PreviousBefore retrieves the most recent record for a user strictly older
// than the given creation time. Returns nil, nil when none exists.
func (r *Repository) PreviousBefore(ctx context.Context, userID string, before time.Time) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", userID, before).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("PreviousBefore: %w", err)
	}
	return &record, nil
}
