package service

import (
	"context"
	"strings"
	"time"

	"monetrix/analytics"
	"monetrix/cache"
	"monetrix/database"
	models "monetrix/database/models_pkg"
)

// historyLimit caps how many records a history query returns
const historyLimit = 20

// Repository is the persistence surface the analysis service needs. The
// lookups it relies on are: filter by owner, sort by creation time
// descending, limit, and owner-scoped id lookup.
type Repository interface {
	Save(ctx context.Context, record *models.AnalysisRecord) error
	LatestByUser(ctx context.Context, userID string) (*models.AnalysisRecord, error)
	HistoryByUser(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error)
	ByIDAndUser(ctx context.Context, id, userID string) (*models.AnalysisRecord, error)
	PreviousBefore(ctx context.Context, userID string, before time.Time) (*models.AnalysisRecord, error)
}

// AnalysisService orchestrates the calculator, insight generator and trend
// comparator over the repository. The cache is optional; a nil cache simply
// disables the latest-record fast path.
type AnalysisService struct {
	repo  Repository
	cache *cache.AnalysisCache
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(repo Repository, analysisCache *cache.AnalysisCache) *AnalysisService {
	return &AnalysisService{
		repo:  repo,
		cache: analysisCache,
	}
}

// CreateResult is the create-analysis response payload
type CreateResult struct {
	Analytics analytics.Metrics   `json:"analytics"`
	Insights  []analytics.Insight `json:"insights"`
}

// Comparison is the comparison response payload. Previous and Trends are
// null when the record has no older sibling, which is a success case.
type Comparison struct {
	Current  *models.AnalysisRecord `json:"current"`
	Previous *models.AnalysisRecord `json:"previous"`
	Trends   *analytics.TrendDelta  `json:"trends"`
}

// CreateAnalysis validates the identifying fields, runs the derivation
// pipeline and persists the resulting record. The calculator itself is
// total; only missing identity fields are rejected, before any computation.
func (s *AnalysisService) CreateAnalysis(ctx context.Context, userID string, inputs analytics.Inputs) (*CreateResult, error) {
	if strings.TrimSpace(inputs.BusinessName) == "" {
		return nil, database.NewValidationError("businessName", "required")
	}
	if strings.TrimSpace(inputs.PeriodLabel) == "" {
		return nil, database.NewValidationError("periodLabel", "required")
	}

	metrics := analytics.Compute(inputs)
	insights := analytics.Generate(&metrics, inputs)

	record := &models.AnalysisRecord{
		UserID:       userID,
		BusinessName: inputs.BusinessName,
		PeriodLabel:  inputs.PeriodLabel,
		Inputs:       inputs,
		Analytics:    metrics,
		Insights:     insights,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	// The freshly created record is the new latest for this user.
	s.cache.Invalidate(ctx, userID)
	_ = s.cache.SetLatest(ctx, userID, record)

	return &CreateResult{
		Analytics: metrics,
		Insights:  insights,
	}, nil
}

// GetLatest returns the most recent record for a user, or NotFound when the
// user has no analyses yet.
func (s *AnalysisService) GetLatest(ctx context.Context, userID string) (*models.AnalysisRecord, error) {
	if record, ok := s.cache.GetLatest(ctx, userID); ok {
		return record, nil
	}

	record, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, database.NewNotFoundError("analysis")
	}

	_ = s.cache.SetLatest(ctx, userID, record)
	return record, nil
}

// GetHistory returns up to 20 records for a user, newest first. An empty
// history is a valid result, not an error.
func (s *AnalysisService) GetHistory(ctx context.Context, userID string) ([]models.AnalysisRecord, error) {
	records, err := s.repo.HistoryByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.AnalysisRecord{}
	}
	return records, nil
}

// GetComparison returns a record together with its immediate predecessor
// (the most recent record for the same user strictly older than it) and the
// trend delta between them. A record not owned by the user, or absent, is
// NotFound; a missing predecessor is not.
func (s *AnalysisService) GetComparison(ctx context.Context, userID, recordID string) (*Comparison, error) {
	current, err := s.repo.ByIDAndUser(ctx, recordID, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, database.NewNotFoundErrorWithID("analysis", recordID)
	}

	previous, err := s.repo.PreviousBefore(ctx, userID, current.CreatedAt)
	if err != nil {
		return nil, err
	}

	comparison := &Comparison{Current: current}
	if previous != nil {
		comparison.Previous = previous
		comparison.Trends = analytics.ComputeTrends(&previous.Analytics, &current.Analytics)
	}
	return comparison, nil
}
