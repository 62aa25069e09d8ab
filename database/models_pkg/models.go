package models

import (
	"time"

	"monetrix/analytics"
)

// User is an account that owns analysis records. The analysis core only
// ever sees the ID; everything else belongs to the auth layer.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// AnalysisRecord is one persisted financial analysis for one reporting
// period. Immutable after creation: there is no update path, comparison and
// history only read.
//
// Key Fields:
//   - UserID: owning account (indexed; every query filters on it)
//   - Inputs: the raw submission, kept verbatim for auditability
//   - Analytics: the derived metrics including PQI and expense score
//   - Insights: the ordered insight list as generated
//   - CreatedAt: assigned at persistence time, drives history ordering and
//     previous-period lookup
type AnalysisRecord struct {
	ID           string              `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string              `gorm:"type:uuid;index;not null" json:"userId"`
	BusinessName string              `gorm:"size:200;not null" json:"businessName"`
	PeriodLabel  string              `gorm:"size:100;not null" json:"periodLabel"`
	Inputs       analytics.Inputs    `gorm:"serializer:json;type:jsonb" json:"inputs"`
	Analytics    analytics.Metrics   `gorm:"serializer:json;type:jsonb" json:"analytics"`
	Insights     []analytics.Insight `gorm:"serializer:json;type:jsonb" json:"insights"`
	CreatedAt    time.Time           `gorm:"index;autoCreateTime" json:"createdAt"`
}

// TableName specifies the table name for AnalysisRecord
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
