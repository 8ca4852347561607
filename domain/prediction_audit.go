package domain

import (
	"time"

	"github.com/google/uuid"
)

// PredictionAudit records the outcome of one served prediction. Raw lab values
// are never stored.
type PredictionAudit struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID          string    `gorm:"column:request_id;index" json:"request_id"`
	ModelVersion       string    `gorm:"column:model_version" json:"model_version"`
	Label              int       `gorm:"column:label;not null" json:"label"`
	Confidence         float64   `gorm:"column:confidence" json:"confidence"`
	WarningCount       int       `gorm:"column:warning_count" json:"warning_count"`
	AttributionEnabled bool      `gorm:"column:attribution_enabled" json:"attribution_enabled"`
	TopFeature         string    `gorm:"column:top_feature" json:"top_feature"`
	LatencyMs          int64     `gorm:"column:latency_ms" json:"latency_ms"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PredictionAudit) TableName() string {
	return "prediction_audits"
}
