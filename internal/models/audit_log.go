package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog persists ERROR+ application logs for later inspection.
// Rows older than 30 days are swept by logging.StartCleanup.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"index" json:"timestamp"`
	Level     string         `gorm:"size:10;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	UserID    *string        `gorm:"size:64;index" json:"user_id,omitempty"`
	RequestID string         `gorm:"size:64" json:"request_id,omitempty"`
	Action    string         `gorm:"size:100;index" json:"action,omitempty"`
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	LatencyMs int            `json:"latency_ms,omitempty"`
	Extra     datatypes.JSON `json:"extra,omitempty"`
}
