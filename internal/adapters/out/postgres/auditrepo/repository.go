// Package auditrepo appends to the immutable mutation audit log.
package auditrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/core/ports"
)

// AuditEntryDTO represents the database structure for audit log rows.
type AuditEntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"index;not null"`
	EntityType string     `gorm:"not null"`
	EntityID   string     `gorm:"index;not null"`
	Details    string
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming to use "audit_log".
func (AuditEntryDTO) TableName() string {
	return "audit_log"
}

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add appends one audit row inside the caller's transaction.
func (r *GormAuditRepository) Add(ctx context.Context, entry ports.AuditEntry) error {
	var actorID *uuid.UUID
	if entry.ActorID != nil {
		raw := entry.ActorID.Bytes()
		actorID = &raw
	}

	dto := AuditEntryDTO{
		ID:         entry.ID.Bytes(),
		ActorID:    actorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
		CreatedAt:  entry.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
