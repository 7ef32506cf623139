package models

import (
	"encoding/json"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditEntryModel is one row of the append-only audit log. Snapshots carry
// PII so they are stored through the encrypted serializer.
type AuditEntryModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EntityType string          `gorm:"type:varchar(40);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_audit_entity"`
	Operation  audit.Operation `gorm:"type:varchar(10);not null"`
	ActorID    *uuid.UUID      `gorm:"type:uuid;index"`
	OccurredAt time.Time       `gorm:"not null;index"`
	Snapshot   string          `gorm:"type:text;serializer:encrypted"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

func (m *AuditEntryModel) ToDomain() audit.Entry {
	return audit.Entry{
		ID:         m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Operation:  m.Operation,
		ActorID:    m.ActorID,
		OccurredAt: m.OccurredAt,
		Snapshot:   json.RawMessage(m.Snapshot),
	}
}

func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	return &AuditEntryModel{
		ID:         e.ID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Operation:  e.Operation,
		ActorID:    e.ActorID,
		OccurredAt: e.OccurredAt,
		Snapshot:   string(e.Snapshot),
	}
}
