package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model

	TenantID       uint   `gorm:"not null;index"`
	RecipientEmail string `gorm:"not null;index"`
	Type           string `gorm:"not null"` // e.g., "task_assigned", "sla_breach", "system"
	Title          string `gorm:"not null"`
	Message        string
	EntityType     string
	EntityID       uint
	ProjectID      *uint `gorm:"index"`
	SenderName     string
	Read           bool           `gorm:"not null;default:false"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
}
