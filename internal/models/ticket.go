package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ticket is a support/helpdesk item. SLA holds the negotiated response and
// resolution targets as JSON so plans can differ per tenant without schema
// churn.
type Ticket struct {
	gorm.Model

	TenantID    uint   `gorm:"not null;index"`
	ProjectID   *uint  `gorm:"index"`
	Title       string `gorm:"not null"`
	Description string
	Priority    string         `gorm:"not null;default:medium"` // "low", "medium", "high"
	Status      string         `gorm:"not null;default:open"`   // "open", "in_progress", "closed"
	SLA         datatypes.JSON `gorm:"type:jsonb"`
}
