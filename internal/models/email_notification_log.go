package models

import "gorm.io/gorm"

// EmailNotificationLog records every outbound email attempt. A row is
// written with status "pending" before the send and updated afterwards.
type EmailNotificationLog struct {
	gorm.Model

	TenantID       uint   `gorm:"not null;index"`
	EventID        string `gorm:"not null;index"`
	RecipientEmail string `gorm:"not null"`
	Subject        string `gorm:"not null"`
	Status         string `gorm:"not null;default:pending"` // "pending", "sent", "failed"
}
