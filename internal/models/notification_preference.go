package models

import "gorm.io/gorm"

// NotificationPreference is owned by the settings UI; the dispatch engine
// only ever reads it. A user without a row gets all toggles enabled.
type NotificationPreference struct {
	gorm.Model

	TenantID  uint   `gorm:"not null;uniqueIndex:idx_tenant_user_pref"`
	UserEmail string `gorm:"not null;uniqueIndex:idx_tenant_user_pref"`

	InAppEnabled bool `gorm:"not null;default:true"`
	EmailEnabled bool `gorm:"not null;default:true"`
	CriticalOnly bool `gorm:"not null;default:false"`

	// Per-category toggles
	TaskAssigned   bool `gorm:"not null;default:true"`
	TaskCompleted  bool `gorm:"not null;default:true"`
	CommentAdded   bool `gorm:"not null;default:true"`
	Mention        bool `gorm:"not null;default:true"`
	ProjectUpdated bool `gorm:"not null;default:true"`
}
