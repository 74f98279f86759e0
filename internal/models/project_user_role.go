package models

import "gorm.io/gorm"

type ProjectUserRole struct {
	gorm.Model

	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_project_role"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_user_project_role"`
	Role      string `gorm:"not null;uniqueIndex:idx_user_project_role"` // e.g., "project_manager", "member"

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
