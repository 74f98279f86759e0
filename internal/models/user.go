package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	TenantID     uint   `gorm:"not null;uniqueIndex:idx_tenant_email"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex:idx_tenant_email"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:member"` // "admin", "member"

	// Relationships
	OwnedProjects []Project         `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	ProjectRoles  []ProjectUserRole `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
