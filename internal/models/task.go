package models

import "gorm.io/gorm"

type Task struct {
	gorm.Model

	TenantID  uint   `gorm:"not null;index"`
	ProjectID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Status    string `gorm:"not null;default:open"`

	// Relationships
	Project   Project        `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignees []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type TaskAssignee struct {
	gorm.Model

	TaskID uint   `gorm:"not null;uniqueIndex:idx_task_assignee"`
	Email  string `gorm:"not null;uniqueIndex:idx_task_assignee"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
