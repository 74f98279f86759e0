package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/quantamisecode-hub/groona-sub009/internal/models"
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
)

// Gorm implements notifier.Directory and notifier.Store on top of a gorm
// connection.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) Task(id uint) (*notifier.TaskInfo, error) {
	var task models.Task

	if err := s.db.Preload("Assignees").First(&task, id).Error; err != nil {
		return nil, fmt.Errorf("task %d: %w", id, err)
	}

	info := notifier.TaskInfo{
		ID:        task.ID,
		Name:      task.Name,
		ProjectID: task.ProjectID,
	}
	for _, assignee := range task.Assignees {
		info.AssigneeEmails = append(info.AssigneeEmails, assignee.Email)
	}

	return &info, nil
}

func (s *Gorm) Project(id uint) (*notifier.ProjectInfo, error) {
	var project models.Project

	if err := s.db.Preload("Owner").First(&project, id).Error; err != nil {
		return nil, fmt.Errorf("project %d: %w", id, err)
	}

	return &notifier.ProjectInfo{
		ID:         project.ID,
		Name:       project.Name,
		OwnerEmail: project.Owner.Email,
	}, nil
}

func (s *Gorm) RoleHolderEmails(projectID uint, role string) ([]string, error) {
	var emails []string

	err := s.db.Model(&models.ProjectUserRole{}).
		Joins("JOIN users ON users.id = project_user_roles.user_id").
		Where("project_user_roles.project_id = ? AND project_user_roles.role = ?", projectID, role).
		Pluck("users.email", &emails).Error

	if err != nil {
		return nil, fmt.Errorf("role holders for project %d: %w", projectID, err)
	}

	return emails, nil
}

func (s *Gorm) AdminEmails(tenantID uint) ([]string, error) {
	var emails []string

	err := s.db.Model(&models.User{}).
		Where("tenant_id = ? AND role = ?", tenantID, "admin").
		Pluck("email", &emails).Error

	if err != nil {
		return nil, fmt.Errorf("admins for tenant %d: %w", tenantID, err)
	}

	return emails, nil
}

func (s *Gorm) TeamMemberEmails(projectID uint) ([]string, error) {
	var emails []string

	err := s.db.Model(&models.ProjectUserRole{}).
		Distinct("users.email").
		Joins("JOIN users ON users.id = project_user_roles.user_id").
		Where("project_user_roles.project_id = ?", projectID).
		Pluck("users.email", &emails).Error

	if err != nil {
		return nil, fmt.Errorf("team members for project %d: %w", projectID, err)
	}

	return emails, nil
}

func (s *Gorm) Preferences(tenantID uint, emails []string) ([]models.NotificationPreference, error) {
	var prefs []models.NotificationPreference

	err := s.db.
		Where("tenant_id = ? AND user_email IN ?", tenantID, emails).
		Find(&prefs).Error

	if err != nil {
		return nil, fmt.Errorf("preferences for tenant %d: %w", tenantID, err)
	}

	return prefs, nil
}

func (s *Gorm) CreateNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *Gorm) CreateEmailLog(l *models.EmailNotificationLog) error {
	return s.db.Create(l).Error
}

func (s *Gorm) UpdateEmailLogStatus(id uint, status string) error {
	return s.db.Model(&models.EmailNotificationLog{}).
		Where("id = ?", id).
		Update("status", status).Error
}
