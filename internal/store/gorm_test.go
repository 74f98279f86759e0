package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quantamisecode-hub/groona-sub009/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUserRole{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.EmailNotificationLog{},
	)
	require.NoError(t, err)

	return db
}

func seedProject(t *testing.T, db *gorm.DB) (models.User, models.Project) {
	t.Helper()

	owner := models.User{TenantID: 1, Name: "Owner", Email: "owner@x.com", PasswordHash: "x", Role: "admin"}
	require.NoError(t, db.Create(&owner).Error)

	project := models.Project{TenantID: 1, Name: "Apollo", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)

	return owner, project
}

func TestGormTask(t *testing.T) {
	db := testDB(t)
	_, project := seedProject(t, db)
	s := NewGorm(db)

	task := models.Task{TenantID: 1, ProjectID: project.ID, Name: "Ship it"}
	require.NoError(t, db.Create(&task).Error)
	require.NoError(t, db.Create(&models.TaskAssignee{TaskID: task.ID, Email: "a@x.com"}).Error)
	require.NoError(t, db.Create(&models.TaskAssignee{TaskID: task.ID, Email: "b@x.com"}).Error)

	info, err := s.Task(task.ID)
	require.NoError(t, err)

	assert.Equal(t, task.ID, info.ID)
	assert.Equal(t, "Ship it", info.Name)
	assert.Equal(t, project.ID, info.ProjectID)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, info.AssigneeEmails)

	_, err = s.Task(9999)
	assert.Error(t, err)
}

func TestGormProject(t *testing.T) {
	db := testDB(t)
	_, project := seedProject(t, db)
	s := NewGorm(db)

	info, err := s.Project(project.ID)
	require.NoError(t, err)

	assert.Equal(t, "Apollo", info.Name)
	assert.Equal(t, "owner@x.com", info.OwnerEmail)
}

func TestGormRoleHolderEmails(t *testing.T) {
	db := testDB(t)
	owner, project := seedProject(t, db)
	s := NewGorm(db)

	pm := models.User{TenantID: 1, Name: "PM", Email: "pm@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&pm).Error)

	require.NoError(t, db.Create(&models.ProjectUserRole{UserID: pm.ID, ProjectID: project.ID, Role: "project_manager"}).Error)
	require.NoError(t, db.Create(&models.ProjectUserRole{UserID: owner.ID, ProjectID: project.ID, Role: "member"}).Error)

	emails, err := s.RoleHolderEmails(project.ID, "project_manager")
	require.NoError(t, err)
	assert.Equal(t, []string{"pm@x.com"}, emails)

	emails, err = s.RoleHolderEmails(project.ID, "reviewer")
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestGormAdminEmails(t *testing.T) {
	db := testDB(t)
	seedProject(t, db)
	s := NewGorm(db)

	member := models.User{TenantID: 1, Name: "Member", Email: "m@x.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, db.Create(&member).Error)
	otherTenant := models.User{TenantID: 2, Name: "Other", Email: "o@x.com", PasswordHash: "x", Role: "admin"}
	require.NoError(t, db.Create(&otherTenant).Error)

	emails, err := s.AdminEmails(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@x.com"}, emails)
}

func TestGormTeamMemberEmails(t *testing.T) {
	db := testDB(t)
	owner, project := seedProject(t, db)
	s := NewGorm(db)

	dev := models.User{TenantID: 1, Name: "Dev", Email: "dev@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&dev).Error)

	// Two roles for the owner; the query must still return one row per user.
	require.NoError(t, db.Create(&models.ProjectUserRole{UserID: owner.ID, ProjectID: project.ID, Role: "project_manager"}).Error)
	require.NoError(t, db.Create(&models.ProjectUserRole{UserID: owner.ID, ProjectID: project.ID, Role: "member"}).Error)
	require.NoError(t, db.Create(&models.ProjectUserRole{UserID: dev.ID, ProjectID: project.ID, Role: "member"}).Error)

	emails, err := s.TeamMemberEmails(project.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"owner@x.com", "dev@x.com"}, emails)
}

func TestGormPreferences(t *testing.T) {
	db := testDB(t)
	s := NewGorm(db)

	require.NoError(t, db.Create(&models.NotificationPreference{
		TenantID: 1, UserEmail: "a@x.com", InAppEnabled: true, EmailEnabled: false,
	}).Error)
	require.NoError(t, db.Create(&models.NotificationPreference{
		TenantID: 2, UserEmail: "a@x.com", InAppEnabled: true, EmailEnabled: true,
	}).Error)

	prefs, err := s.Preferences(1, []string{"a@x.com", "missing@x.com"})
	require.NoError(t, err)

	require.Len(t, prefs, 1)
	assert.Equal(t, uint(1), prefs[0].TenantID)
	assert.False(t, prefs[0].EmailEnabled)
}

func TestGormEmailLogLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewGorm(db)

	logRow := models.EmailNotificationLog{
		TenantID:       1,
		EventID:        "evt-1",
		RecipientEmail: "a@x.com",
		Subject:        "Timesheet Rejected - Groona",
		Status:         "pending",
	}
	require.NoError(t, s.CreateEmailLog(&logRow))
	require.NotZero(t, logRow.ID)

	require.NoError(t, s.UpdateEmailLogStatus(logRow.ID, "sent"))

	var reloaded models.EmailNotificationLog
	require.NoError(t, db.First(&reloaded, logRow.ID).Error)
	assert.Equal(t, "sent", reloaded.Status)
}

func TestGormCreateNotification(t *testing.T) {
	db := testDB(t)
	s := NewGorm(db)

	projectID := uint(4)
	n := models.Notification{
		TenantID:       1,
		RecipientEmail: "a@x.com",
		Type:           "task_assigned",
		Title:          "New Task Assigned",
		Message:        "Priya assigned you to Ship it",
		EntityType:     "task",
		EntityID:       10,
		ProjectID:      &projectID,
	}
	require.NoError(t, s.CreateNotification(&n))
	require.NotZero(t, n.ID)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.False(t, reloaded.Read)
	assert.Equal(t, "task_assigned", reloaded.Type)
}
