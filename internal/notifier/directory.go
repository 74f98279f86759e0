package notifier

import (
	"github.com/quantamisecode-hub/groona-sub009/internal/models"
)

// TaskInfo is the slice of a task the resolver needs.
type TaskInfo struct {
	ID             uint
	Name           string
	ProjectID      uint
	AssigneeEmails []string
}

// ProjectInfo is the slice of a project the resolver needs.
type ProjectInfo struct {
	ID         uint
	Name       string
	OwnerEmail string
}

// Directory provides the read-only entity lookups the engine depends on.
// The production implementation sits on gorm; tests substitute fakes.
type Directory interface {
	Task(id uint) (*TaskInfo, error)
	Project(id uint) (*ProjectInfo, error)
	RoleHolderEmails(projectID uint, role string) ([]string, error)
	AdminEmails(tenantID uint) ([]string, error)
	TeamMemberEmails(projectID uint) ([]string, error)
	Preferences(tenantID uint, emails []string) ([]models.NotificationPreference, error)
}

// Store is the engine's write surface.
type Store interface {
	CreateNotification(n *models.Notification) error
	CreateEmailLog(l *models.EmailNotificationLog) error
	UpdateEmailLogStatus(id uint, status string) error
}

// Mail is a single outbound message handed to the transport.
type Mail struct {
	To       string
	Subject  string
	HTML     string
	FromName string
}

// Mailer is the outbound email capability. The engine never implements
// transport, it only invokes it.
type Mailer interface {
	Send(m Mail) error
}

// DeliveryResult reports the outcome of one (recipient, channel) attempt.
// Failures are recorded here instead of aborting sibling deliveries.
type DeliveryResult struct {
	Recipient    string
	Channel      ChannelKind
	Notification *models.Notification // set for successful IN_APP deliveries
	Err          error
}
