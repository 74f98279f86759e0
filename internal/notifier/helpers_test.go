package notifier

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quantamisecode-hub/groona-sub009/internal/models"
)

// fakeDir is an in-memory Directory for engine and resolver tests.
type fakeDir struct {
	tasks    map[uint]*TaskInfo
	projects map[uint]*ProjectInfo
	roles    map[string][]string // "projectID:role" -> emails
	admins   map[uint][]string
	members  map[uint][]string
	prefs    []models.NotificationPreference

	taskErr error
	prefErr error

	mu        sync.Mutex
	taskCalls int
	prefCalls int
}

func newFakeDir() *fakeDir {
	return &fakeDir{
		tasks:    make(map[uint]*TaskInfo),
		projects: make(map[uint]*ProjectInfo),
		roles:    make(map[string][]string),
		admins:   make(map[uint][]string),
		members:  make(map[uint][]string),
	}
}

func (d *fakeDir) Task(id uint) (*TaskInfo, error) {
	d.mu.Lock()
	d.taskCalls++
	d.mu.Unlock()

	if d.taskErr != nil {
		return nil, d.taskErr
	}
	if task, ok := d.tasks[id]; ok {
		return task, nil
	}
	return nil, errors.New("task not found")
}

func (d *fakeDir) Project(id uint) (*ProjectInfo, error) {
	if project, ok := d.projects[id]; ok {
		return project, nil
	}
	return nil, errors.New("project not found")
}

func (d *fakeDir) RoleHolderEmails(projectID uint, role string) ([]string, error) {
	return d.roles[fmt.Sprintf("%d:%s", projectID, role)], nil
}

func (d *fakeDir) AdminEmails(tenantID uint) ([]string, error) {
	return d.admins[tenantID], nil
}

func (d *fakeDir) TeamMemberEmails(projectID uint) ([]string, error) {
	return d.members[projectID], nil
}

func (d *fakeDir) Preferences(tenantID uint, emails []string) ([]models.NotificationPreference, error) {
	d.mu.Lock()
	d.prefCalls++
	d.mu.Unlock()

	if d.prefErr != nil {
		return nil, d.prefErr
	}

	wanted := make(map[string]bool, len(emails))
	for _, email := range emails {
		wanted[email] = true
	}

	var out []models.NotificationPreference
	for _, pref := range d.prefs {
		if pref.TenantID == tenantID && wanted[pref.UserEmail] {
			out = append(out, pref)
		}
	}
	return out, nil
}

// memStore is an in-memory Store capturing writes.
type memStore struct {
	mu            sync.Mutex
	notifications []models.Notification
	emailLogs     []models.EmailNotificationLog
	createdStatus map[uint]string // email log id -> status at creation
	notifErr      error
	nextID        uint
}

func newMemStore() *memStore {
	return &memStore{createdStatus: make(map[uint]string)}
}

func (s *memStore) CreateNotification(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notifErr != nil {
		return s.notifErr
	}

	s.nextID++
	n.ID = s.nextID
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *memStore) CreateEmailLog(l *models.EmailNotificationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	l.ID = s.nextID
	s.createdStatus[l.ID] = l.Status
	s.emailLogs = append(s.emailLogs, *l)
	return nil
}

func (s *memStore) UpdateEmailLogStatus(id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.emailLogs {
		if s.emailLogs[i].ID == id {
			s.emailLogs[i].Status = status
			return nil
		}
	}
	return errors.New("email log not found")
}

func (s *memStore) notificationsFor(email string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.RecipientEmail == email {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) emailLogFor(email string) *models.EmailNotificationLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.emailLogs {
		if l.RecipientEmail == email {
			copied := l
			return &copied
		}
	}
	return nil
}

// fakeMailer records sends and can fail for chosen recipients.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []Mail
	failFor map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]bool)}
}

func (m *fakeMailer) Send(mail Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failFor[mail.To] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, mail)
	return nil
}

func (m *fakeMailer) sentTo(email string) *Mail {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mail := range m.sent {
		if mail.To == email {
			copied := mail
			return &copied
		}
	}
	return nil
}

func newTestEngine(dir Directory, store Store, mailer Mailer) *Engine {
	return New(dir, store, mailer, Config{
		BaseURL:     "https://app.example.com",
		ProductName: "Groona",
		FromName:    "Groona",
	})
}

func uintPtr(v uint) *uint {
	return &v
}
