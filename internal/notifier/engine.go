package notifier

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/quantamisecode-hub/groona-sub009/internal/models"
)

// Config carries the deployment-specific knobs of the engine.
type Config struct {
	BaseURL     string // e.g. https://app.groona.io
	ProductName string // appended to email subjects
	FromName    string // sender display name on outbound email
	// Broadcast, when set, receives every created in-app notification
	// (used to push over the websocket hub).
	Broadcast func(models.Notification)
}

// Engine is the notification dispatch pipeline: resolve recipients, gate on
// preferences, route channels, build messages, deliver. Stateless between
// events apart from the preference cache.
type Engine struct {
	dir       Directory
	deliverer *Deliverer
	prefs     *PreferenceCache
	cfg       Config
}

func New(dir Directory, store Store, mailer Mailer, cfg Config) *Engine {
	if cfg.ProductName == "" {
		cfg.ProductName = "Groona"
	}

	return &Engine{
		dir:       dir,
		deliverer: NewDeliverer(store, mailer, cfg.FromName, cfg.Broadcast),
		prefs:     NewPreferenceCache(dir),
		cfg:       cfg,
	}
}

// Prefs exposes the preference cache so the settings handler can invalidate
// entries after a user edits their toggles.
func (en *Engine) Prefs() *PreferenceCache {
	return en.prefs
}

// ProcessEvent runs the full pipeline for one event and returns the in-app
// notifications it created. Malformed input (unknown kind, missing tenant)
// is the only error the caller sees; resolution and delivery failures are
// logged and absorbed so the triggering business action never fails because
// a notification could not go out.
func (en *Engine) ProcessEvent(e Event) ([]models.Notification, error) {
	if !KnownKind(e.Kind) {
		err := fmt.Errorf("unknown event kind %q", e.Kind)
		log.Printf("Rejected event: %v", err)
		return nil, err
	}

	if e.TenantID == 0 {
		err := fmt.Errorf("event %s is missing a tenant", e.Kind)
		log.Printf("Rejected event: %v", err)
		return nil, err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	resolution := Resolve(e, en.dir)
	if len(resolution.Recipients) == 0 {
		return nil, nil
	}

	emails := make([]string, 0, len(resolution.Recipients))
	for _, rec := range resolution.Recipients {
		emails = append(emails, rec.Email)
	}
	prefs := en.prefs.Lookup(e.TenantID, emails)

	inApp := BuildInApp(e)
	email := BuildEmail(e, resolution.ProjectID, en.cfg.BaseURL, en.cfg.ProductName)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created []models.Notification
	)

	for _, rec := range resolution.Recipients {
		pref := prefs[rec.Email]

		if !ShouldNotify(e, pref) {
			continue
		}

		channels := ChannelsFor(e, pref)
		if len(channels) == 0 {
			continue
		}

		wg.Add(1)
		go func(rec Recipient, channels []ChannelKind) {
			defer wg.Done()

			for _, result := range en.deliverer.DeliverTo(e, rec, channels, resolution.ProjectID, inApp, email) {
				if result.Err != nil || result.Notification == nil {
					continue
				}

				mu.Lock()
				created = append(created, *result.Notification)
				mu.Unlock()
			}
		}(rec, channels)
	}

	wg.Wait()
	return created, nil
}
