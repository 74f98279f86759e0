package notifier

import (
	"fmt"
	"log"
	"sync"

	"github.com/quantamisecode-hub/groona-sub009/internal/models"
)

// PreferenceCache batches and memoizes preference lookups. It is an explicit
// per-engine object rather than a package global so tests can build a fresh
// one per case; the settings handler calls Invalidate after an update.
type PreferenceCache struct {
	dir     Directory
	mu      sync.RWMutex
	entries map[string]models.NotificationPreference
}

func NewPreferenceCache(dir Directory) *PreferenceCache {
	return &PreferenceCache{
		dir:     dir,
		entries: make(map[string]models.NotificationPreference),
	}
}

// Lookup returns the preference per email for every address that has a
// record. Emails without a record are absent from the result, which the
// gate treats as "all enabled". A failed batch fetch degrades to the same
// permissive default.
func (c *PreferenceCache) Lookup(tenantID uint, emails []string) map[string]*models.NotificationPreference {
	found := make(map[string]*models.NotificationPreference, len(emails))
	var missing []string

	c.mu.RLock()
	for _, email := range emails {
		if pref, ok := c.entries[prefKey(tenantID, email)]; ok {
			copied := pref
			found[email] = &copied
		} else {
			missing = append(missing, email)
		}
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return found
	}

	rows, err := c.dir.Preferences(tenantID, missing)
	if err != nil {
		log.Printf("Failed to fetch notification preferences for tenant %d: %v", tenantID, err)
		return found
	}

	c.mu.Lock()
	for _, row := range rows {
		c.entries[prefKey(tenantID, row.UserEmail)] = row
		copied := row
		found[row.UserEmail] = &copied
	}
	c.mu.Unlock()

	return found
}

// Invalidate drops the cached record for one user, forcing a refetch on the
// next event.
func (c *PreferenceCache) Invalidate(tenantID uint, email string) {
	c.mu.Lock()
	delete(c.entries, prefKey(tenantID, email))
	c.mu.Unlock()
}

func prefKey(tenantID uint, email string) string {
	return fmt.Sprintf("%d:%s", tenantID, email)
}
