package notifier

import "github.com/quantamisecode-hub/groona-sub009/internal/models"

// criticalKinds always notify, overriding every preference including
// per-category opt-outs and critical_only.
var criticalKinds = map[EventKind]bool{
	EventTicketSLABreached: true,
	EventTimesheetApproved: true,
	EventTimesheetRejected: true,
	EventTaskAssigned:      true,
}

// ShouldNotify decides whether the event produces a notification for a
// recipient at all. A nil preference (no record) means notify.
func ShouldNotify(e Event, pref *models.NotificationPreference) bool {
	if criticalKinds[e.Kind] {
		return true
	}

	if pref == nil {
		return true
	}

	if pref.CriticalOnly {
		return false
	}

	switch e.Kind {
	case EventTaskAssigned:
		return pref.TaskAssigned
	case EventTaskCompleted:
		return pref.TaskCompleted
	case EventCommentAdded:
		return pref.CommentAdded
	case EventCommentMention:
		return pref.Mention
	case EventProjectUpdated:
		return pref.ProjectUpdated
	}

	return true
}
