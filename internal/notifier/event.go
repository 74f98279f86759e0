package notifier

import "strconv"

// EventKind identifies a domain occurrence the engine knows how to route.
type EventKind string

const (
	EventTaskAssigned       EventKind = "TASK_ASSIGNED"
	EventTaskCompleted      EventKind = "TASK_COMPLETED"
	EventTimesheetSubmitted EventKind = "TIMESHEET_SUBMITTED"
	EventTimesheetApproved  EventKind = "TIMESHEET_APPROVED"
	EventTimesheetRejected  EventKind = "TIMESHEET_REJECTED"
	EventTicketCreated      EventKind = "TICKET_CREATED"
	EventTicketAssigned     EventKind = "TICKET_ASSIGNED"
	EventTicketSLABreached  EventKind = "TICKET_SLA_BREACHED"
	EventCommentMention     EventKind = "COMMENT_MENTION"
	EventCommentAdded       EventKind = "COMMENT_ADDED"
	EventClientCommentAdded EventKind = "CLIENT_COMMENT_ADDED"
	EventProjectUpdated     EventKind = "PROJECT_UPDATED"
	EventMilestoneCompleted EventKind = "MILESTONE_COMPLETED"
	EventApprovalRequested  EventKind = "APPROVAL_REQUESTED"
	EventLeaveCancelled     EventKind = "LEAVE_CANCELLED"
)

// ChannelKind is a delivery channel.
type ChannelKind string

const (
	ChannelInApp ChannelKind = "IN_APP"
	ChannelEmail ChannelKind = "EMAIL"
)

// Event is an immutable domain event handed to the engine by the business
// layer that detected it. Metadata carries rule-specific inputs (assignee
// emails, mention lists, project ids) as decoded JSON values.
type Event struct {
	ID         string
	Kind       EventKind
	TenantID   uint
	EntityType string // "task", "project", "ticket", "timesheet", ...
	EntityID   uint
	ActorEmail string
	ActorName  string
	Metadata   map[string]interface{}
	Channels   []ChannelKind
}

// HasChannel reports whether the event explicitly declares the channel.
func (e Event) HasChannel(c ChannelKind) bool {
	for _, declared := range e.Channels {
		if declared == c {
			return true
		}
	}
	return false
}

// KnownKind reports whether the engine has a resolution rule for the kind.
func KnownKind(k EventKind) bool {
	_, ok := resolvers[k]
	return ok
}

// metaString reads a string metadata value, "" when absent or mistyped.
func metaString(md map[string]interface{}, key string) string {
	if md == nil {
		return ""
	}
	if s, ok := md[key].(string); ok {
		return s
	}
	return ""
}

// metaStrings reads a metadata value that may be a single string or a list
// of strings (JSON arrays decode as []interface{}).
func metaStrings(md map[string]interface{}, key string) []string {
	if md == nil {
		return nil
	}

	switch v := md[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	return nil
}

// metaID reads a numeric identifier that may arrive as a JSON number or a
// numeric string.
func metaID(md map[string]interface{}, key string) (uint, bool) {
	if md == nil {
		return 0, false
	}

	switch v := md[key].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case int:
		if v > 0 {
			return uint(v), true
		}
	case uint:
		if v > 0 {
			return v, true
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	}

	return 0, false
}
