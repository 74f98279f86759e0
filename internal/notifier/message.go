package notifier

import "fmt"

type label struct {
	Type  string
	Title string
}

// systemLabel is the fallback for kinds without a dedicated label.
var systemLabel = label{Type: "system", Title: "Notification"}

var labels = map[EventKind]label{
	EventTaskAssigned:       {Type: "task_assigned", Title: "New Task Assigned"},
	EventTaskCompleted:      {Type: "task_completed", Title: "Task Completed"},
	EventTimesheetSubmitted: {Type: "timesheet_submitted", Title: "Timesheet Submitted"},
	EventTimesheetApproved:  {Type: "timesheet_approved", Title: "Timesheet Approved"},
	EventTimesheetRejected:  {Type: "timesheet_rejected", Title: "Timesheet Rejected"},
	EventTicketCreated:      {Type: "ticket_created", Title: "New Ticket Created"},
	EventTicketAssigned:     {Type: "ticket_assigned", Title: "Ticket Assigned"},
	EventTicketSLABreached:  {Type: "sla_breach", Title: "⚠️ SLA Breach Alert"},
	EventCommentMention:     {Type: "mention", Title: "You Were Mentioned"},
	EventCommentAdded:       {Type: "comment_added", Title: "New Comment"},
	EventClientCommentAdded: {Type: "client_comment", Title: "Client Comment"},
	EventProjectUpdated:     {Type: "project_updated", Title: "Project Updated"},
	EventMilestoneCompleted: {Type: "milestone_completed", Title: "🎉 Milestone Completed"},
	EventApprovalRequested:  {Type: "approval_requested", Title: "Approval Requested"},
	EventLeaveCancelled:     {Type: "leave_cancelled", Title: "Leave Cancelled"},
}

var verbs = map[EventKind]string{
	EventTaskAssigned:       "assigned you to",
	EventTaskCompleted:      "completed",
	EventTimesheetSubmitted: "submitted a timesheet for",
	EventTimesheetApproved:  "approved your timesheet",
	EventTimesheetRejected:  "rejected your timesheet",
	EventTicketCreated:      "opened",
	EventTicketAssigned:     "assigned you to",
	EventTicketSLABreached:  "breached the SLA on",
	EventCommentMention:     "mentioned you on",
	EventCommentAdded:       "commented on",
	EventClientCommentAdded: "left a client comment on",
	EventProjectUpdated:     "updated",
	EventMilestoneCompleted: "completed a milestone on",
	EventApprovalRequested:  "requested approval for",
	EventLeaveCancelled:     "cancelled leave for",
}

// InAppPayload is what the Deliverer persists for the notification center.
type InAppPayload struct {
	Type    string
	Title   string
	Message string
}

// EmailPayload is the rendered subject and HTML body for one recipient.
type EmailPayload struct {
	Subject string
	HTML    string
}

// BuildInApp maps the event kind to its label and renders the body text.
func BuildInApp(e Event) InAppPayload {
	l, ok := labels[e.Kind]
	if !ok {
		l = systemLabel
	}

	return InAppPayload{
		Type:    l.Type,
		Title:   l.Title,
		Message: bodyText(e),
	}
}

// BuildEmail renders the email subject and an HTML fragment with a single
// call-to-action link back into the product.
func BuildEmail(e Event, projectID *uint, baseURL, productName string) EmailPayload {
	l, ok := labels[e.Kind]
	if !ok {
		l = systemLabel
	}

	message := bodyText(e)
	link := DeepLink(baseURL, projectID, e.EntityType, e.EntityID)

	html := fmt.Sprintf("<div><p>%s</p>", message)
	if link != "" {
		html += fmt.Sprintf(`<p><a href="%s">View in %s</a></p>`, link, productName)
	}
	html += "</div>"

	return EmailPayload{
		Subject: fmt.Sprintf("%s - %s", l.Title, productName),
		HTML:    html,
	}
}

// DeepLink builds the stable product URL for an event. Task entities link
// into the project detail screen with the task preselected; without a
// resolvable project the link falls back to the application root.
func DeepLink(baseURL string, projectID *uint, entityType string, entityID uint) string {
	if projectID == nil {
		return baseURL
	}

	link := fmt.Sprintf("%s/ProjectDetail?id=%d", baseURL, *projectID)
	if entityType == "task" {
		link += fmt.Sprintf("&taskId=%d", entityID)
	}

	return link
}

func bodyText(e Event) string {
	actor := e.ActorName
	if actor == "" {
		actor = "Someone"
	}

	verb, ok := verbs[e.Kind]
	if !ok {
		verb = "performed an action on"
	}

	return fmt.Sprintf("%s %s %s", actor, verb, entityName(e))
}

func entityName(e Event) string {
	if name := metaString(e.Metadata, "entity_name"); name != "" {
		return name
	}
	if e.EntityType != "" {
		return fmt.Sprintf("%s #%d", e.EntityType, e.EntityID)
	}
	return "an item"
}
