package notifier

import "log"

// Recipient is a transient addressee, deduplicated by email and never the
// event's actor.
type Recipient struct {
	Email string
}

// Resolution is the resolver output: who to consider notifying and which
// project the notification should deep-link to.
type Resolution struct {
	Recipients []Recipient
	ProjectID  *uint
}

type resolveFunc func(e Event, dir Directory) Resolution

// resolvers maps each event kind to its recipient-resolution rule. Each rule
// is independent; lookup failures inside a rule are logged and the rule
// carries on with whatever it already has.
var resolvers = map[EventKind]resolveFunc{
	EventTaskAssigned:       resolveTaskAssigned,
	EventTaskCompleted:      resolveTaskCompleted,
	EventTimesheetSubmitted: resolveTimesheetSubmitted,
	EventTimesheetApproved:  resolveTimesheetDecision,
	EventTimesheetRejected:  resolveTimesheetDecision,
	EventTicketCreated:      resolveAdminsOnly,
	EventTicketAssigned:     resolveTicketAssigned,
	EventTicketSLABreached:  resolveTicketSLABreached,
	EventCommentMention:     resolveCommentMention,
	EventCommentAdded:       resolveCommentAdded,
	EventClientCommentAdded: resolveClientCommentAdded,
	EventProjectUpdated:     resolveProjectUpdated,
	EventMilestoneCompleted: resolveMilestoneCompleted,
	EventApprovalRequested:  resolveAdminsOnly,
	EventLeaveCancelled:     resolveAdminsOnly,
}

// Resolve executes the rule for the event's kind, then deduplicates by email
// (first occurrence wins) and strips the actor. Unknown kinds and total rule
// failure both yield an empty resolution, never an error.
func Resolve(e Event, dir Directory) Resolution {
	rule, ok := resolvers[e.Kind]
	if !ok {
		log.Printf("No resolution rule for event kind %s", e.Kind)
		return Resolution{}
	}

	res := rule(e, dir)

	seen := make(map[string]bool, len(res.Recipients))
	deduped := make([]Recipient, 0, len(res.Recipients))

	for _, r := range res.Recipients {
		if r.Email == "" || r.Email == e.ActorEmail || seen[r.Email] {
			continue
		}
		seen[r.Email] = true
		deduped = append(deduped, r)
	}

	res.Recipients = deduped
	return res
}

func resolveTaskAssigned(e Event, dir Directory) Resolution {
	res := Resolution{Recipients: toRecipients(metaStrings(e.Metadata, "assigned_to"))}

	if id, ok := metaID(e.Metadata, "project_id"); ok {
		res.ProjectID = &id
		return res
	}

	// Only hit the task entity when metadata didn't carry the project.
	task, err := dir.Task(e.EntityID)
	if err != nil {
		log.Printf("Failed to resolve task %d for %s: %v", e.EntityID, e.Kind, err)
		return res
	}
	res.ProjectID = &task.ProjectID

	return res
}

func resolveTaskCompleted(e Event, dir Directory) Resolution {
	var res Resolution

	task, err := dir.Task(e.EntityID)
	if err != nil {
		log.Printf("Failed to resolve task %d for %s: %v", e.EntityID, e.Kind, err)
		return res
	}
	res.ProjectID = &task.ProjectID

	project, err := dir.Project(task.ProjectID)
	if err != nil {
		log.Printf("Failed to resolve project %d for %s: %v", task.ProjectID, e.Kind, err)
	} else {
		res.Recipients = append(res.Recipients, Recipient{Email: project.OwnerEmail})
	}

	managers, err := dir.RoleHolderEmails(task.ProjectID, "project_manager")
	if err != nil {
		log.Printf("Failed to resolve project managers for project %d: %v", task.ProjectID, err)
	} else {
		res.Recipients = append(res.Recipients, toRecipients(managers)...)
	}

	return res
}

func resolveTimesheetSubmitted(e Event, dir Directory) Resolution {
	var res Resolution

	if id, ok := metaID(e.Metadata, "project_id"); ok {
		res.ProjectID = &id

		managers, err := dir.RoleHolderEmails(id, "project_manager")
		if err != nil {
			log.Printf("Failed to resolve project managers for project %d: %v", id, err)
		} else {
			res.Recipients = append(res.Recipients, toRecipients(managers)...)
		}
	}

	admins, err := dir.AdminEmails(e.TenantID)
	if err != nil {
		log.Printf("Failed to resolve admins for tenant %d: %v", e.TenantID, err)
	} else {
		res.Recipients = append(res.Recipients, toRecipients(admins)...)
	}

	return res
}

func resolveTimesheetDecision(e Event, dir Directory) Resolution {
	res := Resolution{}

	if email := metaString(e.Metadata, "user_email"); email != "" {
		res.Recipients = append(res.Recipients, Recipient{Email: email})
	}

	if id, ok := metaID(e.Metadata, "project_id"); ok {
		res.ProjectID = &id
	}

	return res
}

func resolveAdminsOnly(e Event, dir Directory) Resolution {
	admins, err := dir.AdminEmails(e.TenantID)
	if err != nil {
		log.Printf("Failed to resolve admins for tenant %d: %v", e.TenantID, err)
		return Resolution{}
	}

	return Resolution{Recipients: toRecipients(admins)}
}

func resolveTicketAssigned(e Event, dir Directory) Resolution {
	return Resolution{Recipients: toRecipients(metaStrings(e.Metadata, "assigned_to"))}
}

func resolveTicketSLABreached(e Event, dir Directory) Resolution {
	res := Resolution{Recipients: toRecipients(metaStrings(e.Metadata, "assigned_to"))}

	admins, err := dir.AdminEmails(e.TenantID)
	if err != nil {
		log.Printf("Failed to resolve admins for tenant %d: %v", e.TenantID, err)
	} else {
		res.Recipients = append(res.Recipients, toRecipients(admins)...)
	}

	return res
}

func resolveCommentMention(e Event, dir Directory) Resolution {
	res := Resolution{Recipients: toRecipients(metaStrings(e.Metadata, "mentions"))}

	switch e.EntityType {
	case "task":
		task, err := dir.Task(e.EntityID)
		if err != nil {
			log.Printf("Failed to resolve task %d for %s: %v", e.EntityID, e.Kind, err)
		} else {
			res.ProjectID = &task.ProjectID
		}
	case "project":
		id := e.EntityID
		res.ProjectID = &id
	}

	return res
}

func resolveCommentAdded(e Event, dir Directory) Resolution {
	var res Resolution

	switch e.EntityType {
	case "task":
		task, err := dir.Task(e.EntityID)
		if err != nil {
			log.Printf("Failed to resolve task %d for %s: %v", e.EntityID, e.Kind, err)
			return res
		}
		res.ProjectID = &task.ProjectID
		res.Recipients = toRecipients(task.AssigneeEmails)
	case "project":
		id := e.EntityID
		res.ProjectID = &id

		members, err := dir.TeamMemberEmails(id)
		if err != nil {
			log.Printf("Failed to resolve team members for project %d: %v", id, err)
			return res
		}
		res.Recipients = toRecipients(members)
	}

	return res
}

func resolveClientCommentAdded(e Event, dir Directory) Resolution {
	var res Resolution

	id, ok := metaID(e.Metadata, "project_id")
	if !ok {
		return res
	}
	res.ProjectID = &id

	managers, err := dir.RoleHolderEmails(id, "project_manager")
	if err != nil {
		log.Printf("Failed to resolve project managers for project %d: %v", id, err)
		return res
	}
	res.Recipients = toRecipients(managers)

	return res
}

func resolveProjectUpdated(e Event, dir Directory) Resolution {
	id := e.EntityID
	res := Resolution{ProjectID: &id}

	members, err := dir.TeamMemberEmails(id)
	if err != nil {
		log.Printf("Failed to resolve team members for project %d: %v", id, err)
		return res
	}
	res.Recipients = toRecipients(members)

	return res
}

func resolveMilestoneCompleted(e Event, dir Directory) Resolution {
	var res Resolution

	id, ok := metaID(e.Metadata, "project_id")
	if !ok {
		return res
	}
	res.ProjectID = &id

	members, err := dir.TeamMemberEmails(id)
	if err != nil {
		log.Printf("Failed to resolve team members for project %d: %v", id, err)
		return res
	}
	res.Recipients = toRecipients(members)

	return res
}

func toRecipients(emails []string) []Recipient {
	if len(emails) == 0 {
		return nil
	}

	out := make([]Recipient, 0, len(emails))
	for _, email := range emails {
		if email != "" {
			out = append(out, Recipient{Email: email})
		}
	}
	return out
}
