package notifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTaskAssignedFromMetadata(t *testing.T) {
	dir := newFakeDir()

	event := Event{
		Kind:       EventTaskAssigned,
		TenantID:   1,
		EntityType: "task",
		EntityID:   10,
		ActorEmail: "boss@x.com",
		Metadata: map[string]interface{}{
			"assigned_to": []interface{}{"a@x.com", "b@x.com"},
			"project_id":  float64(7),
		},
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "a@x.com"}, {Email: "b@x.com"}}, res.Recipients)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(7), *res.ProjectID)
	// Metadata already carried the project, so the task is never fetched.
	assert.Equal(t, 0, dir.taskCalls)
}

func TestResolveTaskAssignedSingleString(t *testing.T) {
	dir := newFakeDir()
	dir.tasks[10] = &TaskInfo{ID: 10, Name: "Ship it", ProjectID: 3}

	event := Event{
		Kind:       EventTaskAssigned,
		TenantID:   1,
		EntityType: "task",
		EntityID:   10,
		Metadata:   map[string]interface{}{"assigned_to": "a@x.com"},
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "a@x.com"}}, res.Recipients)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(3), *res.ProjectID)
	assert.Equal(t, 1, dir.taskCalls)
}

func TestResolveDeduplicatesAndStripsActor(t *testing.T) {
	dir := newFakeDir()
	dir.admins[1] = []string{"admin@x.com", "dup@x.com"}

	event := Event{
		Kind:       EventTicketSLABreached,
		TenantID:   1,
		ActorEmail: "admin@x.com",
		Metadata: map[string]interface{}{
			"assigned_to": []interface{}{"dup@x.com", "dup@x.com"},
		},
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "dup@x.com"}}, res.Recipients)
}

func TestResolveIsIdempotent(t *testing.T) {
	dir := newFakeDir()
	dir.tasks[5] = &TaskInfo{ID: 5, ProjectID: 2, AssigneeEmails: []string{"a@x.com", "b@x.com"}}

	event := Event{
		Kind:       EventCommentAdded,
		TenantID:   1,
		EntityType: "task",
		EntityID:   5,
		ActorEmail: "c@x.com",
	}

	first := Resolve(event, dir)
	second := Resolve(event, dir)

	assert.Equal(t, first, second)
}

func TestResolveTaskLookupFailure(t *testing.T) {
	dir := newFakeDir()
	dir.taskErr = errors.New("connection reset")

	event := Event{
		Kind:       EventTaskCompleted,
		TenantID:   1,
		EntityType: "task",
		EntityID:   5,
	}

	res := Resolve(event, dir)

	assert.Empty(t, res.Recipients)
	assert.Nil(t, res.ProjectID)
}

func TestResolveTaskCompleted(t *testing.T) {
	dir := newFakeDir()
	dir.tasks[5] = &TaskInfo{ID: 5, ProjectID: 2}
	dir.projects[2] = &ProjectInfo{ID: 2, Name: "Apollo", OwnerEmail: "owner@x.com"}
	dir.roles["2:project_manager"] = []string{"pm@x.com", "owner@x.com"}

	event := Event{
		Kind:       EventTaskCompleted,
		TenantID:   1,
		EntityType: "task",
		EntityID:   5,
		ActorEmail: "dev@x.com",
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "owner@x.com"}, {Email: "pm@x.com"}}, res.Recipients)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(2), *res.ProjectID)
}

func TestResolveTimesheetSubmitted(t *testing.T) {
	dir := newFakeDir()
	dir.roles["4:project_manager"] = []string{"pm@x.com"}
	dir.admins[1] = []string{"admin@x.com"}

	event := Event{
		Kind:     EventTimesheetSubmitted,
		TenantID: 1,
		Metadata: map[string]interface{}{"project_id": float64(4)},
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "pm@x.com"}, {Email: "admin@x.com"}}, res.Recipients)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(4), *res.ProjectID)
}

func TestResolveTimesheetDecision(t *testing.T) {
	dir := newFakeDir()

	event := Event{
		Kind:     EventTimesheetRejected,
		TenantID: 1,
		Metadata: map[string]interface{}{"user_email": "u@x.com"},
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "u@x.com"}}, res.Recipients)
	assert.Nil(t, res.ProjectID)
}

func TestResolveCommentMentionOnTask(t *testing.T) {
	dir := newFakeDir()
	dir.tasks[9] = &TaskInfo{ID: 9, ProjectID: 6}

	event := Event{
		Kind:       EventCommentMention,
		TenantID:   1,
		EntityType: "task",
		EntityID:   9,
		Metadata: map[string]interface{}{
			"mentions": []interface{}{"m@x.com"},
		},
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "m@x.com"}}, res.Recipients)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(6), *res.ProjectID)
}

func TestResolveCommentMentionOnProject(t *testing.T) {
	dir := newFakeDir()

	event := Event{
		Kind:       EventCommentMention,
		TenantID:   1,
		EntityType: "project",
		EntityID:   6,
		Metadata: map[string]interface{}{
			"mentions": []interface{}{"m@x.com"},
		},
	}

	res := Resolve(event, dir)

	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(6), *res.ProjectID)
}

func TestResolveCommentAddedOnProject(t *testing.T) {
	dir := newFakeDir()
	dir.members[3] = []string{"a@x.com", "b@x.com"}

	event := Event{
		Kind:       EventCommentAdded,
		TenantID:   1,
		EntityType: "project",
		EntityID:   3,
		ActorEmail: "a@x.com",
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "b@x.com"}}, res.Recipients)
}

func TestResolveProjectUpdated(t *testing.T) {
	dir := newFakeDir()
	dir.members[8] = []string{"a@x.com"}

	event := Event{
		Kind:       EventProjectUpdated,
		TenantID:   1,
		EntityType: "project",
		EntityID:   8,
	}

	res := Resolve(event, dir)

	assert.Equal(t, []Recipient{{Email: "a@x.com"}}, res.Recipients)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, uint(8), *res.ProjectID)
}

func TestResolveAdminsOnlyKinds(t *testing.T) {
	dir := newFakeDir()
	dir.admins[1] = []string{"admin@x.com"}

	for _, kind := range []EventKind{EventTicketCreated, EventApprovalRequested, EventLeaveCancelled} {
		res := Resolve(Event{Kind: kind, TenantID: 1}, dir)
		assert.Equal(t, []Recipient{{Email: "admin@x.com"}}, res.Recipients, "kind %s", kind)
		assert.Nil(t, res.ProjectID, "kind %s", kind)
	}
}

func TestResolveUnknownKind(t *testing.T) {
	res := Resolve(Event{Kind: EventKind("SOMETHING_ELSE"), TenantID: 1}, newFakeDir())

	assert.Empty(t, res.Recipients)
	assert.Nil(t, res.ProjectID)
}
