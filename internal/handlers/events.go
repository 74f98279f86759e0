package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
	"github.com/quantamisecode-hub/groona-sub009/internal/utils"
)

type IngestEventRequest struct {
	EventType  string                 `json:"event_type" binding:"required"`
	EntityType string                 `json:"entity_type"`
	EntityID   uint                   `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	Channels   []string               `json:"notification_channels"`
}

// IngestEvent accepts a domain event from the business layer and runs the
// dispatch pipeline synchronously. Tenant and actor come from the session,
// never from the payload.
func IngestEvent(ctx *gin.Context) {
	var req IngestEventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	channels := make([]notifier.ChannelKind, 0, len(req.Channels))
	for _, c := range req.Channels {
		channels = append(channels, notifier.ChannelKind(c))
	}

	event := notifier.Event{
		Kind:       notifier.EventKind(req.EventType),
		TenantID:   currentUser.TenantID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		ActorEmail: currentUser.Email,
		ActorName:  currentUser.Name,
		Metadata:   req.Metadata,
		Channels:   channels,
	}

	created, err := engine.ProcessEvent(event)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"notifications_created": len(created)})
}
