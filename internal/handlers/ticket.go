package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quantamisecode-hub/groona-sub009/db"
	"github.com/quantamisecode-hub/groona-sub009/internal/models"
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
	"github.com/quantamisecode-hub/groona-sub009/internal/utils"
	"gorm.io/datatypes"
)

type CreateTicketRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Priority    string                 `json:"priority"`
	ProjectID   *uint                  `json:"project_id"`
	SLA         map[string]interface{} `json:"sla"`
}

type TicketResponse struct {
	ID          uint   `json:"id"`
	ProjectID   *uint  `json:"project_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// CreateTicket opens a ticket and dispatches a TICKET_CREATED event so
// tenant admins hear about it. A notification failure is logged but never
// fails the creation.
func CreateTicket(ctx *gin.Context) {
	var body CreateTicketRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	priority := body.Priority
	if priority == "" {
		priority = "medium"
	}

	ticket := models.Ticket{
		TenantID:    currentUser.TenantID,
		ProjectID:   body.ProjectID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    priority,
		Status:      "open",
	}

	if len(body.SLA) > 0 {
		if raw, err := json.Marshal(body.SLA); err == nil {
			ticket.SLA = datatypes.JSON(raw)
		}
	}

	if err := db.DB.Create(&ticket).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}

	if _, err := engine.ProcessEvent(notifier.Event{
		Kind:       notifier.EventTicketCreated,
		TenantID:   currentUser.TenantID,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		ActorEmail: currentUser.Email,
		ActorName:  currentUser.Name,
		Metadata:   map[string]interface{}{"entity_name": ticket.Title},
		Channels:   []notifier.ChannelKind{notifier.ChannelInApp},
	}); err != nil {
		log.Printf("Failed to dispatch ticket creation notification: %v", err)
	}

	ctx.JSON(http.StatusCreated, TicketResponse{
		ID:          ticket.ID,
		ProjectID:   ticket.ProjectID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
	})
}

func ListTickets(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var tickets []models.Ticket

	if err := db.DB.
		Where("tenant_id = ?", currentUser.TenantID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tickets"})
		return
	}

	response := make([]TicketResponse, 0, len(tickets))

	for _, ticket := range tickets {
		response = append(response, TicketResponse{
			ID:          ticket.ID,
			ProjectID:   ticket.ProjectID,
			Title:       ticket.Title,
			Description: ticket.Description,
			Priority:    ticket.Priority,
			Status:      ticket.Status,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
