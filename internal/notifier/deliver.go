package notifier

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"

	"github.com/quantamisecode-hub/groona-sub009/internal/models"
)

// Deliverer executes the side effects for one recipient. Every failure is
// captured in a DeliveryResult and logged; nothing propagates, so one bad
// recipient or channel never blocks the rest of the fan-out.
type Deliverer struct {
	store     Store
	mailer    Mailer
	fromName  string
	broadcast func(models.Notification)
}

// NewDeliverer wires the write surface and the outbound transport. broadcast
// may be nil; when set it is invoked with each created in-app notification.
func NewDeliverer(store Store, mailer Mailer, fromName string, broadcast func(models.Notification)) *Deliverer {
	return &Deliverer{
		store:     store,
		mailer:    mailer,
		fromName:  fromName,
		broadcast: broadcast,
	}
}

// DeliverTo processes every resolved channel for a single recipient and
// returns one result per channel.
func (d *Deliverer) DeliverTo(e Event, rec Recipient, channels []ChannelKind, projectID *uint, inApp InAppPayload, email EmailPayload) []DeliveryResult {
	results := make([]DeliveryResult, 0, len(channels))

	for _, channel := range channels {
		switch channel {
		case ChannelInApp:
			results = append(results, d.deliverInApp(e, rec, projectID, inApp))
		case ChannelEmail:
			results = append(results, d.deliverEmail(e, rec, email))
		}
	}

	return results
}

func (d *Deliverer) deliverInApp(e Event, rec Recipient, projectID *uint, payload InAppPayload) DeliveryResult {
	result := DeliveryResult{Recipient: rec.Email, Channel: ChannelInApp}

	notification := models.Notification{
		TenantID:       e.TenantID,
		RecipientEmail: rec.Email,
		Type:           payload.Type,
		Title:          payload.Title,
		Message:        payload.Message,
		EntityType:     e.EntityType,
		EntityID:       e.EntityID,
		ProjectID:      projectID,
		SenderName:     e.ActorName,
		Read:           false,
	}

	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			notification.Metadata = datatypes.JSON(raw)
		}
	}

	if err := d.store.CreateNotification(&notification); err != nil {
		log.Printf("Failed to create notification for %s: %v", rec.Email, err)
		result.Err = err
		return result
	}

	result.Notification = &notification

	if d.broadcast != nil {
		d.broadcast(notification)
	}

	return result
}

func (d *Deliverer) deliverEmail(e Event, rec Recipient, payload EmailPayload) DeliveryResult {
	result := DeliveryResult{Recipient: rec.Email, Channel: ChannelEmail}

	// The log row is written before the send attempt so every attempt is
	// auditable even when the transport is down.
	logRow := models.EmailNotificationLog{
		TenantID:       e.TenantID,
		EventID:        e.ID,
		RecipientEmail: rec.Email,
		Subject:        payload.Subject,
		Status:         "pending",
	}

	if err := d.store.CreateEmailLog(&logRow); err != nil {
		log.Printf("Failed to create email log for %s: %v", rec.Email, err)
	}

	err := d.mailer.Send(Mail{
		To:       rec.Email,
		Subject:  payload.Subject,
		HTML:     payload.HTML,
		FromName: d.fromName,
	})

	if err != nil {
		log.Printf("Failed to send email to %s: %v", rec.Email, err)
		result.Err = err
		d.markEmailLog(logRow.ID, "failed")
		return result
	}

	d.markEmailLog(logRow.ID, "sent")
	return result
}

func (d *Deliverer) markEmailLog(id uint, status string) {
	if id == 0 {
		return
	}
	if err := d.store.UpdateEmailLogStatus(id, status); err != nil {
		log.Printf("Failed to update email log %d to %s: %v", id, status, err)
	}
}
