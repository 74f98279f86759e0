package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quantamisecode-hub/groona-sub009/db"
	"github.com/quantamisecode-hub/groona-sub009/internal/models"
	"github.com/quantamisecode-hub/groona-sub009/internal/utils"
	"gorm.io/gorm"
)

type PreferenceResponse struct {
	InAppEnabled   bool `json:"in_app_enabled"`
	EmailEnabled   bool `json:"email_enabled"`
	CriticalOnly   bool `json:"critical_only"`
	TaskAssigned   bool `json:"task_assigned"`
	TaskCompleted  bool `json:"task_completed"`
	CommentAdded   bool `json:"comment_added"`
	Mention        bool `json:"mention"`
	ProjectUpdated bool `json:"project_updated"`
}

type UpdatePreferenceRequest struct {
	InAppEnabled   *bool `json:"in_app_enabled"`
	EmailEnabled   *bool `json:"email_enabled"`
	CriticalOnly   *bool `json:"critical_only"`
	TaskAssigned   *bool `json:"task_assigned"`
	TaskCompleted  *bool `json:"task_completed"`
	CommentAdded   *bool `json:"comment_added"`
	Mention        *bool `json:"mention"`
	ProjectUpdated *bool `json:"project_updated"`
}

// GetPreferences returns the current user's toggles; a user without a row
// gets the all-enabled defaults.
func GetPreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pref, err := loadOrDefaultPreference(currentUser.TenantID, currentUser.Email)

	if err != nil {
		log.Printf("Failed to fetch preferences: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preferences"})
		return
	}

	ctx.JSON(http.StatusOK, toPreferenceResponse(pref))
}

// UpdatePreferences upserts the current user's toggles and invalidates the
// engine's cached copy so the next event sees the new values.
func UpdatePreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdatePreferenceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	pref, err := loadOrDefaultPreference(currentUser.TenantID, currentUser.Email)

	if err != nil {
		log.Printf("Failed to fetch preferences: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preferences"})
		return
	}

	applyToggle(&pref.InAppEnabled, req.InAppEnabled)
	applyToggle(&pref.EmailEnabled, req.EmailEnabled)
	applyToggle(&pref.CriticalOnly, req.CriticalOnly)
	applyToggle(&pref.TaskAssigned, req.TaskAssigned)
	applyToggle(&pref.TaskCompleted, req.TaskCompleted)
	applyToggle(&pref.CommentAdded, req.CommentAdded)
	applyToggle(&pref.Mention, req.Mention)
	applyToggle(&pref.ProjectUpdated, req.ProjectUpdated)

	if err := db.DB.Save(pref).Error; err != nil {
		log.Printf("Failed to save preferences: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	if engine != nil {
		engine.Prefs().Invalidate(currentUser.TenantID, currentUser.Email)
	}

	ctx.JSON(http.StatusOK, toPreferenceResponse(pref))
}

func loadOrDefaultPreference(tenantID uint, email string) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference

	err := db.DB.Where("tenant_id = ? AND user_email = ?", tenantID, email).First(&pref).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotificationPreference{
			TenantID:       tenantID,
			UserEmail:      email,
			InAppEnabled:   true,
			EmailEnabled:   true,
			TaskAssigned:   true,
			TaskCompleted:  true,
			CommentAdded:   true,
			Mention:        true,
			ProjectUpdated: true,
		}, nil
	}

	if err != nil {
		return nil, err
	}

	return &pref, nil
}

func applyToggle(field *bool, value *bool) {
	if value != nil {
		*field = *value
	}
}

func toPreferenceResponse(pref *models.NotificationPreference) PreferenceResponse {
	return PreferenceResponse{
		InAppEnabled:   pref.InAppEnabled,
		EmailEnabled:   pref.EmailEnabled,
		CriticalOnly:   pref.CriticalOnly,
		TaskAssigned:   pref.TaskAssigned,
		TaskCompleted:  pref.TaskCompleted,
		CommentAdded:   pref.CommentAdded,
		Mention:        pref.Mention,
		ProjectUpdated: pref.ProjectUpdated,
	}
}
