package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quantamisecode-hub/groona-sub009/db"
	"github.com/quantamisecode-hub/groona-sub009/internal/models"
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
	"github.com/quantamisecode-hub/groona-sub009/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type GetProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id"`
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		TenantID:    currentUser.TenantID,
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     currentUser.ID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	// The owner manages their own project by default.
	role := models.ProjectUserRole{
		UserID:    currentUser.ID,
		ProjectID: project.ID,
		Role:      "project_manager",
	}

	if err := db.DB.Create(&role).Error; err != nil {
		log.Printf("Failed to create owner role for project %d: %v", project.ID, err)
	}

	ctx.JSON(http.StatusCreated, GetProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	})
}

func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("tenant_id = ? AND owner_id = ?", currentUser.TenantID, currentUser.ID).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	var response []GetProjectResponse

	for _, project := range projects {
		response = append(response, GetProjectResponse{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			OwnerID:     project.OwnerID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project
	projectID := ctx.Param("project_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, currentUser.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	project.Name = body.Name
	project.Description = body.Description

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	// Notification failure never fails the update itself.
	if _, err := engine.ProcessEvent(notifier.Event{
		Kind:       notifier.EventProjectUpdated,
		TenantID:   currentUser.TenantID,
		EntityType: "project",
		EntityID:   project.ID,
		ActorEmail: currentUser.Email,
		ActorName:  currentUser.Name,
		Metadata:   map[string]interface{}{"entity_name": project.Name},
		Channels:   []notifier.ChannelKind{notifier.ChannelInApp},
	}); err != nil {
		log.Printf("Failed to dispatch project update notification: %v", err)
	}

	ctx.JSON(http.StatusOK, GetProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	})
}

func DeleteProject(ctx *gin.Context) {
	var project models.Project
	projectID := ctx.Param("project_id")

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, currentUser.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
