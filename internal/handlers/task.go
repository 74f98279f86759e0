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

type CreateTaskRequest struct {
	Name string `json:"name" binding:"required"`
}

type AssignTaskRequest struct {
	Assignees []string `json:"assignees" binding:"required"`
}

type TaskResponse struct {
	ID        uint     `json:"id"`
	ProjectID uint     `json:"project_id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Assignees []string `json:"assignees"`
}

func CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND tenant_id = ?", projectID, currentUser.TenantID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	task := models.Task{
		TenantID:  currentUser.TenantID,
		ProjectID: project.ID,
		Name:      body.Name,
		Status:    "open",
	}

	if err := db.DB.Create(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, TaskResponse{
		ID:        task.ID,
		ProjectID: task.ProjectID,
		Name:      task.Name,
		Status:    task.Status,
	})
}

// AssignTask replaces the task's assignee set and dispatches a TASK_ASSIGNED
// event for the new assignees. A notification failure is logged but never
// fails the assignment.
func AssignTask(ctx *gin.Context) {
	var body AssignTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.
		Where("id = ? AND project_id = ? AND tenant_id = ?", taskID, projectID, currentUser.TenantID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := db.DB.Where("task_id = ?", task.ID).Delete(&models.TaskAssignee{}).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignees"})
		return
	}

	for _, email := range body.Assignees {
		assignee := models.TaskAssignee{TaskID: task.ID, Email: email}
		if err := db.DB.Create(&assignee).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignees"})
			return
		}
	}

	assignedTo := make([]interface{}, 0, len(body.Assignees))
	for _, email := range body.Assignees {
		assignedTo = append(assignedTo, email)
	}

	if _, err := engine.ProcessEvent(notifier.Event{
		Kind:       notifier.EventTaskAssigned,
		TenantID:   currentUser.TenantID,
		EntityType: "task",
		EntityID:   task.ID,
		ActorEmail: currentUser.Email,
		ActorName:  currentUser.Name,
		Metadata: map[string]interface{}{
			"assigned_to": assignedTo,
			"project_id":  float64(task.ProjectID),
			"entity_name": task.Name,
		},
		Channels: []notifier.ChannelKind{notifier.ChannelInApp, notifier.ChannelEmail},
	}); err != nil {
		log.Printf("Failed to dispatch task assignment notification: %v", err)
	}

	ctx.JSON(http.StatusOK, TaskResponse{
		ID:        task.ID,
		ProjectID: task.ProjectID,
		Name:      task.Name,
		Status:    task.Status,
		Assignees: body.Assignees,
	})
}
