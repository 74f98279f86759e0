package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint64, error) {
	projectIDStr := ctx.Param("project_id")

	if projectIDStr == "" {
		return 0, errors.New("Project ID not found")
	}

	projectID, err := strconv.ParseUint(projectIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Project ID")
	}

	return projectID, nil
}

func GetNotificationID(ctx *gin.Context) (uint64, error) {
	notificationIDStr := ctx.Param("notification_id")

	if notificationIDStr == "" {
		return 0, errors.New("Notification ID not found")
	}

	notificationID, err := strconv.ParseUint(notificationIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Notification ID")
	}

	return notificationID, nil
}

func GetTaskID(ctx *gin.Context) (uint64, error) {
	taskIDStr := ctx.Param("task_id")

	if taskIDStr == "" {
		return 0, errors.New("Task ID not found")
	}

	taskID, err := strconv.ParseUint(taskIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Task ID")
	}

	return taskID, nil
}
