package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// ScheduleHandler handles staff schedule administration.
type ScheduleHandler struct {
	DB *gorm.DB
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// ScheduleRequest represents the request body for creating or replacing a
// schedule entry.
type ScheduleRequest struct {
	UserID   uint   `json:"userId" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	Day      string `json:"day" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Activity string `json:"activity" binding:"required"`
}

// GetSchedules handles listing all schedule entries.
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	var schedules []models.ScheduleEntry
	if err := h.DB.Order("id ASC").Find(&schedules).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedules: "+err.Error())
		return
	}
	utils.Success(c, "Schedules fetched successfully", schedules)
}

// CreateSchedule handles adding a schedule entry.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	schedule := models.ScheduleEntry{
		UserID:   req.UserID,
		UserName: req.UserName,
		Day:      req.Day,
		Time:     req.Time,
		Activity: req.Activity,
	}
	if err := h.DB.Create(&schedule).Error; err != nil {
		utils.InternalServerError(c, "Failed to create schedule: "+err.Error())
		return
	}
	utils.Created(c, "Schedule created successfully", schedule)
}

// UpdateSchedule handles replacing a schedule entry.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var schedule models.ScheduleEntry
	if err := h.DB.First(&schedule, scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule entry not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	schedule.UserID = req.UserID
	schedule.UserName = req.UserName
	schedule.Day = req.Day
	schedule.Time = req.Time
	schedule.Activity = req.Activity
	if err := h.DB.Save(&schedule).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule: "+err.Error())
		return
	}
	utils.Success(c, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles removing a schedule entry.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.ScheduleEntry{}, scheduleID)
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete schedule: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Schedule entry not found")
		return
	}
	utils.Success(c, "Schedule deleted successfully", nil)
}
