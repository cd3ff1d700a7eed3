package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// QueueHandler handles queue listing, status corrections and cancellation.
type QueueHandler struct {
	Registry *clinic.Registry
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(registry *clinic.Registry) *QueueHandler {
	return &QueueHandler{Registry: registry}
}

// GetQueue handles fetching all queue entries.
func (h *QueueHandler) GetQueue(c *gin.Context) {
	entries, err := h.Registry.ListQueue()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch queue: "+err.Error())
		return
	}
	utils.Success(c, "Queue fetched successfully", entries)
}

// UpdateQueueStatusRequest represents the request body for a status change.
type UpdateQueueStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateQueueStatus handles forcing a queue entry (and its patient) to a
// status. Validation of the value itself happens in the registry so the
// error taxonomy stays in one place.
func (h *QueueHandler) UpdateQueueStatus(c *gin.Context) {
	queueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateQueueStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.Registry.UpdateStatus(queueID, models.VisitStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Queue status updated successfully", entry)
}

// CancelQueue handles removing a queue entry. The patient goes with it only
// when the visit never progressed past registration.
func (h *QueueHandler) CancelQueue(c *gin.Context) {
	queueID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Registry.Cancel(queueID); err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Queue entry cancelled successfully", nil)
}
