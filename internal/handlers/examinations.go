package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// ExaminationHandler handles doctor consultations and prescriptions.
type ExaminationHandler struct {
	Examinations *clinic.ExaminationLog
}

// NewExaminationHandler creates a new ExaminationHandler.
func NewExaminationHandler(examinations *clinic.ExaminationLog) *ExaminationHandler {
	return &ExaminationHandler{Examinations: examinations}
}

// CreateExaminationRequest represents the request body for recording a
// consultation.
type CreateExaminationRequest struct {
	QueueID   uint   `json:"queueId" binding:"required"`
	DoctorID  uint   `json:"doctorId" binding:"required"`
	Complaint string `json:"complaint"`
	Diagnosis string `json:"diagnosis" binding:"required"`
	Notes     string `json:"notes"`
}

// CreateExamination handles recording a finished consultation; the visit
// moves to the pharmacy stage as a side effect.
func (h *ExaminationHandler) CreateExamination(c *gin.Context) {
	var req CreateExaminationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	exam, err := h.Examinations.CreateExamination(req.QueueID, req.DoctorID, req.Complaint, req.Diagnosis, req.Notes)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Examination recorded successfully", exam)
}

// CreatePrescriptionRequest represents the request body for attaching a
// prescription to an examination.
type CreatePrescriptionRequest struct {
	ExaminationID uint   `json:"examinationId" binding:"required"`
	DrugID        uint   `json:"drugId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	Notes         string `json:"notes"`
}

// CreatePrescription handles attaching a pending prescription.
func (h *ExaminationHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prescription, err := h.Examinations.AddPrescription(req.ExaminationID, req.DrugID, req.Quantity, req.Notes)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Prescription created successfully", prescription)
}

// GetPrescriptions handles listing prescriptions, optionally filtered by
// ?status=pending|fulfilled.
func (h *ExaminationHandler) GetPrescriptions(c *gin.Context) {
	status := models.PrescriptionStatus(c.Query("status"))
	if status != "" && status != models.PrescriptionPending && status != models.PrescriptionFulfilled {
		utils.BadRequest(c, "Unrecognized prescription status filter")
		return
	}

	prescriptions, err := h.Examinations.ListPrescriptions(status)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}
	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}
