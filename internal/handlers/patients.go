package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/utils"
)

// PatientHandler handles patient registration and reads.
type PatientHandler struct {
	Registry *clinic.Registry
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(registry *clinic.Registry) *PatientHandler {
	return &PatientHandler{Registry: registry}
}

// RegisterPatientRequest represents the request body for registering a visit.
type RegisterPatientRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dob" binding:"required"`
	Gender      string `json:"gender" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DoctorID    *uint  `json:"doctorId"`
}

// RegisterPatient handles registering a new visit. The medical record number
// is assigned by the registry; any value sent by the client is ignored.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Registry.Register(clinic.RegisterInput{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
		DoctorID:    req.DoctorID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.Created(c, "Patient registered successfully", patient)
}

// GetPatients handles fetching all patients.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	patients, err := h.Registry.ListPatients()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientHistory handles fetching the full record of one patient.
func (h *PatientHandler) GetPatientHistory(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}

	history, err := h.Registry.History(patientID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Patient history fetched successfully", history)
}
