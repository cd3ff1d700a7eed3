package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/utils"
)

// PharmacyHandler handles the pharmacy work list and fulfillment.
type PharmacyHandler struct {
	Pharmacy *clinic.Pharmacy
}

// NewPharmacyHandler creates a new PharmacyHandler.
func NewPharmacyHandler(pharmacy *clinic.Pharmacy) *PharmacyHandler {
	return &PharmacyHandler{Pharmacy: pharmacy}
}

// GetPendingPatients handles fetching examinations with prescriptions still
// to be dispensed, grouped per examination.
func (h *PharmacyHandler) GetPendingPatients(c *gin.Context) {
	work, err := h.Pharmacy.PendingWork()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch pending patients: "+err.Error())
		return
	}
	utils.Success(c, "Pending patients fetched successfully", work)
}

// GetPharmacyQueue handles fetching queue entries in the pharmacy stage.
func (h *PharmacyHandler) GetPharmacyQueue(c *gin.Context) {
	entries, err := h.Pharmacy.Queue()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch pharmacy queue: "+err.Error())
		return
	}
	utils.Success(c, "Pharmacy queue fetched successfully", entries)
}

// FulfillPrescription handles dispensing a single prescription.
func (h *PharmacyHandler) FulfillPrescription(c *gin.Context) {
	prescriptionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	prescription, err := h.Pharmacy.FulfillOne(prescriptionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Prescription fulfilled successfully", prescription)
}

// FulfillExamination handles dispensing every pending prescription of an
// examination as one batch.
func (h *PharmacyHandler) FulfillExamination(c *gin.Context) {
	examinationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	prescriptions, err := h.Pharmacy.FulfillAll(examinationID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Prescriptions fulfilled successfully", prescriptions)
}
