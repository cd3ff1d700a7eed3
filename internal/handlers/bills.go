package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/utils"
)

// BillHandler handles the pending-bill view.
type BillHandler struct {
	Billing *clinic.Billing
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billing *clinic.Billing) *BillHandler {
	return &BillHandler{Billing: billing}
}

// GetPendingBills handles fetching all unpaid bills, recomputed on demand.
func (h *BillHandler) GetPendingBills(c *gin.Context) {
	bills, err := h.Billing.PendingBills()
	if err != nil {
		utils.InternalServerError(c, "Failed to assemble pending bills: "+err.Error())
		return
	}
	utils.Success(c, "Pending bills fetched successfully", bills)
}
