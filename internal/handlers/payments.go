package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/utils"
)

// PaymentHandler handles payment recording and listing.
type PaymentHandler struct {
	Payments *clinic.Payments
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments *clinic.Payments) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// RecordPaymentRequest represents the request body for settling a bill.
type RecordPaymentRequest struct {
	PatientID      uint   `json:"patientId" binding:"required"`
	ExaminationID  uint   `json:"examinationId" binding:"required"`
	DrugCost       int    `json:"drugCost" binding:"gte=0"`
	ExaminationFee int    `json:"examinationFee" binding:"gte=0"`
	Method         string `json:"method" binding:"required"`
}

// RecordPayment handles settling the bill for an examination; the visit
// closes as a side effect.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	payment, err := h.Payments.Record(req.PatientID, req.ExaminationID, req.DrugCost, req.ExaminationFee, req.Method)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Payment recorded successfully", payment)
}

// GetPayments handles listing payments, optionally filtered by
// ?date=YYYY-MM-DD.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
		day = &parsed
	}

	payments, err := h.Payments.List(day)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch payments: "+err.Error())
		return
	}
	utils.Success(c, "Payments fetched successfully", payments)
}
