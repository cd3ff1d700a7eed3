package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// ReportHandler handles generating and listing stored reports.
type ReportHandler struct {
	DB *gorm.DB
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// GenerateReportRequest represents the request body for generating a report.
type GenerateReportRequest struct {
	Type   string `json:"type" binding:"required,oneof=DAILY MONTHLY"`
	Period string `json:"period" binding:"required"`
}

// GenerateReport computes a summary for the requested period and stores it.
// Patient and drug-usage totals are cumulative; income is period-scoped.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var start, end time.Time
	switch models.ReportType(req.Type) {
	case models.ReportDaily:
		day, err := time.ParseInLocation("2006-01-02", req.Period, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid period for DAILY report. Use YYYY-MM-DD.")
			return
		}
		start = day
		end = day.AddDate(0, 0, 1)
	case models.ReportMonthly:
		month, err := time.ParseInLocation("2006-01", req.Period, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid period for MONTHLY report. Use YYYY-MM.")
			return
		}
		start = month
		end = month.AddDate(0, 1, 0)
	}

	var totalPatients int64
	if err := h.DB.Model(&models.Patient{}).Count(&totalPatients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	var totalIncome int64
	if err := h.DB.Model(&models.Payment{}).
		Where("paid_at >= ? AND paid_at < ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalIncome).Error; err != nil {
		utils.InternalServerError(c, "Failed to sum income: "+err.Error())
		return
	}

	drugsUsed, err := h.tallyDrugUsage()
	if err != nil {
		utils.InternalServerError(c, "Failed to tally drug usage: "+err.Error())
		return
	}

	report := models.Report{
		Type:          models.ReportType(req.Type),
		Period:        req.Period,
		TotalPatients: int(totalPatients),
		TotalIncome:   int(totalIncome),
		DrugsUsed:     drugsUsed,
		GeneratedAt:   time.Now(),
	}
	if err := h.DB.Create(&report).Error; err != nil {
		utils.InternalServerError(c, "Failed to store report: "+err.Error())
		return
	}
	utils.Created(c, "Report generated successfully", report)
}

func (h *ReportHandler) tallyDrugUsage() (map[string]int, error) {
	var prescriptions []models.Prescription
	if err := h.DB.Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	var drugs []models.Drug
	if err := h.DB.Find(&drugs).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(drugs))
	for _, drug := range drugs {
		names[drug.ID] = drug.Name
	}

	used := make(map[string]int)
	for _, prescription := range prescriptions {
		name, ok := names[prescription.DrugID]
		if !ok {
			continue
		}
		used[name] += prescription.Quantity
	}
	return used, nil
}

// GetReports handles listing stored reports, newest first.
func (h *ReportHandler) GetReports(c *gin.Context) {
	var reports []models.Report
	if err := h.DB.Order("generated_at DESC").Find(&reports).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reports: "+err.Error())
		return
	}
	utils.Success(c, "Reports fetched successfully", reports)
}
