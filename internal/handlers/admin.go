package handlers

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	DB *gorm.DB
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// DashboardSummary is the aggregate view shown on the admin landing page.
type DashboardSummary struct {
	TotalPatientsAllTime int                 `json:"totalPatientsAllTime"`
	PatientsTodayCount   int                 `json:"patientsTodayCount"`
	ActiveQueueCount     int                 `json:"activeQueueCount"`
	IncomeToday          int                 `json:"incomeToday"`
	RecentQueues         []models.QueueEntry `json:"recentQueues"`
}

// GetDashboardSummary handles computing the dashboard aggregates.
func (h *AdminHandler) GetDashboardSummary(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var totalPatients int64
	if err := h.DB.Model(&models.Patient{}).Count(&totalPatients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	var patientsToday int64
	if err := h.DB.Model(&models.QueueEntry{}).
		Where("created_at >= ?", startOfDay).Count(&patientsToday).Error; err != nil {
		utils.InternalServerError(c, "Failed to count today's queue: "+err.Error())
		return
	}

	var activeQueue int64
	if err := h.DB.Model(&models.QueueEntry{}).
		Where("status <> ?", models.VisitDone).Count(&activeQueue).Error; err != nil {
		utils.InternalServerError(c, "Failed to count active queue: "+err.Error())
		return
	}

	var incomeToday int64
	if err := h.DB.Model(&models.Payment{}).
		Where("paid_at >= ?", startOfDay).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&incomeToday).Error; err != nil {
		utils.InternalServerError(c, "Failed to sum today's income: "+err.Error())
		return
	}

	var queues []models.QueueEntry
	if err := h.DB.Find(&queues).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch queue entries: "+err.Error())
		return
	}
	// Recent entries ordered by MRN sequence, earliest registration first.
	sort.SliceStable(queues, func(i, j int) bool {
		return mrnSortKey(queues[i].MedicalRecordNo) < mrnSortKey(queues[j].MedicalRecordNo)
	})
	if len(queues) > 5 {
		queues = queues[:5]
	}

	utils.Success(c, "Dashboard summary fetched successfully", DashboardSummary{
		TotalPatientsAllTime: int(totalPatients),
		PatientsTodayCount:   int(patientsToday),
		ActiveQueueCount:     int(activeQueue),
		IncomeToday:          int(incomeToday),
		RecentQueues:         queues,
	})
}

func mrnSortKey(mrn string) int {
	if len(mrn) <= 2 {
		return 0
	}
	key := 0
	for _, r := range mrn[2:] {
		if r < '0' || r > '9' {
			return 0
		}
		key = key*10 + int(r-'0')
	}
	return key
}
