package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// DrugHandler handles drug catalog administration.
type DrugHandler struct {
	DB *gorm.DB
}

// NewDrugHandler creates a new DrugHandler.
func NewDrugHandler(db *gorm.DB) *DrugHandler {
	return &DrugHandler{DB: db}
}

// CreateDrugRequest represents the request body for adding a drug.
type CreateDrugRequest struct {
	Name      string `json:"name" binding:"required"`
	Stock     int    `json:"stock" binding:"gte=0"`
	UnitPrice int    `json:"unitPrice" binding:"required,gte=0"`
}

// CreateDrug handles adding a drug to the catalog.
func (h *DrugHandler) CreateDrug(c *gin.Context) {
	var req CreateDrugRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	drug := models.Drug{
		Name:      req.Name,
		Stock:     req.Stock,
		UnitPrice: req.UnitPrice,
	}
	if err := h.DB.Create(&drug).Error; err != nil {
		utils.InternalServerError(c, "Failed to create drug: "+err.Error())
		return
	}
	utils.Created(c, "Drug created successfully", drug)
}

// GetDrugs handles fetching the drug catalog.
func (h *DrugHandler) GetDrugs(c *gin.Context) {
	var drugs []models.Drug
	if err := h.DB.Order("id ASC").Find(&drugs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch drugs: "+err.Error())
		return
	}
	utils.Success(c, "Drugs fetched successfully", drugs)
}

// AdjustStockRequest represents the request body for a manual stock change.
type AdjustStockRequest struct {
	ChangeAmount int `json:"changeAmount" binding:"required"`
}

// AdjustStock handles a manual stock adjustment by a signed delta. Unlike
// fulfillment, a downward adjustment past zero is clamped rather than
// rejected; this is the restock/correction path, not dispensing.
func (h *DrugHandler) AdjustStock(c *gin.Context) {
	drugID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var drug models.Drug
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&drug, drugID).Error; err != nil {
			return err
		}
		drug.Stock += req.ChangeAmount
		if drug.Stock < 0 {
			drug.Stock = 0
		}
		return tx.Model(&drug).Update("stock", drug.Stock).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Drug not found")
		} else {
			utils.InternalServerError(c, "Failed to adjust stock: "+err.Error())
		}
		return
	}
	utils.Success(c, "Drug stock updated successfully", drug)
}
