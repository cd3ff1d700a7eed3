package models

// Drug represents a pharmacy inventory item. Stock never goes negative:
// fulfillment rejects shortfalls and manual adjustments clamp at zero.
type Drug struct {
	BaseModel
	Name      string `gorm:"size:255;not null" json:"name"`
	Stock     int    `gorm:"not null;default:0" json:"stock"`
	UnitPrice int    `gorm:"not null" json:"unitPrice"`
}
