package models

import (
	"time"
)

// PaymentStatus is fixed at "settled" on creation; kept as a column so a
// deferred-payment flow could be added without a schema change.
type PaymentStatus string

const (
	PaymentSettled PaymentStatus = "settled"
)

// Payment represents the settled charge for one examination. The unique
// index on ExaminationID enforces at most one payment per examination at
// write time.
type Payment struct {
	BaseModel
	PatientID      uint          `gorm:"index;not null" json:"patientId"`
	ExaminationID  uint          `gorm:"uniqueIndex;not null" json:"examinationId"`
	DrugCost       int           `gorm:"not null" json:"drugCost"`
	ExaminationFee int           `gorm:"not null" json:"examinationFee"`
	TotalAmount    int           `gorm:"not null" json:"totalAmount"`
	Method         string        `gorm:"size:30" json:"method"`
	Status         PaymentStatus `gorm:"size:20;default:'settled'" json:"status"`
	ReceiptNo      string        `gorm:"size:36" json:"receiptNo"`
	PaidAt         time.Time     `json:"paymentDate"`
}
