package models

import (
	"time"
)

// Examination represents one doctor consultation. Immutable after creation.
type Examination struct {
	BaseModel
	PatientID  uint      `gorm:"index;not null" json:"patientId"`
	DoctorID   uint      `gorm:"index;not null" json:"doctorId"`
	Complaint  string    `gorm:"type:text" json:"complaint"`
	Diagnosis  string    `gorm:"type:text" json:"diagnosis"`
	Notes      string    `gorm:"type:text" json:"notes"`
	ExaminedAt time.Time `json:"date"`
}

// PrescriptionStatus represents the fulfillment state of a prescription
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionFulfilled PrescriptionStatus = "fulfilled"
)

// Prescription represents one drug line prescribed during an examination.
// pending→fulfilled exactly once, by the pharmacy; never reverted.
type Prescription struct {
	BaseModel
	ExaminationID uint               `gorm:"index;not null" json:"examinationId"`
	DrugID        uint               `gorm:"index;not null" json:"drugId"`
	Quantity      int                `gorm:"not null" json:"quantity"`
	Notes         string             `gorm:"type:text" json:"notes"`
	Status        PrescriptionStatus `gorm:"size:20;default:'pending'" json:"status"`
}
