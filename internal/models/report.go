package models

import (
	"time"
)

// ReportType represents the aggregation period of a stored report
type ReportType string

const (
	ReportDaily   ReportType = "DAILY"
	ReportMonthly ReportType = "MONTHLY"
)

// Report stores a generated summary snapshot so past reports remain
// reproducible even as the underlying records change.
type Report struct {
	BaseModel
	Type          ReportType     `gorm:"size:10;not null" json:"type"`
	Period        string         `gorm:"size:10" json:"period"`
	TotalPatients int            `json:"totalPatients"`
	TotalIncome   int            `json:"totalIncome"`
	DrugsUsed     map[string]int `gorm:"serializer:json" json:"drugsUsed"`
	GeneratedAt   time.Time      `json:"generatedAt"`
}
