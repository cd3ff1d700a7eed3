package models

// VisitStatus represents where a patient currently is in their visit.
type VisitStatus string

const (
	VisitWaiting       VisitStatus = "waiting"
	VisitInExamination VisitStatus = "in_examination"
	VisitPharmacy      VisitStatus = "pharmacy"
	VisitPaying        VisitStatus = "paying"
	VisitDone          VisitStatus = "done"
)

// IsValid reports whether the value is one of the recognized visit statuses.
func (s VisitStatus) IsValid() bool {
	switch s {
	case VisitWaiting, VisitInExamination, VisitPharmacy, VisitPaying, VisitDone:
		return true
	}
	return false
}

// Patient represents a registered patient and their current visit status.
// MedicalRecordNo is the human-readable identifier ("RM" + zero-padded
// sequence), distinct from the internal id.
type Patient struct {
	BaseModel
	MedicalRecordNo string      `gorm:"uniqueIndex;size:20;not null" json:"medicalRecordNo"`
	Name            string      `gorm:"size:255;not null" json:"name"`
	DateOfBirth     string      `gorm:"size:10" json:"dob"`
	Gender          string      `gorm:"size:10" json:"gender"`
	Phone           string      `gorm:"size:30" json:"phone"`
	Address         string      `gorm:"size:255" json:"address"`
	Status          VisitStatus `gorm:"size:20;default:'waiting'" json:"status"`
}
