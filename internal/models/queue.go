package models

// QueueEntry represents one visit in the clinic queue. The patient name and
// MRN are snapshotted for display so the queue can render without a join.
// Its Status is kept in lock-step with the patient's.
type QueueEntry struct {
	BaseModel
	PatientID       uint        `gorm:"index;not null" json:"patientId"`
	PatientName     string      `gorm:"size:255" json:"patientName"`
	MedicalRecordNo string      `gorm:"size:20" json:"medicalRecordNo"`
	DoctorID        *uint       `json:"doctorId,omitempty"`
	Status          VisitStatus `gorm:"size:20;default:'waiting'" json:"status"`
}
