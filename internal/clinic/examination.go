package clinic

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// ExaminationLog owns examinations and the prescriptions attached to them.
type ExaminationLog struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewExaminationLog creates a new ExaminationLog.
func NewExaminationLog(db *gorm.DB, log *zap.Logger) *ExaminationLog {
	return &ExaminationLog{DB: db, Log: log}
}

// CreateExamination records a finished consultation for the patient behind
// the given queue entry and advances the visit to pharmacy. The examination
// only exists once the doctor is done, so pharmacy is the next state whether
// or not prescriptions follow.
func (l *ExaminationLog) CreateExamination(queueID, doctorID uint, complaint, diagnosis, notes string) (*models.Examination, error) {
	var exam models.Examination
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.QueueEntry
		if err := tx.First(&entry, queueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("queue entry %d", queueID)
			}
			return err
		}

		exam = models.Examination{
			PatientID:  entry.PatientID,
			DoctorID:   doctorID,
			Complaint:  complaint,
			Diagnosis:  diagnosis,
			Notes:      notes,
			ExaminedAt: time.Now(),
		}
		if err := tx.Create(&exam).Error; err != nil {
			return err
		}

		return setVisitStatus(tx, &entry, models.VisitPharmacy)
	})
	if err != nil {
		return nil, err
	}

	l.Log.Info("examination recorded",
		zap.Uint("examinationId", exam.ID),
		zap.Uint("patientId", exam.PatientID),
		zap.Uint("doctorId", doctorID))
	return &exam, nil
}

// AddPrescription attaches a pending prescription to an examination. Stock is
// not checked here; availability only matters at fulfillment time.
func (l *ExaminationLog) AddPrescription(examinationID, drugID uint, quantity int, notes string) (*models.Prescription, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	var exam models.Examination
	if err := l.DB.First(&exam, examinationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("examination %d", examinationID)
		}
		return nil, err
	}
	var drug models.Drug
	if err := l.DB.First(&drug, drugID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("drug %d", drugID)
		}
		return nil, err
	}

	prescription := models.Prescription{
		ExaminationID: examinationID,
		DrugID:        drugID,
		Quantity:      quantity,
		Notes:         notes,
		Status:        models.PrescriptionPending,
	}
	if err := l.DB.Create(&prescription).Error; err != nil {
		return nil, err
	}
	return &prescription, nil
}

// ListPrescriptions returns prescriptions, optionally filtered by status.
func (l *ExaminationLog) ListPrescriptions(status models.PrescriptionStatus) ([]models.Prescription, error) {
	query := l.DB.Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var prescriptions []models.Prescription
	if err := query.Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}
