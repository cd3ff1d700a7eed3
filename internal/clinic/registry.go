package clinic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// Registry owns patients, queue entries and their shared visit status. Every
// mutation that touches both records runs in one transaction so the
// queue/patient status lock-step survives partial failures.
type Registry struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewRegistry creates a new Registry.
func NewRegistry(db *gorm.DB, log *zap.Logger) *Registry {
	return &Registry{DB: db, Log: log}
}

// RegisterInput carries the demographics for a new visit registration.
type RegisterInput struct {
	Name        string
	DateOfBirth string
	Gender      string
	Phone       string
	Address     string
	DoctorID    *uint
}

// Register creates a patient with a freshly assigned medical record number
// and a queue entry for the visit, both in waiting status.
func (r *Registry) Register(input RegisterInput) (*models.Patient, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.DateOfBirth) == "" ||
		strings.TrimSpace(input.Gender) == "" {
		return nil, fmt.Errorf("name, dob and gender are required: %w", ErrValidation)
	}

	var patient models.Patient
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		mrn, err := nextMedicalRecordNo(tx)
		if err != nil {
			return err
		}

		patient = models.Patient{
			MedicalRecordNo: mrn,
			Name:            input.Name,
			DateOfBirth:     input.DateOfBirth,
			Gender:          input.Gender,
			Phone:           input.Phone,
			Address:         input.Address,
			Status:          models.VisitWaiting,
		}
		if err := tx.Create(&patient).Error; err != nil {
			return err
		}

		entry := models.QueueEntry{
			PatientID:       patient.ID,
			PatientName:     patient.Name,
			MedicalRecordNo: patient.MedicalRecordNo,
			DoctorID:        input.DoctorID,
			Status:          models.VisitWaiting,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	r.Log.Info("visit registered",
		zap.Uint("patientId", patient.ID),
		zap.String("mrn", patient.MedicalRecordNo))
	return &patient, nil
}

// nextMedicalRecordNo scans existing MRNs for the highest numeric suffix and
// formats the successor as "RM" + 3-digit zero-padded integer. Values beyond
// 999 simply widen. Malformed MRNs count as zero.
func nextMedicalRecordNo(tx *gorm.DB) (string, error) {
	var mrns []string
	if err := tx.Model(&models.Patient{}).Pluck("medical_record_no", &mrns).Error; err != nil {
		return "", err
	}

	highest := 0
	for _, mrn := range mrns {
		if n := medicalRecordSuffix(mrn); n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("RM%03d", highest+1), nil
}

func medicalRecordSuffix(mrn string) int {
	if !strings.HasPrefix(mrn, "RM") {
		return 0
	}
	n, err := strconv.Atoi(mrn[2:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// UpdateStatus forces the queue entry and its patient to the given status.
// Any recognized value is accepted, regardless of the current state; this is
// the staff correction escape hatch and is logged as such. The automatic
// transitions (examination, fulfillment, payment) do not go through here.
func (r *Registry) UpdateStatus(queueID uint, status models.VisitStatus) (*models.QueueEntry, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	var entry models.QueueEntry
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, queueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("queue entry %d", queueID)
			}
			return err
		}
		previous := entry.Status
		if err := setVisitStatus(tx, &entry, status); err != nil {
			return err
		}
		r.Log.Warn("forced queue status transition",
			zap.Uint("queueId", entry.ID),
			zap.Uint("patientId", entry.PatientID),
			zap.String("from", string(previous)),
			zap.String("to", string(status)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Cancel removes a queue entry. The patient record is removed too, but only
// when the visit never progressed past registration: no examination, no
// payment and no other queue entry may reference the patient.
func (r *Registry) Cancel(queueID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.QueueEntry
		if err := tx.First(&entry, queueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("queue entry %d", queueID)
			}
			return err
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		orphaned, err := patientHasNoRecords(tx, entry.PatientID)
		if err != nil {
			return err
		}
		if orphaned {
			if err := tx.Delete(&models.Patient{}, entry.PatientID).Error; err != nil {
				return err
			}
			r.Log.Info("registration abandoned, patient removed",
				zap.Uint("patientId", entry.PatientID))
		}
		return nil
	})
}

func patientHasNoRecords(tx *gorm.DB, patientID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Examination{}).Where("patient_id = ?", patientID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Model(&models.Payment{}).Where("patient_id = ?", patientID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Model(&models.QueueEntry{}).Where("patient_id = ?", patientID).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// setVisitStatus writes the status to the queue entry and its patient within
// the caller's transaction. Both automatic and forced transitions funnel
// through here to keep the lock-step invariant in one place.
func setVisitStatus(tx *gorm.DB, entry *models.QueueEntry, status models.VisitStatus) error {
	var patient models.Patient
	if err := tx.First(&patient, entry.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("patient %d for queue entry %d", entry.PatientID, entry.ID)
		}
		return err
	}
	if err := tx.Model(&patient).Update("status", status).Error; err != nil {
		return err
	}
	if err := tx.Model(entry).Update("status", status).Error; err != nil {
		return err
	}
	entry.Status = status
	return nil
}

// advanceVisitByPatient moves the most recent queue entry for a patient (and
// the patient) to the given status. Used by the automatic transitions keyed
// by patient id rather than queue id.
func advanceVisitByPatient(tx *gorm.DB, log *zap.Logger, patientID uint, status models.VisitStatus, cause string) error {
	var entry models.QueueEntry
	err := tx.Where("patient_id = ?", patientID).Order("id DESC").First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("queue entry for patient %d", patientID)
		}
		return err
	}
	if err := setVisitStatus(tx, &entry, status); err != nil {
		return err
	}
	log.Info("visit advanced",
		zap.Uint("queueId", entry.ID),
		zap.Uint("patientId", patientID),
		zap.String("to", string(status)),
		zap.String("cause", cause))
	return nil
}

// ListQueue returns all queue entries, oldest first.
func (r *Registry) ListQueue() ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := r.DB.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPatients returns all patients, oldest first.
func (r *Registry) ListPatients() ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.DB.Order("id ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}
