package clinic

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// Pharmacy turns pending prescriptions into fulfilled ones. It is the only
// writer that consumes drug stock, and the place where a completed group of
// prescriptions advances the visit to paying.
type Pharmacy struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewPharmacy creates a new Pharmacy.
func NewPharmacy(db *gorm.DB, log *zap.Logger) *Pharmacy {
	return &Pharmacy{DB: db, Log: log}
}

// FulfillOne dispenses a single prescription: decrements the drug stock,
// flips the prescription to fulfilled and, when it was the last pending one
// of its examination, advances the visit to paying. Everything happens in one
// transaction; a failure at any step leaves no mutation behind.
//
// Repeating the call for an already fulfilled prescription is an error, not a
// no-op.
func (p *Pharmacy) FulfillOne(prescriptionID uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prescription, prescriptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("prescription %d", prescriptionID)
			}
			return err
		}
		if prescription.Status == models.PrescriptionFulfilled {
			return ErrAlreadyFulfilled
		}

		if err := dispense(tx, &prescription); err != nil {
			return err
		}

		return p.completeIfDone(tx, prescription.ExaminationID)
	})
	if err != nil {
		return nil, err
	}

	p.Log.Info("prescription fulfilled",
		zap.Uint("prescriptionId", prescription.ID),
		zap.Uint("examinationId", prescription.ExaminationID),
		zap.Uint("drugId", prescription.DrugID),
		zap.Int("quantity", prescription.Quantity))
	return &prescription, nil
}

// FulfillAll dispenses every pending prescription of an examination as one
// batch. A stock shortfall on any drug aborts the whole batch; the
// transaction rollback discards any decrement already applied.
func (p *Pharmacy) FulfillAll(examinationID uint) ([]models.Prescription, error) {
	var fulfilled []models.Prescription
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		var prescriptions []models.Prescription
		if err := tx.Where("examination_id = ?", examinationID).
			Order("id ASC").Find(&prescriptions).Error; err != nil {
			return err
		}
		if len(prescriptions) == 0 {
			return notFoundf("no prescriptions for examination %d", examinationID)
		}

		var pending []models.Prescription
		for _, prescription := range prescriptions {
			if prescription.Status == models.PrescriptionPending {
				pending = append(pending, prescription)
			}
		}
		if len(pending) == 0 {
			return ErrAlreadyFulfilled
		}

		for i := range pending {
			if err := dispense(tx, &pending[i]); err != nil {
				return err
			}
		}
		fulfilled = pending

		return p.completeIfDone(tx, examinationID)
	})
	if err != nil {
		return nil, err
	}

	p.Log.Info("examination prescriptions fulfilled",
		zap.Uint("examinationId", examinationID),
		zap.Int("count", len(fulfilled)))
	return fulfilled, nil
}

// dispense performs the stock check and decrement for one prescription and
// marks it fulfilled. The decrement is a single guarded UPDATE
// (stock = stock - n WHERE stock >= n), so two concurrent fulfillments of the
// same drug cannot both pass the check before either one writes.
func dispense(tx *gorm.DB, prescription *models.Prescription) error {
	var drug models.Drug
	if err := tx.First(&drug, prescription.DrugID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("drug %d", prescription.DrugID)
		}
		return err
	}

	res := tx.Model(&models.Drug{}).
		Where("id = ? AND stock >= ?", prescription.DrugID, prescription.Quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", prescription.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Re-read so the error reports the stock level that rejected us.
		if err := tx.First(&drug, prescription.DrugID).Error; err != nil {
			return err
		}
		return &InsufficientStockError{
			DrugID:    drug.ID,
			DrugName:  drug.Name,
			Requested: prescription.Quantity,
			Available: drug.Stock,
		}
	}

	if err := tx.Model(prescription).
		Update("status", models.PrescriptionFulfilled).Error; err != nil {
		return err
	}
	prescription.Status = models.PrescriptionFulfilled
	return nil
}

// completeIfDone re-reads the examination's prescriptions and, when none
// remain pending, advances the visit to paying.
func (p *Pharmacy) completeIfDone(tx *gorm.DB, examinationID uint) error {
	var pending int64
	if err := tx.Model(&models.Prescription{}).
		Where("examination_id = ? AND status = ?", examinationID, models.PrescriptionPending).
		Count(&pending).Error; err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}

	var exam models.Examination
	if err := tx.First(&exam, examinationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("examination %d", examinationID)
		}
		return err
	}
	return advanceVisitByPatient(tx, p.Log, exam.PatientID, models.VisitPaying, "all prescriptions fulfilled")
}

// PendingExamination is one examination waiting on the pharmacy, with the
// patient and current queue status attached for the work list.
type PendingExamination struct {
	Examination   models.Examination    `json:"examination"`
	Patient       models.Patient        `json:"patient"`
	QueueStatus   models.VisitStatus    `json:"queueStatus"`
	Prescriptions []models.Prescription `json:"prescriptions"`
}

// PendingWork lists examinations that still have pending prescriptions,
// grouped with their patient and latest queue status.
func (p *Pharmacy) PendingWork() ([]PendingExamination, error) {
	var pending []models.Prescription
	if err := p.DB.Where("status = ?", models.PrescriptionPending).
		Order("id ASC").Find(&pending).Error; err != nil {
		return nil, err
	}

	byExam := make(map[uint][]models.Prescription)
	var order []uint
	for _, prescription := range pending {
		if _, seen := byExam[prescription.ExaminationID]; !seen {
			order = append(order, prescription.ExaminationID)
		}
		byExam[prescription.ExaminationID] = append(byExam[prescription.ExaminationID], prescription)
	}

	work := make([]PendingExamination, 0, len(order))
	for _, examID := range order {
		var exam models.Examination
		if err := p.DB.First(&exam, examID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		var patient models.Patient
		if err := p.DB.First(&patient, exam.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		status := models.VisitStatus("")
		var entry models.QueueEntry
		err := p.DB.Where("patient_id = ?", patient.ID).Order("id DESC").First(&entry).Error
		if err == nil {
			status = entry.Status
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		work = append(work, PendingExamination{
			Examination:   exam,
			Patient:       patient,
			QueueStatus:   status,
			Prescriptions: byExam[examID],
		})
	}
	return work, nil
}

// Queue lists queue entries currently in the pharmacy stage.
func (p *Pharmacy) Queue() ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := p.DB.Where("status = ?", models.VisitPharmacy).
		Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
