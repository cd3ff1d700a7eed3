package clinic

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// Payments records settled bills and closes the visit.
type Payments struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewPayments creates a new Payments recorder.
func NewPayments(db *gorm.DB, log *zap.Logger) *Payments {
	return &Payments{DB: db, Log: log}
}

// Record creates the single payment for an examination and forces the
// patient and their most recent queue entry to done. Payment creation and
// both status writes commit together.
func (p *Payments) Record(patientID, examinationID uint, drugCost, examinationFee int, method string) (*models.Payment, error) {
	var payment models.Payment
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		var exam models.Examination
		if err := tx.First(&exam, examinationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("examination %d", examinationID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Payment{}).
			Where("examination_id = ?", examinationID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePayment
		}

		payment = models.Payment{
			PatientID:      patientID,
			ExaminationID:  examinationID,
			DrugCost:       drugCost,
			ExaminationFee: examinationFee,
			TotalAmount:    drugCost + examinationFee,
			Method:         method,
			Status:         models.PaymentSettled,
			ReceiptNo:      uuid.NewString(),
			PaidAt:         time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return advanceVisitByPatient(tx, p.Log, patientID, models.VisitDone, "payment recorded")
	})
	if err != nil {
		return nil, err
	}

	p.Log.Info("payment recorded",
		zap.Uint("paymentId", payment.ID),
		zap.Uint("examinationId", examinationID),
		zap.Int("totalAmount", payment.TotalAmount),
		zap.String("receiptNo", payment.ReceiptNo))
	return &payment, nil
}

// PaymentWithPatient is a payment row enriched with the patient name for
// listing.
type PaymentWithPatient struct {
	models.Payment
	PatientName string `json:"patientName"`
}

// List returns payments enriched with patient names, optionally restricted to
// a single calendar day.
func (p *Payments) List(day *time.Time) ([]PaymentWithPatient, error) {
	var payments []models.Payment
	query := p.DB.Order("id ASC")
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		query = query.Where("paid_at >= ? AND paid_at < ?", start, start.AddDate(0, 0, 1))
	}
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string)
	var patients []models.Patient
	if err := p.DB.Find(&patients).Error; err != nil {
		return nil, err
	}
	for _, patient := range patients {
		names[patient.ID] = patient.Name
	}

	enriched := make([]PaymentWithPatient, 0, len(payments))
	for _, payment := range payments {
		name, ok := names[payment.PatientID]
		if !ok {
			name = "Unknown Patient"
		}
		enriched = append(enriched, PaymentWithPatient{Payment: payment, PatientName: name})
	}
	return enriched, nil
}
