package clinic

import (
	"errors"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// Billing assembles pending bills. It is read-only and recomputes on every
// call; there is no cached bill state to drift out of sync.
type Billing struct {
	DB             *gorm.DB
	ExaminationFee int
}

// NewBilling creates a new Billing assembler with the fixed examination fee.
func NewBilling(db *gorm.DB, examinationFee int) *Billing {
	return &Billing{DB: db, ExaminationFee: examinationFee}
}

// BillLineItem is one drug line of a pending bill.
type BillLineItem struct {
	DrugName  string `json:"drugName"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
	LineTotal int    `json:"lineTotal"`
}

// PendingBill is the computed, not-yet-paid charge for one examination.
type PendingBill struct {
	ExaminationID  uint           `json:"examinationId"`
	PatientID      uint           `json:"patientId"`
	PatientName    string         `json:"patientName"`
	DrugCost       int            `json:"drugCost"`
	ExaminationFee int            `json:"examinationFee"`
	TotalAmount    int            `json:"totalAmount"`
	LineItems      []BillLineItem `json:"lineItems"`
}

// PendingBills joins fulfilled prescriptions, drug prices and the fixed fee
// into one pending bill per examination, skipping examinations that already
// have a payment. Examinations with no fulfilled prescription are not billed.
func (b *Billing) PendingBills() ([]PendingBill, error) {
	var paidExamIDs []uint
	if err := b.DB.Model(&models.Payment{}).Pluck("examination_id", &paidExamIDs).Error; err != nil {
		return nil, err
	}
	paid := make(map[uint]bool, len(paidExamIDs))
	for _, id := range paidExamIDs {
		paid[id] = true
	}

	var fulfilled []models.Prescription
	if err := b.DB.Where("status = ?", models.PrescriptionFulfilled).
		Order("id ASC").Find(&fulfilled).Error; err != nil {
		return nil, err
	}

	bills := make(map[uint]*PendingBill)
	var order []uint
	for _, prescription := range fulfilled {
		if paid[prescription.ExaminationID] {
			continue
		}

		bill, ok := bills[prescription.ExaminationID]
		if !ok {
			var exam models.Examination
			if err := b.DB.First(&exam, prescription.ExaminationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, err
			}
			var patient models.Patient
			if err := b.DB.First(&patient, exam.PatientID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, err
			}

			bill = &PendingBill{
				ExaminationID:  exam.ID,
				PatientID:      patient.ID,
				PatientName:    patient.Name,
				ExaminationFee: b.ExaminationFee,
			}
			bills[prescription.ExaminationID] = bill
			order = append(order, prescription.ExaminationID)
		}

		var drug models.Drug
		if err := b.DB.First(&drug, prescription.DrugID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		lineTotal := prescription.Quantity * drug.UnitPrice
		bill.DrugCost += lineTotal
		bill.LineItems = append(bill.LineItems, BillLineItem{
			DrugName:  drug.Name,
			Quantity:  prescription.Quantity,
			UnitPrice: drug.UnitPrice,
			LineTotal: lineTotal,
		})
	}

	result := make([]PendingBill, 0, len(order))
	for _, examID := range order {
		bill := bills[examID]
		bill.TotalAmount = bill.DrugCost + bill.ExaminationFee
		result = append(result, *bill)
	}
	return result, nil
}
