package clinic

import (
	"errors"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// PrescriptionDetail is one prescribed drug line with the drug name resolved.
type PrescriptionDetail struct {
	DrugName string                    `json:"drugName"`
	Quantity int                       `json:"quantity"`
	Notes    string                    `json:"notes"`
	Status   models.PrescriptionStatus `json:"status"`
}

// ExaminationWithDetail is an examination plus its prescription lines.
type ExaminationWithDetail struct {
	models.Examination
	Prescriptions []PrescriptionDetail `json:"prescriptions"`
}

// PatientHistory aggregates everything known about a patient: demographics,
// examinations with their prescriptions, and payments, newest first.
type PatientHistory struct {
	PatientInfo  models.Patient          `json:"patientInfo"`
	Examinations []ExaminationWithDetail `json:"examinations"`
	Payments     []models.Payment        `json:"payments"`
}

// History assembles the full record for one patient.
func (r *Registry) History(patientID uint) (*PatientHistory, error) {
	var patient models.Patient
	if err := r.DB.First(&patient, patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("patient %d", patientID)
		}
		return nil, err
	}

	var exams []models.Examination
	if err := r.DB.Where("patient_id = ?", patientID).
		Order("examined_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}

	drugNames := make(map[uint]string)
	var drugs []models.Drug
	if err := r.DB.Find(&drugs).Error; err != nil {
		return nil, err
	}
	for _, drug := range drugs {
		drugNames[drug.ID] = drug.Name
	}

	detailed := make([]ExaminationWithDetail, 0, len(exams))
	for _, exam := range exams {
		var prescriptions []models.Prescription
		if err := r.DB.Where("examination_id = ?", exam.ID).
			Order("id ASC").Find(&prescriptions).Error; err != nil {
			return nil, err
		}
		details := make([]PrescriptionDetail, 0, len(prescriptions))
		for _, prescription := range prescriptions {
			name, ok := drugNames[prescription.DrugID]
			if !ok {
				name = "Unknown Drug"
			}
			details = append(details, PrescriptionDetail{
				DrugName: name,
				Quantity: prescription.Quantity,
				Notes:    prescription.Notes,
				Status:   prescription.Status,
			})
		}
		detailed = append(detailed, ExaminationWithDetail{Examination: exam, Prescriptions: details})
	}

	var payments []models.Payment
	if err := r.DB.Where("patient_id = ?", patientID).
		Order("paid_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}

	return &PatientHistory{
		PatientInfo:  patient,
		Examinations: detailed,
		Payments:     payments,
	}, nil
}
