package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-app-server/internal/models"
)

func TestCreateExaminationAdvancesVisitToPharmacy(t *testing.T) {
	registry, db := newTestRegistry(t)
	patient, entry := registerVisit(t, registry, "Alice")
	examinations := NewExaminationLog(db, zap.NewNop())

	exam, err := examinations.CreateExamination(entry.ID, 7, "headache", "migraine", "rest advised")
	require.NoError(t, err)

	assert.Equal(t, patient.ID, exam.PatientID)
	assert.EqualValues(t, 7, exam.DoctorID)
	assert.False(t, exam.ExaminedAt.IsZero())

	// The pharmacy stage is next even before any prescription exists.
	assert.Equal(t, models.VisitPharmacy, reloadPatient(t, db, patient.ID).Status)
	assert.Equal(t, models.VisitPharmacy, reloadQueueEntry(t, db, entry.ID).Status)
}

func TestCreateExaminationMissingQueueEntry(t *testing.T) {
	db := newTestDB(t)
	examinations := NewExaminationLog(db, zap.NewNop())

	_, err := examinations.CreateExamination(404, 1, "", "flu", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddPrescriptionDefaultsToPending(t *testing.T) {
	registry, db := newTestRegistry(t)
	_, entry := registerVisit(t, registry, "Alice")
	examinations := NewExaminationLog(db, zap.NewNop())

	exam, err := examinations.CreateExamination(entry.ID, 1, "cough", "flu", "")
	require.NoError(t, err)
	drug := createDrug(t, db, "Paracetamol", 100, 2000)

	prescription, err := examinations.AddPrescription(exam.ID, drug.ID, 3, "after meals")
	require.NoError(t, err)

	assert.Equal(t, models.PrescriptionPending, prescription.Status)
	assert.Equal(t, 3, prescription.Quantity)

	// No stock is consumed at prescription time.
	assert.Equal(t, 100, reloadDrug(t, db, drug.ID).Stock)
}

func TestAddPrescriptionValidation(t *testing.T) {
	registry, db := newTestRegistry(t)
	_, entry := registerVisit(t, registry, "Alice")
	examinations := NewExaminationLog(db, zap.NewNop())

	exam, err := examinations.CreateExamination(entry.ID, 1, "", "flu", "")
	require.NoError(t, err)
	drug := createDrug(t, db, "Paracetamol", 100, 2000)

	_, err = examinations.AddPrescription(exam.ID, drug.ID, 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = examinations.AddPrescription(404, drug.ID, 1, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = examinations.AddPrescription(exam.ID, 404, 1, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPrescriptionsFiltersByStatus(t *testing.T) {
	registry, db := newTestRegistry(t)
	_, entry := registerVisit(t, registry, "Alice")
	examinations := NewExaminationLog(db, zap.NewNop())

	exam, err := examinations.CreateExamination(entry.ID, 1, "", "flu", "")
	require.NoError(t, err)
	drug := createDrug(t, db, "Paracetamol", 100, 2000)

	first, err := examinations.AddPrescription(exam.ID, drug.ID, 1, "")
	require.NoError(t, err)
	_, err = examinations.AddPrescription(exam.ID, drug.ID, 2, "")
	require.NoError(t, err)

	pharmacy := NewPharmacy(db, zap.NewNop())
	_, err = pharmacy.FulfillOne(first.ID)
	require.NoError(t, err)

	pending, err := examinations.ListPrescriptions(models.PrescriptionPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	fulfilled, err := examinations.ListPrescriptions(models.PrescriptionFulfilled)
	require.NoError(t, err)
	assert.Len(t, fulfilled, 1)

	all, err := examinations.ListPrescriptions("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
