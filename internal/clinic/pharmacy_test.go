package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-app-server/internal/models"
)

// pharmacyFixture wires a registered visit with an examination in the
// pharmacy stage, ready to receive prescriptions.
type pharmacyFixture struct {
	registry     *Registry
	examinations *ExaminationLog
	pharmacy     *Pharmacy
	patient      *models.Patient
	entry        *models.QueueEntry
	exam         *models.Examination
}

func newPharmacyFixture(t *testing.T) *pharmacyFixture {
	t.Helper()
	registry, db := newTestRegistry(t)
	patient, entry := registerVisit(t, registry, "Alice")
	examinations := NewExaminationLog(db, zap.NewNop())

	exam, err := examinations.CreateExamination(entry.ID, 1, "cough", "flu", "")
	require.NoError(t, err)

	return &pharmacyFixture{
		registry:     registry,
		examinations: examinations,
		pharmacy:     NewPharmacy(db, zap.NewNop()),
		patient:      patient,
		entry:        entry,
		exam:         exam,
	}
}

func TestFulfillOneDecrementsStockAndRejectsRepeat(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	prescription, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 4, "")
	require.NoError(t, err)

	fulfilled, err := f.pharmacy.FulfillOne(prescription.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PrescriptionFulfilled, fulfilled.Status)
	assert.Equal(t, 6, reloadDrug(t, db, drug.ID).Stock)

	// Repeating the call is an error and must not mutate anything further.
	_, err = f.pharmacy.FulfillOne(prescription.ID)
	assert.ErrorIs(t, err, ErrAlreadyFulfilled)
	assert.Equal(t, 6, reloadDrug(t, db, drug.ID).Stock)
}

func TestFulfillOneInsufficientStockLeavesStateUntouched(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 2, 5000)

	prescription, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 5, "")
	require.NoError(t, err)

	_, err = f.pharmacy.FulfillOne(prescription.ID)
	require.Error(t, err)
	assert.True(t, IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "Amoxicillin")
	assert.Contains(t, err.Error(), "need 5")
	assert.Contains(t, err.Error(), "have 2")

	assert.Equal(t, 2, reloadDrug(t, db, drug.ID).Stock)
	assert.Equal(t, models.PrescriptionPending, reloadPrescription(t, db, prescription.ID).Status)
	assert.Equal(t, models.VisitPharmacy, reloadPatient(t, db, f.patient.ID).Status)
}

func TestFulfillOneMissingPrescription(t *testing.T) {
	f := newPharmacyFixture(t)
	_, err := f.pharmacy.FulfillOne(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFulfillOneMissingDrug(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB

	prescription := models.Prescription{
		ExaminationID: f.exam.ID,
		DrugID:        404,
		Quantity:      1,
		Status:        models.PrescriptionPending,
	}
	require.NoError(t, db.Create(&prescription).Error)

	_, err := f.pharmacy.FulfillOne(prescription.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFulfillOneAdvancesVisitOnlyWhenAllFulfilled(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	first, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 2, "")
	require.NoError(t, err)
	second, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 3, "")
	require.NoError(t, err)

	_, err = f.pharmacy.FulfillOne(first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitPharmacy, reloadPatient(t, db, f.patient.ID).Status)

	_, err = f.pharmacy.FulfillOne(second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitPaying, reloadPatient(t, db, f.patient.ID).Status)
	assert.Equal(t, models.VisitPaying, reloadQueueEntry(t, db, f.entry.ID).Status)
}

func TestFulfillAllCompletesEveryPendingPrescription(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	amoxicillin := createDrug(t, db, "Amoxicillin", 10, 5000)
	ibuprofen := createDrug(t, db, "Ibuprofen", 8, 3000)

	_, err := f.examinations.AddPrescription(f.exam.ID, amoxicillin.ID, 4, "")
	require.NoError(t, err)
	_, err = f.examinations.AddPrescription(f.exam.ID, ibuprofen.ID, 2, "")
	require.NoError(t, err)

	fulfilled, err := f.pharmacy.FulfillAll(f.exam.ID)
	require.NoError(t, err)
	assert.Len(t, fulfilled, 2)

	assert.Equal(t, 6, reloadDrug(t, db, amoxicillin.ID).Stock)
	assert.Equal(t, 6, reloadDrug(t, db, ibuprofen.ID).Stock)
	assert.Equal(t, models.VisitPaying, reloadPatient(t, db, f.patient.ID).Status)
}

func TestFulfillAllAbortsWholeBatchOnShortfall(t *testing.T) {
	// Two prescriptions sharing a drug with stock 5, quantities 3 and 4:
	// 3+4 > 5, so nothing may be decremented.
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 5, 5000)

	first, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 3, "")
	require.NoError(t, err)
	second, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 4, "")
	require.NoError(t, err)

	_, err = f.pharmacy.FulfillAll(f.exam.ID)
	require.Error(t, err)
	assert.True(t, IsInsufficientStock(err))

	assert.Equal(t, 5, reloadDrug(t, db, drug.ID).Stock)
	assert.Equal(t, models.PrescriptionPending, reloadPrescription(t, db, first.ID).Status)
	assert.Equal(t, models.PrescriptionPending, reloadPrescription(t, db, second.ID).Status)
	assert.Equal(t, models.VisitPharmacy, reloadPatient(t, db, f.patient.ID).Status)
}

func TestFulfillAllSkipsAlreadyFulfilledLines(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	first, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 2, "")
	require.NoError(t, err)
	_, err = f.examinations.AddPrescription(f.exam.ID, drug.ID, 3, "")
	require.NoError(t, err)

	_, err = f.pharmacy.FulfillOne(first.ID)
	require.NoError(t, err)

	fulfilled, err := f.pharmacy.FulfillAll(f.exam.ID)
	require.NoError(t, err)
	assert.Len(t, fulfilled, 1)
	assert.Equal(t, 5, reloadDrug(t, db, drug.ID).Stock)
}

func TestFulfillAllWithNoPrescriptions(t *testing.T) {
	f := newPharmacyFixture(t)
	_, err := f.pharmacy.FulfillAll(f.exam.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFulfillAllWhenEverythingIsFulfilled(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	prescription, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 1, "")
	require.NoError(t, err)
	_, err = f.pharmacy.FulfillOne(prescription.ID)
	require.NoError(t, err)

	_, err = f.pharmacy.FulfillAll(f.exam.ID)
	assert.ErrorIs(t, err, ErrAlreadyFulfilled)
	assert.Equal(t, 9, reloadDrug(t, db, drug.ID).Stock)
}

func TestPendingWorkGroupsByExamination(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	_, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 1, "")
	require.NoError(t, err)
	_, err = f.examinations.AddPrescription(f.exam.ID, drug.ID, 2, "")
	require.NoError(t, err)

	work, err := f.pharmacy.PendingWork()
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, f.exam.ID, work[0].Examination.ID)
	assert.Equal(t, f.patient.ID, work[0].Patient.ID)
	assert.Equal(t, models.VisitPharmacy, work[0].QueueStatus)
	assert.Len(t, work[0].Prescriptions, 2)

	_, err = f.pharmacy.FulfillAll(f.exam.ID)
	require.NoError(t, err)

	work, err = f.pharmacy.PendingWork()
	require.NoError(t, err)
	assert.Empty(t, work)
}
