package clinic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-app-server/internal/models"
)

func TestRecordPaymentClosesVisit(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	payments := NewPayments(db, zap.NewNop())

	payment, err := payments.Record(f.patient.ID, f.exam.ID, 20000, 50000, "cash")
	require.NoError(t, err)

	assert.Equal(t, 70000, payment.TotalAmount)
	assert.Equal(t, models.PaymentSettled, payment.Status)
	assert.NotEmpty(t, payment.ReceiptNo)
	assert.False(t, payment.PaidAt.IsZero())

	assert.Equal(t, models.VisitDone, reloadPatient(t, db, f.patient.ID).Status)
	assert.Equal(t, models.VisitDone, reloadQueueEntry(t, db, f.entry.ID).Status)
}

func TestRecordPaymentRejectsDuplicate(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	payments := NewPayments(db, zap.NewNop())

	_, err := payments.Record(f.patient.ID, f.exam.ID, 20000, 50000, "cash")
	require.NoError(t, err)

	_, err = payments.Record(f.patient.ID, f.exam.ID, 20000, 50000, "card")
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("examination_id = ?", f.exam.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordPaymentMissingExamination(t *testing.T) {
	f := newPharmacyFixture(t)
	payments := NewPayments(f.registry.DB, zap.NewNop())

	_, err := payments.Record(f.patient.ID, 404, 0, 50000, "cash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPaymentsEnrichesWithPatientName(t *testing.T) {
	f := newPharmacyFixture(t)
	payments := NewPayments(f.registry.DB, zap.NewNop())

	_, err := payments.Record(f.patient.ID, f.exam.ID, 20000, 50000, "cash")
	require.NoError(t, err)

	listed, err := payments.List(nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Alice", listed[0].PatientName)
}

func TestListPaymentsFiltersByDay(t *testing.T) {
	f := newPharmacyFixture(t)
	payments := NewPayments(f.registry.DB, zap.NewNop())

	_, err := payments.Record(f.patient.ID, f.exam.ID, 20000, 50000, "cash")
	require.NoError(t, err)

	today := time.Now()
	listed, err := payments.List(&today)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	yesterday := today.AddDate(0, 0, -1)
	listed, err = payments.List(&yesterday)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
