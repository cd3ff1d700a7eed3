package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testExaminationFee = 50000

func TestPendingBillsComputesTotals(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	billing := NewBilling(db, testExaminationFee)
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	prescription, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 4, "")
	require.NoError(t, err)
	_, err = f.pharmacy.FulfillOne(prescription.ID)
	require.NoError(t, err)

	bills, err := billing.PendingBills()
	require.NoError(t, err)
	require.Len(t, bills, 1)

	bill := bills[0]
	assert.Equal(t, f.exam.ID, bill.ExaminationID)
	assert.Equal(t, f.patient.ID, bill.PatientID)
	assert.Equal(t, "Alice", bill.PatientName)
	assert.Equal(t, 20000, bill.DrugCost)
	assert.Equal(t, testExaminationFee, bill.ExaminationFee)
	assert.Equal(t, 70000, bill.TotalAmount)

	require.Len(t, bill.LineItems, 1)
	assert.Equal(t, "Amoxicillin", bill.LineItems[0].DrugName)
	assert.Equal(t, 4, bill.LineItems[0].Quantity)
	assert.Equal(t, 5000, bill.LineItems[0].UnitPrice)
	assert.Equal(t, 20000, bill.LineItems[0].LineTotal)
}

func TestPendingBillsOnlyCountFulfilledLines(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	billing := NewBilling(db, testExaminationFee)
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	first, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 2, "")
	require.NoError(t, err)
	_, err = f.examinations.AddPrescription(f.exam.ID, drug.ID, 3, "")
	require.NoError(t, err)

	_, err = f.pharmacy.FulfillOne(first.ID)
	require.NoError(t, err)

	bills, err := billing.PendingBills()
	require.NoError(t, err)
	require.Len(t, bills, 1)

	// Only the fulfilled 2-unit line is billable so far.
	assert.Equal(t, 10000, bills[0].DrugCost)
	assert.Len(t, bills[0].LineItems, 1)
}

func TestPendingBillsExcludeExamsWithoutFulfilledPrescriptions(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	billing := NewBilling(db, testExaminationFee)
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	_, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 2, "")
	require.NoError(t, err)

	bills, err := billing.PendingBills()
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestPendingBillsExcludePaidExaminations(t *testing.T) {
	f := newPharmacyFixture(t)
	db := f.registry.DB
	billing := NewBilling(db, testExaminationFee)
	payments := NewPayments(db, zap.NewNop())
	drug := createDrug(t, db, "Amoxicillin", 10, 5000)

	prescription, err := f.examinations.AddPrescription(f.exam.ID, drug.ID, 4, "")
	require.NoError(t, err)
	_, err = f.pharmacy.FulfillOne(prescription.ID)
	require.NoError(t, err)

	bills, err := billing.PendingBills()
	require.NoError(t, err)
	require.Len(t, bills, 1)

	_, err = payments.Record(f.patient.ID, f.exam.ID, bills[0].DrugCost, bills[0].ExaminationFee, "cash")
	require.NoError(t, err)

	bills, err = billing.PendingBills()
	require.NoError(t, err)
	assert.Empty(t, bills)
}
