package clinic

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

func newTestRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewRegistry(db, zap.NewNop()), db
}

// registerVisit registers a patient and returns it with its queue entry.
func registerVisit(t *testing.T, registry *Registry, name string) (*models.Patient, *models.QueueEntry) {
	t.Helper()

	patient, err := registry.Register(RegisterInput{
		Name:        name,
		DateOfBirth: "1990-01-01",
		Gender:      "F",
		Phone:       "0800000000",
		Address:     "1 Clinic Way",
	})
	require.NoError(t, err)

	var entry models.QueueEntry
	require.NoError(t, registry.DB.Where("patient_id = ?", patient.ID).Order("id DESC").First(&entry).Error)
	return patient, &entry
}

func createDrug(t *testing.T, db *gorm.DB, name string, stock, unitPrice int) *models.Drug {
	t.Helper()
	drug := models.Drug{Name: name, Stock: stock, UnitPrice: unitPrice}
	require.NoError(t, db.Create(&drug).Error)
	return &drug
}

func reloadPatient(t *testing.T, db *gorm.DB, id uint) models.Patient {
	t.Helper()
	var patient models.Patient
	require.NoError(t, db.First(&patient, id).Error)
	return patient
}

func reloadQueueEntry(t *testing.T, db *gorm.DB, id uint) models.QueueEntry {
	t.Helper()
	var entry models.QueueEntry
	require.NoError(t, db.First(&entry, id).Error)
	return entry
}

func reloadDrug(t *testing.T, db *gorm.DB, id uint) models.Drug {
	t.Helper()
	var drug models.Drug
	require.NoError(t, db.First(&drug, id).Error)
	return drug
}

func reloadPrescription(t *testing.T, db *gorm.DB, id uint) models.Prescription {
	t.Helper()
	var prescription models.Prescription
	require.NoError(t, db.First(&prescription, id).Error)
	return prescription
}
