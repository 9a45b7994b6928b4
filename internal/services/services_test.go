package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ClientRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupUploadStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return s
}

// seedRecord inserts a minimal pending record for the given plan.
func seedRecord(t *testing.T, db *gorm.DB, plan string) *models.ClientRecord {
	t.Helper()
	rec := &models.ClientRecord{
		ClientCode:    fmt.Sprintf("AVV-2026-%d", time.Now().UnixNano()%100000),
		Name:          "Ramesh Kumar",
		Phone:         "+91 98765 43210",
		DOB:           "1990-03-14",
		Questions:     "Will my business grow this year?",
		Plan:          plan,
		Source:        models.SourceManual,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		Priority:      models.PriorityUnranked,
		AIDraft:       models.PlaceholderDraft,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
	return rec
}
