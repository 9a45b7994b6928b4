package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
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

func setupIntake(t *testing.T, db *gorm.DB) (*services.IntakeService, *storage.Store) {
	t.Helper()
	uploads, err := storage.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return services.NewIntakeService(db, uploads, time.UTC), uploads
}

// seedClient inserts a record with the given plan and priority.
func seedClient(t *testing.T, db *gorm.DB, plan string, priority int) *models.ClientRecord {
	t.Helper()
	rec := &models.ClientRecord{
		ClientCode:    fmt.Sprintf("AVV-2026-%d", time.Now().UnixNano()%100000),
		Name:          "Test Client",
		Phone:         "9876543210",
		DOB:           "1991-01-01",
		Questions:     "What does my palm say?",
		Plan:          plan,
		Source:        models.SourceManual,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		Priority:      priority,
		AIDraft:       models.PlaceholderDraft,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return rec
}

// multipartBody builds a submission form with the given image filenames.
func multipartBody(t *testing.T, fields map[string]string, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, name := range imageNames {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
