package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/auth"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/report"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ClientRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	uploads, err := storage.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("uploads: %v", err)
	}
	reports, err := storage.New(t.TempDir(), "/reports")
	if err != nil {
		t.Fatalf("reports: %v", err)
	}
	intake := services.NewIntakeService(db, uploads, time.UTC)
	drafts := services.NewDraftService(db)
	payments := services.NewPaymentService(db, time.UTC)
	payments.OnPaid = drafts.Generate
	return New(Deps{
		DB:       db,
		Intake:   intake,
		Payments: payments,
		Drafts:   drafts,
		Renderer: report.NewRenderer(reports),
		Uploads:  uploads,
		Reports:  reports,
		Creds:    auth.Credentials{User: "admin", Password: "testpass"},
	})
}

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	h := setupRouter(t)
	for _, path := range []string{"/clients", "/clients/get?id=1", "/clients/pay?id=1", "/clients/report/download?id=1"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without session, got %d", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("%s: content type = %q", path, ct)
		}
		if body := rec.Body.String(); body != `{"error":"unauthorized"}` {
			t.Fatalf("%s: body = %q", path, body)
		}
	}
}

func TestLoginIssuesWorkingSession(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=admin&password=testpass"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	var sess *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			sess = c
		}
	}
	if sess == nil {
		t.Fatalf("no session cookie issued")
	}

	listReq := httptest.NewRequest(http.MethodGet, "/clients", nil)
	listReq.AddCookie(sess)
	listRec := httptest.NewRecorder()
	h.ServeHTTP(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("authenticated list: expected 200 got %d", listRec.Code)
	}
}

func TestBadCredentialsRejected(t *testing.T) {
	h := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=admin&password=wrong"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
