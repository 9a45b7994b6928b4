package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/report"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

func setupReportHandler(t *testing.T) (*ReportHandler, *storage.Store, func(plan string) *models.ClientRecord) {
	t.Helper()
	db := setupHandlerDB(t)
	reports, err := storage.New(t.TempDir(), "/reports")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	h := NewReportHandler(db, services.NewDraftService(db), report.NewRenderer(reports), reports)
	return h, reports, func(plan string) *models.ClientRecord {
		return seedClient(t, db, plan, models.PriorityUnranked)
	}
}

func TestDownloadBeforeRenderIsNotFound(t *testing.T) {
	h, _, seed := setupReportHandler(t)
	rec := seed(models.PlanBasic)

	req := httptest.NewRequest(http.MethodGet, "/clients/report/download?id="+strconv.Itoa(int(rec.ID)), nil)
	w := httptest.NewRecorder()
	h.Download(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "report_not_rendered") {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestDraftThenRenderThenDownload(t *testing.T) {
	h, reports, seed := setupReportHandler(t)
	rec := seed(models.PlanUltimate)
	id := strconv.Itoa(int(rec.ID))

	// Generate the draft explicitly.
	w := httptest.NewRecorder()
	h.GenerateDraft(w, httptest.NewRequest(http.MethodPost, "/clients/draft?id="+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("draft: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// Render the PDF artifact.
	w = httptest.NewRecorder()
	h.Render(w, httptest.NewRequest(http.MethodPost, "/clients/report?id="+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("render: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !reports.Exists(rec.ClientCode + ".pdf") {
		t.Fatalf("artifact not written")
	}

	// Download it back.
	w = httptest.NewRecorder()
	h.Download(w, httptest.NewRequest(http.MethodGet, "/clients/report/download?id="+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("download: expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/pdf") {
		t.Fatalf("content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("downloaded body is not a PDF")
	}
}

func TestRenderUnknownRecord(t *testing.T) {
	h, _, _ := setupReportHandler(t)
	w := httptest.NewRecorder()
	h.Render(w, httptest.NewRequest(http.MethodPost, "/clients/report?id=4242", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
