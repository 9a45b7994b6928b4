package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/report"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

// ReportHandler covers draft (re)generation, PDF rendering and download.
type ReportHandler struct {
	DB       *gorm.DB
	Drafts   *services.DraftService
	Renderer *report.Renderer
	Reports  *storage.Store
}

func NewReportHandler(db *gorm.DB, drafts *services.DraftService, renderer *report.Renderer, reports *storage.Store) *ReportHandler {
	return &ReportHandler{DB: db, Drafts: drafts, Renderer: renderer, Reports: reports}
}

// GenerateDraft: POST /clients/draft?id= – explicit (re)generation,
// independent of the payment transition that normally triggers it.
func (h *ReportHandler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	rec, ok := loadRecord(h.DB, w, r)
	if !ok {
		return
	}
	if err := h.Drafts.Generate(rec.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_generate_draft", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "draft_generated"})
}

// Render: POST /clients/report?id= – materialize the PDF artifact. A
// rendering failure is a hard error.
func (h *ReportHandler) Render(w http.ResponseWriter, r *http.Request) {
	rec, ok := loadRecord(h.DB, w, r)
	if !ok {
		return
	}
	name, err := h.Renderer.Render(rec)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"file": name, "url": h.Reports.URL(name)})
}

// Download: GET /clients/report/download?id= – serve the rendered artifact.
// An unrendered report is a 404 condition, not a server error.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	rec, ok := loadRecord(h.DB, w, r)
	if !ok {
		return
	}
	name := rec.ClientCode + ".pdf"
	if !h.Reports.Exists(name) {
		httpx.JSONError(w, http.StatusNotFound, "report_not_rendered", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	http.ServeFile(w, r, h.Reports.Path(name))
}
