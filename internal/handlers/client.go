package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/validation"
)

// ClientHandler exposes the admin view of client records.
type ClientHandler struct {
	DB     *gorm.DB
	Intake *services.IntakeService
}

func NewClientHandler(db *gorm.DB, intake *services.IntakeService) *ClientHandler {
	return &ClientHandler{DB: db, Intake: intake}
}

// List: GET /clients – the admin queue, most urgent first. Within the same
// priority newer submissions come first.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	dbq := h.DB.Model(&models.ClientRecord{})
	if v := r.URL.Query().Get("status"); v != "" {
		dbq = dbq.Where("status = ?", v)
	}
	if v := r.URL.Query().Get("payment_status"); v != "" {
		dbq = dbq.Where("payment_status = ?", v)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	var recs []models.ClientRecord
	if err := dbq.Order("priority asc, id desc").Limit(limit).Offset(offset).Find(&recs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": recs, "total": total, "limit": limit, "offset": offset})
}

// Get: GET /clients/get?id=...
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Create: POST /clients – manual staff entry; multipart with optional
// images, or plain form/JSON without.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.SubmitInput
	var uploads []services.Upload

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "application/json"):
		var req struct {
			Name      string `json:"name"`
			Phone     string `json:"phone"`
			DOB       string `json:"dob"`
			TOB       string `json:"tob"`
			Place     string `json:"place"`
			Questions string `json:"questions"`
			Plan      string `json:"plan"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		in = services.SubmitInput{Name: req.Name, Phone: req.Phone, DOB: req.DOB, TOB: req.TOB, Place: req.Place, Questions: req.Questions, Plan: req.Plan}
	case strings.Contains(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in = submitInputFromForm(r)
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_upload", nil)
				return
			}
			defer f.Close()
			uploads = append(uploads, services.Upload{Filename: fh.Filename, Data: f})
		}
	default:
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in = submitInputFromForm(r)
	}
	in.Source = models.SourceManual

	rec, err := h.Intake.Submit(in, uploads)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": rec.ID, "client_code": rec.ClientCode})
}

// Update: POST /clients/update?id= – staff edits to review status and the
// draft text. Last write wins, matching the rest of the admin surface.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	var req struct {
		Status  *string `json:"status"`
		AIDraft *string `json:"ai_draft"`
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		if r.Form.Has("status") {
			s := r.Form.Get("status")
			req.Status = &s
		}
		if r.Form.Has("ai_draft") {
			d := r.Form.Get("ai_draft")
			req.AIDraft = &d
		}
	}

	updates := map[string]any{}
	if req.Status != nil {
		v := validation.Violations{}
		validation.OneOf("status", *req.Status, []string{
			string(models.StatusPending), string(models.StatusReviewed), string(models.StatusCompleted),
		}, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		updates["status"] = *req.Status
	}
	if req.AIDraft != nil {
		updates["ai_draft"] = *req.AIDraft
	}
	if len(updates) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "nothing_to_update", nil)
		return
	}
	if err := h.DB.Model(rec).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func submitInputFromForm(r *http.Request) services.SubmitInput {
	return services.SubmitInput{
		Name:      r.FormValue("name"),
		Phone:     r.FormValue("phone"),
		DOB:       r.FormValue("dob"),
		TOB:       r.FormValue("tob"),
		Place:     r.FormValue("place"),
		Questions: r.FormValue("questions"),
		Plan:      r.FormValue("plan"),
	}
}

// loadRecord parses the id query param and fetches the record, writing the
// error response itself when something is off.
func (h *ClientHandler) loadRecord(w http.ResponseWriter, r *http.Request) (*models.ClientRecord, bool) {
	return loadRecord(h.DB, w, r)
}

func loadRecord(db *gorm.DB, w http.ResponseWriter, r *http.Request) (*models.ClientRecord, bool) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return nil, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var rec models.ClientRecord
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return nil, false
	}
	return &rec, true
}
