package handlers

import (
	"errors"
	"net/http"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
)

const maxUploadBytes = 32 << 20

// IntakeHandler serves the public website submission endpoint.
type IntakeHandler struct {
	Svc *services.IntakeService
}

func NewIntakeHandler(svc *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{Svc: svc}
}

// Submit: POST /submit – multipart form with palm images.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	in := services.SubmitInput{
		Name:      r.FormValue("name"),
		Phone:     r.FormValue("phone"),
		DOB:       r.FormValue("dob"),
		TOB:       r.FormValue("tob"),
		Place:     r.FormValue("place"),
		Questions: r.FormValue("questions"),
		Plan:      r.FormValue("plan"),
		Source:    models.SourceWebsite,
	}

	var uploads []services.Upload
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_upload", nil)
				return
			}
			defer f.Close()
			uploads = append(uploads, services.Upload{Filename: fh.Filename, Data: f})
		}
	}

	rec, err := h.Svc.Submit(in, uploads)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "client_code": rec.ClientCode})
}
