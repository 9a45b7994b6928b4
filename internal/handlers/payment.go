package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
)

// PaymentHandler confirms payments from the admin queue.
type PaymentHandler struct {
	Svc *services.PaymentService
}

func NewPaymentHandler(svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// Pay: POST /clients/pay?id=...  Optional ref as query or form value.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		if err := r.ParseForm(); err == nil {
			ref = r.Form.Get("ref")
		}
	}
	if err := h.Svc.MarkPaid(uint(id), ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_mark_paid", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "paid"})
}
