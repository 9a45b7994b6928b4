package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/auth"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
)

// AuthHandler signs staff in against the env-configured credentials and
// issues the session cookie.
type AuthHandler struct {
	Creds auth.Credentials
}

func NewAuthHandler(creds auth.Credentials) *AuthHandler {
	return &AuthHandler{Creds: creds}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/logout", h.Logout)
}

// Login: POST /login – form or JSON username/password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var user, pass string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		user, pass = req.Username, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		user, pass = r.FormValue("username"), r.FormValue("password")
	}
	if !h.Creds.Check(user, pass) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_in"})
}

// Logout: POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
