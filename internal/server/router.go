package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/auth"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/handlers"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/report"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

// Deps carries everything the router wires together.
type Deps struct {
	DB       *gorm.DB
	Intake   *services.IntakeService
	Payments *services.PaymentService
	Drafts   *services.DraftService
	Renderer *report.Renderer
	Uploads  *storage.Store
	Reports  *storage.Store
	Creds    auth.Credentials
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := d.DB.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Public website submission
	ih := handlers.NewIntakeHandler(d.Intake)
	mux.HandleFunc("/submit", ih.Submit)

	// Auth endpoints
	ah := handlers.NewAuthHandler(d.Creds)
	ah.Register(mux)

	// Admin: client records
	ch := handlers.NewClientHandler(d.DB, d.Intake)
	mux.Handle("/clients", admin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/clients/get", admin(get(ch.Get)))
	mux.Handle("/clients/update", admin(post(ch.Update)))

	// Admin: payment transition
	ph := handlers.NewPaymentHandler(d.Payments)
	mux.Handle("/clients/pay", admin(post(ph.Pay)))

	// Admin: drafts and report artifacts
	rh := handlers.NewReportHandler(d.DB, d.Drafts, d.Renderer, d.Reports)
	mux.Handle("/clients/draft", admin(post(rh.GenerateDraft)))
	mux.Handle("/clients/report", admin(post(rh.Render)))
	mux.Handle("/clients/report/download", admin(get(rh.Download)))

	// Stored blobs: uploaded palm images and rendered PDFs
	mux.Handle("/uploads/", admin(http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.Uploads.Dir())))))
	mux.Handle("/reports/", admin(http.StripPrefix("/reports/", http.FileServer(http.Dir(d.Reports.Dir())))))

	return withRecover(withLogging(mux))
}

func admin(next http.Handler) http.Handler {
	return auth.Middleware(auth.RequireAdmin(next))
}

func get(h http.HandlerFunc) http.Handler {
	return method(http.MethodGet, h)
}

func post(h http.HandlerFunc) http.Handler {
	return method(http.MethodPost, h)
}

func method(m string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			w.Header().Set("Allow", m)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
