package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/auth"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/config"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/report"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/server"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

// NewApp wires stores, services and handlers into the root handler.
// Payment confirmation triggers draft generation through the OnPaid hook,
// so the coupling lives here rather than inside the payment service.
func NewApp(dbConn *gorm.DB, cfg config.Config) (http.Handler, error) {
	uploads, err := storage.New(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, err
	}
	reports, err := storage.New(cfg.ReportDir, "/reports")
	if err != nil {
		return nil, err
	}

	intake := services.NewIntakeService(dbConn, uploads, cfg.Location)
	drafts := services.NewDraftService(dbConn)
	payments := services.NewPaymentService(dbConn, cfg.Location)
	payments.OnPaid = drafts.Generate

	return server.New(server.Deps{
		DB:       dbConn,
		Intake:   intake,
		Payments: payments,
		Drafts:   drafts,
		Renderer: report.NewRenderer(reports),
		Uploads:  uploads,
		Reports:  reports,
		Creds: auth.Credentials{
			User:         cfg.AdminUser,
			PasswordHash: cfg.AdminPasswordHash,
			Password:     cfg.AdminPassword,
		},
	}), nil
}
