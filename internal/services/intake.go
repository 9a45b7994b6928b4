package services

import (
	"errors"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/clientcode"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/validation"
)

// Upload is one submitted image prior to storage.
type Upload struct {
	Filename string
	Data     io.Reader
}

type SubmitInput struct {
	Name      string
	Phone     string
	DOB       string
	TOB       string
	Place     string
	Questions string
	Plan      string
	Source    models.Source
}

// ValidationError carries per-field violations back to the handler.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation_failed" }

// IntakeService creates client records from website or manual submissions.
type IntakeService struct {
	DB      *gorm.DB
	Uploads *storage.Store
	Loc     *time.Location
}

func NewIntakeService(db *gorm.DB, uploads *storage.Store, loc *time.Location) *IntakeService {
	return &IntakeService{DB: db, Uploads: uploads, Loc: loc}
}

const codeInsertAttempts = 5

// Submit validates the input, stores the uploaded images in order, and
// inserts the record in its initial state (Pending, unpaid, unranked,
// placeholder draft). Validation rejects before any side effect; an insert
// failure removes the files written for this submission.
func (s *IntakeService) Submit(in SubmitInput, images []Upload) (*models.ClientRecord, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("phone", in.Phone, v)
	validation.Phone("phone", in.Phone, v)
	validation.Required("dob", in.DOB, v)
	validation.Required("questions", in.Questions, v)
	validation.Required("plan", in.Plan, v)
	// The public form always attaches palm photos; staff may key in a
	// client before photos arrive.
	if in.Source == models.SourceWebsite && len(images) == 0 {
		v["images"] = "required"
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	stored := make(models.ImageList, 0, len(images))
	cleanup := func() {
		for _, name := range stored {
			_ = s.Uploads.Remove(name)
		}
	}
	for _, img := range images {
		name, err := s.Uploads.Save(img.Filename, img.Data)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, name)
	}

	source := in.Source
	if source == "" {
		source = models.SourceManual
	}
	var lastErr error
	for attempt := 0; attempt < codeInsertAttempts; attempt++ {
		code, err := clientcode.Generate(s.Loc)
		if err != nil {
			cleanup()
			return nil, err
		}
		rec := &models.ClientRecord{
			ClientCode:    code,
			Name:          strings.TrimSpace(in.Name),
			Phone:         strings.TrimSpace(in.Phone),
			DOB:           strings.TrimSpace(in.DOB),
			TOB:           strings.TrimSpace(in.TOB),
			Place:         strings.TrimSpace(in.Place),
			Questions:     in.Questions,
			Plan:          in.Plan,
			Images:        stored,
			Source:        source,
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentPending,
			Priority:      models.PriorityUnranked,
			AIDraft:       models.PlaceholderDraft,
			CreatedAt:     time.Now().In(s.Loc),
		}
		if err := s.DB.Create(rec).Error; err != nil {
			lastErr = err
			if isUniqueViolation(err) {
				continue
			}
			break
		}
		return rec, nil
	}
	cleanup()
	return nil, lastErr
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
