package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
)

// PaymentService owns the Unpaid -> Paid transition. There is no reverse
// transition. The first Paid wins: repeating the call never moves
// payment_date or priority.
type PaymentService struct {
	DB  *gorm.DB
	Loc *time.Location

	// OnPaid runs after a successful transition into Paid; the app wires
	// it to draft generation. Repeat calls on a paid record do not fire it.
	OnPaid func(recordID uint) error
}

func NewPaymentService(db *gorm.DB, loc *time.Location) *PaymentService {
	return &PaymentService{DB: db, Loc: loc}
}

// MarkPaid stamps the payment date, stores the optional reference, and
// assigns the queue priority from the plan tier.
func (s *PaymentService) MarkPaid(id uint, ref string) error {
	var rec models.ClientRecord
	if err := s.DB.First(&rec, id).Error; err != nil {
		return err
	}
	if rec.Paid() {
		if ref != "" && ref != rec.PaymentRef {
			return s.DB.Model(&rec).Update("payment_ref", ref).Error
		}
		return nil
	}

	now := time.Now().In(s.Loc)
	updates := map[string]any{
		"payment_status": models.PaymentPaid,
		"payment_date":   now,
		"priority":       models.PlanTierOf(rec.Plan).Priority(),
	}
	if ref != "" {
		updates["payment_ref"] = ref
	}
	if err := s.DB.Model(&rec).Updates(updates).Error; err != nil {
		return err
	}
	if s.OnPaid != nil {
		return s.OnPaid(id)
	}
	return nil
}
