package models

import "time"

// Record provenance
type Source string

const (
	SourceManual  Source = "Manual"
	SourceWebsite Source = "Website"
)

// Review workflow status
type Status string

const (
	StatusPending   Status = "Pending"
	StatusReviewed  Status = "Reviewed"
	StatusCompleted Status = "Completed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// PriorityUnranked is the sentinel for records not yet transitioned to Paid.
const PriorityUnranked = 99

// PlaceholderDraft is stored on intake until a draft is generated.
const PlaceholderDraft = "AI draft pending"

// ClientRecord is one intake: the client's details, uploaded palm images,
// payment/review state and the generated report draft.
type ClientRecord struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ClientCode    string        `gorm:"uniqueIndex;not null" json:"client_code"`
	Name          string        `gorm:"not null" json:"name"`
	Phone         string        `gorm:"not null" json:"phone"`
	DOB           string        `gorm:"not null" json:"dob"` // as entered on the form
	TOB           string        `json:"tob"`
	Place         string        `json:"place"`
	Questions     string        `gorm:"type:text" json:"questions"`
	Plan          string        `gorm:"not null" json:"plan"`
	Images        ImageList     `gorm:"type:text" json:"images"`
	Source        Source        `gorm:"not null;default:'Manual'" json:"source"`
	Status        Status        `gorm:"not null;default:'Pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'Pending'" json:"payment_status"`
	PaymentDate   *time.Time    `json:"payment_date"`
	PaymentRef    string        `json:"payment_ref"`
	Priority      int           `gorm:"not null;default:99" json:"priority"`
	AIDraft       string        `gorm:"column:ai_draft;type:text" json:"ai_draft"`
	AIGenerated   bool          `gorm:"not null;default:false" json:"ai_generated"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (ClientRecord) TableName() string { return "client_records" }

// Paid reports whether the record has completed the payment transition.
func (c *ClientRecord) Paid() bool { return c.PaymentStatus == PaymentPaid }
