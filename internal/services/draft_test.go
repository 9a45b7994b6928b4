package services

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
)

func TestProfileTable(t *testing.T) {
	cases := []struct {
		plan     string
		depth    string
		remedies string
		quota    int
	}{
		{models.PlanUltimate, "Deep karmic analysis", "Advanced spiritual remedies", 5},
		{models.PlanPremium, "Strategic life guidance", "Spiritual and discipline remedies", 3},
		{models.PlanDetailed, "Detailed practical explanation", "Weekly mantra remedies", 2},
		{models.PlanBasic, "Simple direct guidance", "Basic daily remedies", 1},
		{"₹99 special", "Simple direct guidance", "Basic daily remedies", 1},
	}
	for _, tc := range cases {
		p := ProfileFor(models.PlanTierOf(tc.plan))
		if p.Depth != tc.depth || p.Remedies != tc.remedies || p.QuestionQuota != tc.quota {
			t.Fatalf("plan %q: got %+v", tc.plan, p)
		}
	}
}

func TestGenerateStoresDraft(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDraftService(db)
	rec := seedRecord(t, db, models.PlanUltimate)

	if err := svc.Generate(rec.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	var got models.ClientRecord
	if err := db.First(&got, rec.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.AIGenerated {
		t.Fatalf("ai_generated not set")
	}
	if !strings.Contains(got.AIDraft, "Deep") || !strings.Contains(got.AIDraft, "Advanced spiritual remedies") {
		t.Fatalf("ultimate-tier language missing from draft:\n%s", got.AIDraft)
	}
	if !strings.Contains(got.AIDraft, rec.Name) {
		t.Fatalf("client name missing from draft")
	}
	if !strings.Contains(got.AIDraft, rec.Questions) {
		t.Fatalf("questions not embedded verbatim")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDraftService(db)
	rec := seedRecord(t, db, models.PlanDetailed)

	if err := svc.Generate(rec.ID); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	var first models.ClientRecord
	db.First(&first, rec.ID)

	// Change the questions and regenerate: the new draft must reflect only
	// the current record, not the previous draft.
	if err := db.Model(&models.ClientRecord{}).Where("id = ?", rec.ID).Update("questions", "Should I relocate abroad?").Error; err != nil {
		t.Fatalf("update questions: %v", err)
	}
	if err := svc.Generate(rec.ID); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	var second models.ClientRecord
	db.First(&second, rec.ID)

	if !strings.Contains(second.AIDraft, "Should I relocate abroad?") {
		t.Fatalf("regenerated draft missing new questions")
	}
	if strings.Contains(second.AIDraft, rec.Questions) {
		t.Fatalf("regenerated draft still contains the old questions")
	}
	if second.AIDraft == first.AIDraft {
		t.Fatalf("draft not overwritten")
	}

	// Same inputs, same output.
	if err := svc.Generate(rec.ID); err != nil {
		t.Fatalf("third generate: %v", err)
	}
	var third models.ClientRecord
	db.First(&third, rec.ID)
	if third.AIDraft != second.AIDraft {
		t.Fatalf("draft changed with unchanged inputs")
	}
}

func TestComposeDraftSections(t *testing.T) {
	draft := ComposeDraft("Asha", models.PlanPremium, "Q1\nQ2")
	parts := strings.Split(draft, SectionDelimiter)
	if len(parts) != 8 {
		t.Fatalf("expected greeting + 7 sections, got %d fragments", len(parts))
	}
	for i, want := range []string{"1.", "2.", "3.", "4.", "5.", "6.", "7."} {
		if !strings.HasPrefix(parts[i+1], want) {
			t.Fatalf("section %d starts %q", i+1, parts[i+1][:min(12, len(parts[i+1]))])
		}
	}
}

func TestGenerateUnknownRecord(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDraftService(db)
	if err := svc.Generate(12345); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
