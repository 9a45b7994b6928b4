package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
)

// SectionDelimiter separates the sections of a generated draft. The PDF
// renderer splits on it, so section bodies must not contain blank lines.
const SectionDelimiter = "\n\n"

// Profile is the per-tier shape of a report: how deep the reading goes,
// which remedy level is included, and how many client questions are
// answered. This is the whole "AI": a fixed template filled from this
// table, no inference anywhere.
type Profile struct {
	Depth         string
	Remedies      string
	QuestionQuota int
}

func ProfileFor(tier models.PlanTier) Profile {
	switch tier {
	case models.TierUltimate:
		return Profile{Depth: "Deep karmic analysis", Remedies: "Advanced spiritual remedies", QuestionQuota: 5}
	case models.TierPremium:
		return Profile{Depth: "Strategic life guidance", Remedies: "Spiritual and discipline remedies", QuestionQuota: 3}
	case models.TierDetailed:
		return Profile{Depth: "Detailed practical explanation", Remedies: "Weekly mantra remedies", QuestionQuota: 2}
	default:
		return Profile{Depth: "Simple direct guidance", Remedies: "Basic daily remedies", QuestionQuota: 1}
	}
}

// DraftService fills the report template for a record and stores the result
// in ai_draft. Generation is idempotent: the output depends only on the
// record's current name, plan and questions.
type DraftService struct {
	DB *gorm.DB
}

func NewDraftService(db *gorm.DB) *DraftService {
	return &DraftService{DB: db}
}

func (s *DraftService) Generate(id uint) error {
	var rec models.ClientRecord
	if err := s.DB.First(&rec, id).Error; err != nil {
		return err
	}
	draft := ComposeDraft(rec.Name, rec.Plan, rec.Questions)
	return s.DB.Model(&rec).Updates(map[string]any{
		"ai_draft":     draft,
		"ai_generated": true,
	}).Error
}

// ComposeDraft builds the full report text for the given client details.
// The client's questions are embedded verbatim.
func ComposeDraft(name, plan, questions string) string {
	p := ProfileFor(models.PlanTierOf(plan))
	q := strings.TrimSpace(questions)
	if q == "" {
		q = "No questions were submitted."
	}

	sections := []string{
		fmt.Sprintf("🙏 Namaste %s,\nThank you for choosing the %s. This reading was prepared from your palm photographs in the style of %s.", name, plan, strings.ToLower(p.Depth)),
		"1. Hand Structure\nThe overall build of your hand, the proportion of palm to fingers and the texture of the skin, sets the tone of the reading. Your hand shows a balanced elemental structure, which indicates steadiness in practical matters and an open mind toward change.",
		"2. Mounts of the Palm\nThe mounts of Jupiter, Saturn, Sun, Mercury, Venus and the Moon are weighed against each other. A developed mount of Jupiter points to leadership and self-respect; the mount of Venus speaks of warmth in relationships and vitality.",
		fmt.Sprintf("3. Major Lines\nThe life line, head line and heart line are read together, in the manner of %s. The life line speaks of vitality and major turns of circumstance, the head line of how you decide, and the heart line of how you attach.", strings.ToLower(p.Depth)),
		"4. Special Marks\nCrosses, stars, islands and triangles on the palm modify everything around them. Any such marks found in your photographs are weighed here with their traditional meanings.",
		fmt.Sprintf("5. Your Questions\nYou asked:\n%s\nYour plan covers detailed answers to up to %d question(s); these are addressed in the light of the lines and mounts above.", q, p.QuestionQuota),
		fmt.Sprintf("6. Remedies\n%s are prescribed for you. Follow them with faith and regularity; remedies work through discipline, not haste.", p.Remedies),
		fmt.Sprintf("7. Closing Guidance ✦\nThe palm records tendency, not destiny. With awareness and right effort the lines themselves change over time. May this reading serve you well, %s. 🙏", name),
	}
	return strings.Join(sections, SectionDelimiter)
}
