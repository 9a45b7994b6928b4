package models

import "strings"

// The four service plans offered on the website. Each label embeds the
// amount in rupees; tier detection keys off that amount so older label
// wordings keep matching.
const (
	PlanUltimate = "₹501 – अल्टीमेट प्लान"
	PlanPremium  = "₹251 – प्रीमियम प्लान"
	PlanDetailed = "₹151 – डिटेल्ड प्लान"
	PlanBasic    = "₹51 – बेसिक प्लान"
)

type PlanTier int

const (
	TierBasic PlanTier = iota
	TierDetailed
	TierPremium
	TierUltimate
)

// PlanTierOf maps a plan label to its tier. Unknown or empty labels fall
// into the basic tier.
func PlanTierOf(plan string) PlanTier {
	switch {
	case strings.Contains(plan, "501"):
		return TierUltimate
	case strings.Contains(plan, "251"):
		return TierPremium
	case strings.Contains(plan, "151"):
		return TierDetailed
	default:
		return TierBasic
	}
}

// Priority is the admin-queue rank assigned when the record is marked paid.
// Lower is more urgent.
func (t PlanTier) Priority() int {
	switch t {
	case TierUltimate:
		return 1
	case TierPremium:
		return 2
	case TierDetailed:
		return 3
	default:
		return 4
	}
}
