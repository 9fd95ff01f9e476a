package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierNone    = "none"
	TierStarter = "starter"
	TierPro     = "pro"
	TierAgency  = "agency"
)

// PlanTier returns the effective tier for a plan.
// Priority:
// 1. Explicit Tier stored in DB
// 2. Fallback inference by price (legacy safety net)
func PlanTier(p *Plan) string {
	if p == nil {
		return TierNone
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	switch tier {
	case TierStarter, TierPro, TierAgency:
		return tier
	}

	return inferTierFromPrice(p.PriceUSD)
}

// inferTierFromPrice exists ONLY as a backward-compatibility fallback.
func inferTierFromPrice(priceUSD float64) string {
	switch {
	case priceUSD >= 297:
		return TierAgency
	case priceUSD >= 97:
		return TierPro
	default:
		return TierStarter
	}
}
