package lead

// Heuristic scoring signals. Preferred channels earn a flat bonus;
// referrals earn a larger one. Leadership positions add on top.
const (
	baseScore           = 50.0
	channelBonus        = 20.0
	referralBonus       = 30.0
	teamLeaderBonus     = 15.0
	salesManagerBonus   = 10.0
	aiBlendHeuristicW   = 0.4
	aiBlendAIW          = 0.6
	highPriorityFloor   = 80.0
	mediumPriorityFloor = 60.0
)

var preferredChannels = map[string]bool{
	"LinkedIn": true,
	"Moovijob": true,
}

// CalculateScore derives the ranking score and priority bucket of a lead
// from its source channel and applied-for position, blended with an external
// AI suitability score when one is present (the AI score dominates the
// blend). The function is pure; it runs once at submission time and is never
// re-run on later edits, so manually entered overrides are preserved.
func CalculateScore(source, postAppliedFor string, aiScore *float64) (float64, Priority) {
	score := baseScore
	if preferredChannels[source] {
		score += channelBonus
	}
	if source == "Referral" {
		score += referralBonus
	}
	if postAppliedFor == "Team Leader" {
		score += teamLeaderBonus
	}
	if postAppliedFor == "Sales Manager" {
		score += salesManagerBonus
	}

	if aiScore != nil {
		score = score*aiBlendHeuristicW + *aiScore*aiBlendAIW
	}

	score = clamp(score, 0, 100)
	return score, PriorityForScore(score)
}

// PriorityForScore maps a score onto the three priority buckets.
func PriorityForScore(score float64) Priority {
	switch {
	case score >= highPriorityFloor:
		return PriorityHigh
	case score >= mediumPriorityFloor:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
