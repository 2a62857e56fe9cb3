package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/somGabriel/Proago/pkg/ptrx"
)

func TestCalculateScoreHeuristicOnly(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		post         string
		wantScore    float64
		wantPriority Priority
	}{
		{"web form baseline", "Web Form", "Door-to-Door Sales Representative", 50, PriorityLow},
		{"linkedin channel", "LinkedIn", "Door-to-Door Sales Representative", 70, PriorityMedium},
		{"moovijob channel", "Moovijob", "Promoter / Brand Ambassador", 70, PriorityMedium},
		{"referral", "Referral", "Promoter / Brand Ambassador", 80, PriorityHigh},
		{"linkedin team leader", "LinkedIn", "Team Leader", 85, PriorityHigh},
		{"referral sales manager", "Referral", "Sales Manager", 90, PriorityHigh},
		{"website is not preferred", "Website", "Sales Manager", 60, PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, priority := CalculateScore(tt.source, tt.post, nil)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantPriority, priority)
		})
	}
}

func TestCalculateScoreBlendsAIScore(t *testing.T) {
	// Moovijob + Team Leader = 85 heuristic; blended with AI 100:
	// 85*0.4 + 100*0.6 = 94.
	score, priority := CalculateScore("Moovijob", "Team Leader", ptrx.Float64(100))
	assert.InDelta(t, 94, score, 0.001)
	assert.Equal(t, PriorityHigh, priority)

	// A weak AI verdict drags a strong heuristic down.
	score, priority = CalculateScore("Referral", "Team Leader", ptrx.Float64(10))
	assert.InDelta(t, 95*0.4+10*0.6, score, 0.001)
	assert.Equal(t, PriorityLow, priority)
}

func TestCalculateScoreClampsToRange(t *testing.T) {
	score, _ := CalculateScore("Referral", "Team Leader", ptrx.Float64(500))
	assert.Equal(t, 100.0, score)

	score, _ = CalculateScore("Web Form", "Promoter / Brand Ambassador", ptrx.Float64(-300))
	assert.Equal(t, 0.0, score)
}

func TestCalculateScoreIsDeterministic(t *testing.T) {
	first, p1 := CalculateScore("LinkedIn", "Sales Manager", ptrx.Float64(77))
	for range 10 {
		again, p2 := CalculateScore("LinkedIn", "Sales Manager", ptrx.Float64(77))
		assert.Equal(t, first, again)
		assert.Equal(t, p1, p2)
	}
}

func TestPriorityForScoreBoundaries(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityForScore(80))
	assert.Equal(t, PriorityMedium, PriorityForScore(79.999))
	assert.Equal(t, PriorityMedium, PriorityForScore(60))
	assert.Equal(t, PriorityLow, PriorityForScore(59.999))
	assert.Equal(t, PriorityLow, PriorityForScore(0))
}
