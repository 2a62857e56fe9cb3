package lead

import (
	"context"

	"github.com/somGabriel/Proago/pkg/kernel"
)

// Repository persists the lead collection. FindAll returns leads newest
// first; Update applies only the non-nil fields of the request.
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	FindByID(ctx context.Context, id kernel.LeadID) (*Lead, error)
	FindAll(ctx context.Context) ([]Lead, error)
	Update(ctx context.Context, id kernel.LeadID, req UpdateRequest) (*Lead, error)
	Delete(ctx context.Context, id kernel.LeadID) error
}

// CVAnalysis is the outcome of scoring a CV document against a role.
type CVAnalysis struct {
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// CVScorer evaluates a base64-encoded CV document for suitability for a
// position. Implementations must respect ctx cancellation.
type CVScorer interface {
	Score(ctx context.Context, cvBase64, fileName, role string) (CVAnalysis, error)
}
