package leadinfra

import (
	"context"

	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/logx"
)

// FallbackLeadRepository reads through a primary store and falls back to a
// secondary one when the primary is unreachable. Writes that succeed on the
// fallback keep the demo usable while the primary is down; they are not
// replayed.
type FallbackLeadRepository struct {
	primary  lead.Repository
	fallback lead.Repository
}

// NewFallbackLeadRepository wires a primary repository with a fallback.
func NewFallbackLeadRepository(primary, fallback lead.Repository) lead.Repository {
	return &FallbackLeadRepository{
		primary:  primary,
		fallback: fallback,
	}
}

func (r *FallbackLeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	err := r.primary.Create(ctx, l)
	if err == nil {
		return nil
	}
	logx.WithFields(logx.Fields{"error": err.Error()}).Warnf("primary lead store create failed, using fallback")
	return r.fallback.Create(ctx, l)
}

func (r *FallbackLeadRepository) FindByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	l, err := r.primary.FindByID(ctx, id)
	if err == nil {
		return l, nil
	}
	return r.fallback.FindByID(ctx, id)
}

func (r *FallbackLeadRepository) FindAll(ctx context.Context) ([]lead.Lead, error) {
	leads, err := r.primary.FindAll(ctx)
	if err == nil {
		return leads, nil
	}
	logx.WithFields(logx.Fields{"error": err.Error()}).Warnf("primary lead store list failed, using fallback")
	return r.fallback.FindAll(ctx)
}

func (r *FallbackLeadRepository) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateRequest) (*lead.Lead, error) {
	l, err := r.primary.Update(ctx, id, req)
	if err == nil {
		return l, nil
	}
	logx.WithFields(logx.Fields{"error": err.Error()}).Warnf("primary lead store update failed, using fallback")
	return r.fallback.Update(ctx, id, req)
}

func (r *FallbackLeadRepository) Delete(ctx context.Context, id kernel.LeadID) error {
	err := r.primary.Delete(ctx, id)
	if err == nil {
		return nil
	}
	logx.WithFields(logx.Fields{"error": err.Error()}).Warnf("primary lead store delete failed, using fallback")
	return r.fallback.Delete(ctx, id)
}
