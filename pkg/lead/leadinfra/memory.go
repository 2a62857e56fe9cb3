package leadinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/ptrx"
)

// MemoryLeadRepository is an in-process implementation of lead.Repository.
// It backs demo deployments and environments without a database.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads map[kernel.LeadID]lead.Lead
}

// NewMemoryLeadRepository creates an empty in-memory repository.
func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{
		leads: make(map[kernel.LeadID]lead.Lead),
	}
}

// NewSeededMemoryLeadRepository creates an in-memory repository pre-loaded
// with the demo pipeline.
func NewSeededMemoryLeadRepository() *MemoryLeadRepository {
	repo := NewMemoryLeadRepository()
	now := time.Now()

	dubois := lead.Lead{
		ID:             kernel.NewLeadID(uuid.NewString()),
		FullName:       "Alexandre Dubois",
		Email:          "alex.dubois@email.lu",
		Phone:          "+352 621 123 456",
		PostAppliedFor: "Team Leader",
		Bio:            "Experienced sales professional with five years leading door-to-door campaigns across Luxembourg.",
		Source:         "Moovijob",
		Status:         lead.StatusInterviewing,
		Priority:       lead.PriorityHigh,
		Score:          85,
		AIScore:        ptrx.Float64(88),
		AISummary:      ptrx.String("Strong leadership background and a consistent sales track record. Well suited for a team lead role."),
		Tasks: lead.TaskList{
			{
				ID:        kernel.NewTaskID(uuid.NewString()),
				Text:      "Check reference letters",
				CreatedAt: now.Add(-48 * time.Hour),
			},
		},
		CreatedAt: now.Add(-48 * time.Hour),
		UpdatedAt: now.Add(-48 * time.Hour),
	}

	wagner := lead.Lead{
		ID:             kernel.NewLeadID(uuid.NewString()),
		FullName:       "Sarah Wagner",
		Email:          "sarah.wagner@email.lu",
		Phone:          "+352 691 987 654",
		PostAppliedFor: "Promoter / Brand Ambassador",
		Bio:            "Marketing student looking for field experience, comfortable approaching people at events.",
		Source:         "LinkedIn",
		Status:         lead.StatusLead,
		Priority:       lead.PriorityMedium,
		Score:          72,
		AIScore:        ptrx.Float64(65),
		AISummary:      ptrx.String("Motivated junior profile, limited field experience but good communication skills."),
		Tasks:          lead.TaskList{},
		CreatedAt:      now.Add(-4 * time.Hour),
		UpdatedAt:      now.Add(-4 * time.Hour),
	}

	repo.leads[dubois.ID] = dubois
	repo.leads[wagner.ID] = wagner
	return repo
}

// Create inserts a new lead.
func (r *MemoryLeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[l.ID] = *l
	return nil
}

// FindByID loads a single lead.
func (r *MemoryLeadRepository) FindByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}
	return &l, nil
}

// FindAll returns the collection, newest first.
func (r *MemoryLeadRepository) FindAll(ctx context.Context) ([]lead.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lead.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies the non-nil fields of the request.
func (r *MemoryLeadRepository) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateRequest) (*lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}

	if req.FullName != nil {
		l.FullName = *req.FullName
	}
	if req.Email != nil {
		l.Email = *req.Email
	}
	if req.Phone != nil {
		l.Phone = *req.Phone
	}
	if req.PostAppliedFor != nil {
		l.PostAppliedFor = *req.PostAppliedFor
	}
	if req.Bio != nil {
		l.Bio = *req.Bio
	}
	if req.Source != nil {
		l.Source = *req.Source
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.Priority != nil {
		l.Priority = *req.Priority
	}
	if req.Score != nil {
		l.Score = *req.Score
	}
	if req.Tasks != nil {
		l.Tasks = append(lead.TaskList{}, *req.Tasks...)
	}
	if req.NextFollowUp != nil {
		l.NextFollowUp = req.NextFollowUp
	}
	l.UpdatedAt = time.Now()

	r.leads[id] = l
	return &l, nil
}

// Delete removes a lead.
func (r *MemoryLeadRepository) Delete(ctx context.Context, id kernel.LeadID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}
	delete(r.leads, id)
	return nil
}
