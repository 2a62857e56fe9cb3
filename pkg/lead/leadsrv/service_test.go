package leadsrv

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/ptrx"
)

// stubRepo is an in-memory lead.Repository with scriptable failures.
type stubRepo struct {
	mu         sync.Mutex
	leads      map[kernel.LeadID]lead.Lead
	order      []kernel.LeadID
	failUpdate map[kernel.LeadID]bool
	updateHook func()
}

func newStubRepo(seed ...lead.Lead) *stubRepo {
	r := &stubRepo{
		leads:      make(map[kernel.LeadID]lead.Lead),
		failUpdate: make(map[kernel.LeadID]bool),
	}
	for _, l := range seed {
		r.leads[l.ID] = l
		r.order = append(r.order, l.ID)
	}
	return r
}

func (r *stubRepo) Create(ctx context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[l.ID] = *l
	r.order = append(r.order, l.ID)
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, lead.ErrLeadNotFound()
	}
	return &l, nil
}

func (r *stubRepo) FindAll(ctx context.Context) ([]lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]lead.Lead, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.leads[r.order[i]])
	}
	return out, nil
}

func (r *stubRepo) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateRequest) (*lead.Lead, error) {
	if r.updateHook != nil {
		r.updateHook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failUpdate[id] {
		return nil, errors.New("store write refused")
	}

	l, ok := r.leads[id]
	if !ok {
		return nil, lead.ErrLeadNotFound()
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.Score != nil {
		l.Score = *req.Score
	}
	if req.Priority != nil {
		l.Priority = *req.Priority
	}
	if req.Tasks != nil {
		l.Tasks = *req.Tasks
	}
	l.UpdatedAt = time.Now()
	r.leads[id] = l
	return &l, nil
}

func (r *stubRepo) Delete(ctx context.Context, id kernel.LeadID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return lead.ErrLeadNotFound()
	}
	delete(r.leads, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// stubScorer returns a fixed verdict.
type stubScorer struct {
	analysis lead.CVAnalysis
	err      error
	calls    int
}

func (s *stubScorer) Score(ctx context.Context, cvBase64, fileName, role string) (lead.CVAnalysis, error) {
	s.calls++
	if s.err != nil {
		return lead.CVAnalysis{}, s.err
	}
	return s.analysis, nil
}

func seededLead(name string, status lead.Status) lead.Lead {
	return lead.Lead{
		ID:        kernel.NewLeadID(name),
		FullName:  name,
		Email:     name + "@email.lu",
		Phone:     "+352 600 000 000",
		Status:    status,
		Priority:  lead.PriorityLow,
		Tasks:     lead.TaskList{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func validSubmission() lead.SubmitRequest {
	return lead.SubmitRequest{
		FullName:       "Marie Kremer",
		Email:          "marie.kremer@email.lu",
		Phone:          "+352 621 555 123",
		PostAppliedFor: "Team Leader",
		Bio:            "Looking for a leadership role in field sales.",
		Source:         "Moovijob",
	}
}

// ============================================================================
// Submission
// ============================================================================

func TestSubmitRejectsMissingFields(t *testing.T) {
	svc := NewLeadService(newStubRepo(), nil, nil, 0)

	req := validSubmission()
	req.Email = "  "

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "email", e.Details["field"])
}

func TestSubmitWithoutCVUsesHeuristicScore(t *testing.T) {
	repo := newStubRepo()
	svc := NewLeadService(repo, nil, nil, 0)

	created, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	// Moovijob + Team Leader: 50 + 20 + 15.
	assert.Equal(t, 85.0, created.Score)
	assert.Equal(t, lead.PriorityHigh, created.Priority)
	assert.Equal(t, lead.StatusLead, created.Status)
	assert.Nil(t, created.AIScore)
	assert.False(t, created.ID.IsEmpty())

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Score, stored.Score)
}

func TestSubmitDefaultsBlankSourceToWebForm(t *testing.T) {
	svc := NewLeadService(newStubRepo(), nil, nil, 0)

	req := validSubmission()
	req.Source = "   "

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Web Form", created.Source)
	assert.Equal(t, 65.0, created.Score)
}

func TestSubmitBlendsCVAnalysis(t *testing.T) {
	scorer := &stubScorer{analysis: lead.CVAnalysis{Score: 100, Summary: "Excellent fit."}}
	svc := NewLeadService(newStubRepo(), scorer, nil, 0)

	req := validSubmission()
	req.CVBase64 = ptrx.String(base64.StdEncoding.EncodeToString([]byte("cv content")))
	req.CVFileName = ptrx.String("cv.pdf")

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, scorer.calls)
	require.NotNil(t, created.AIScore)
	assert.Equal(t, 100.0, *created.AIScore)
	require.NotNil(t, created.AISummary)
	assert.Equal(t, "Excellent fit.", *created.AISummary)
	// 85*0.4 + 100*0.6
	assert.InDelta(t, 94, created.Score, 0.001)
}

func TestSubmitAbsorbsScorerFailure(t *testing.T) {
	scorer := &stubScorer{err: errors.New("model unavailable")}
	svc := NewLeadService(newStubRepo(), scorer, nil, 0)

	req := validSubmission()
	req.CVBase64 = ptrx.String(base64.StdEncoding.EncodeToString([]byte("cv content")))

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, created.AIScore)
	assert.Equal(t, 0.0, *created.AIScore)
	require.NotNil(t, created.AISummary)
	assert.Equal(t, "AI analysis was unavailable for this document.", *created.AISummary)
	// Heuristic 85 dragged down by the zero verdict: 85*0.4.
	assert.InDelta(t, 34, created.Score, 0.001)
}

func TestSubmitRejectsOversizedCV(t *testing.T) {
	svc := NewLeadService(newStubRepo(), nil, nil, 0)

	big := make([]byte, lead.MaxCVSizeBytes+1)
	req := validSubmission()
	req.CVBase64 = ptrx.String(base64.StdEncoding.EncodeToString(big))

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, lead.CodeCVTooLarge, errx.Code(e.Code))
}

func TestSubmitRejectsMalformedCV(t *testing.T) {
	svc := NewLeadService(newStubRepo(), nil, nil, 0)

	req := validSubmission()
	req.CVBase64 = ptrx.String("not valid base64 !!!")

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
}

// ============================================================================
// Moves and Reconciliation
// ============================================================================

func TestMovePersistsStatusChange(t *testing.T) {
	seed := seededLead("Alexandre", lead.StatusLead)
	repo := newStubRepo(seed)
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	updated, err := svc.Move(context.Background(), seed.ID, lead.StatusInterviewing)
	require.NoError(t, err)
	assert.Equal(t, lead.StatusInterviewing, updated.Status)

	stored, err := repo.FindByID(context.Background(), seed.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.StatusInterviewing, stored.Status)
}

func TestMoveRejectsUnknownStatus(t *testing.T) {
	svc := NewLeadService(newStubRepo(), nil, nil, 0)

	_, err := svc.Move(context.Background(), kernel.NewLeadID("x"), lead.Status("Archived"))
	require.Error(t, err)
}

func TestMoveAppliesOptimisticallyBeforePersisting(t *testing.T) {
	seed := seededLead("Alexandre", lead.StatusLead)
	repo := newStubRepo(seed)
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	var observed lead.Status
	repo.updateHook = func() {
		for _, l := range svc.Snapshot() {
			if l.ID == seed.ID {
				observed = l.Status
			}
		}
	}

	_, err := svc.Move(context.Background(), seed.ID, lead.StatusFormation)
	require.NoError(t, err)

	// The working set already showed the new stage while the store write
	// was still in flight.
	assert.Equal(t, lead.StatusFormation, observed)
}

func TestMoveReconcilesWorkingSetWhenStoreFails(t *testing.T) {
	seed := seededLead("Alexandre", lead.StatusLead)
	repo := newStubRepo(seed)
	repo.failUpdate[seed.ID] = true
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.Move(context.Background(), seed.ID, lead.StatusRejected)
	require.Error(t, err)

	// The optimistic change was rolled back by reloading from the store.
	snapshot := svc.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, lead.StatusLead, snapshot[0].Status)
}

func TestMoveBatchAppliesAllBeforePersistingAny(t *testing.T) {
	a := seededLead("A", lead.StatusLead)
	b := seededLead("B", lead.StatusInterviewing)
	repo := newStubRepo(a, b)
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	var observed []lead.Status
	repo.updateHook = func() {
		if observed != nil {
			return
		}
		for _, l := range svc.Snapshot() {
			observed = append(observed, l.Status)
		}
	}

	err := svc.MoveBatch(context.Background(), []kernel.LeadID{a.ID, b.ID}, lead.StatusFormation)
	require.NoError(t, err)

	// Before the first store write, every lead in the batch already showed
	// the target stage.
	require.Len(t, observed, 2)
	for _, s := range observed {
		assert.Equal(t, lead.StatusFormation, s)
	}
}

func TestMoveBatchReconcilesOncePerFailure(t *testing.T) {
	a := seededLead("A", lead.StatusLead)
	b := seededLead("B", lead.StatusLead)
	repo := newStubRepo(a, b)
	repo.failUpdate[b.ID] = true
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	err := svc.MoveBatch(context.Background(), []kernel.LeadID{a.ID, b.ID}, lead.StatusRecruiter)
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{b.ID.String()}, e.Details["failed_ids"])

	// After reconciliation the surviving move is kept and the failed one
	// reverted.
	byID := map[kernel.LeadID]lead.Status{}
	for _, l := range svc.Snapshot() {
		byID[l.ID] = l.Status
	}
	assert.Equal(t, lead.StatusRecruiter, byID[a.ID])
	assert.Equal(t, lead.StatusLead, byID[b.ID])
}

// ============================================================================
// Queries and Edits
// ============================================================================

func TestListFiltersAndSorts(t *testing.T) {
	high := seededLead("High Performer", lead.StatusLead)
	high.Priority = lead.PriorityHigh
	high.CreatedAt = time.Now().Add(-48 * time.Hour)
	fresh := seededLead("Fresh Applicant", lead.StatusLead)
	fresh.CreatedAt = time.Now()

	svc := NewLeadService(newStubRepo(fresh, high), nil, nil, 0)

	all, err := svc.List(context.Background(), lead.Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "High Performer", all[0].FullName)

	filtered, err := svc.List(context.Background(), lead.Query{Search: "fresh"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Fresh Applicant", filtered[0].FullName)
}

func TestUpdateNeverRecomputesScore(t *testing.T) {
	seed := seededLead("Alexandre", lead.StatusLead)
	seed.Score = 85
	seed.Priority = lead.PriorityHigh
	repo := newStubRepo(seed)
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	// A manual score override passes through untouched.
	updated, err := svc.Update(context.Background(), seed.ID, lead.UpdateRequest{Score: ptrx.Float64(12)})
	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Score)
	assert.Equal(t, lead.PriorityHigh, updated.Priority)

	snapshot := svc.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, 12.0, snapshot[0].Score)
}

func TestTaskLifecycle(t *testing.T) {
	seed := seededLead("Alexandre", lead.StatusLead)
	repo := newStubRepo(seed)
	svc := NewLeadService(repo, nil, nil, 0)

	withTask, err := svc.AddTask(context.Background(), seed.ID, "Check reference letters")
	require.NoError(t, err)
	require.Len(t, withTask.Tasks, 1)
	assert.Equal(t, "Check reference letters", withTask.Tasks[0].Text)
	assert.False(t, withTask.Tasks[0].IsCompleted)

	toggled, err := svc.ToggleTask(context.Background(), seed.ID, withTask.Tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.Tasks[0].IsCompleted)

	removed, err := svc.RemoveTask(context.Background(), seed.ID, withTask.Tasks[0].ID)
	require.NoError(t, err)
	assert.Empty(t, removed.Tasks)

	_, err = svc.ToggleTask(context.Background(), seed.ID, kernel.NewTaskID("missing"))
	require.Error(t, err)
}

func TestDeleteBatchReportsFailures(t *testing.T) {
	a := seededLead("A", lead.StatusLead)
	repo := newStubRepo(a)
	svc := NewLeadService(repo, nil, nil, 0)
	require.NoError(t, svc.Refresh(context.Background()))

	err := svc.DeleteBatch(context.Background(), []kernel.LeadID{a.ID, kernel.NewLeadID("ghost")})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"ghost"}, e.Details["failed_ids"])

	assert.Empty(t, svc.Snapshot())
}
