package leadsrv

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/fsx"
	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/logx"
	"github.com/somGabriel/Proago/pkg/ptrx"
)

// defaultSource is assigned when a submission does not carry a channel.
const defaultSource = "Web Form"

// LeadService owns the pipeline working set. It keeps an in-memory view of
// the collection so recruiter actions render immediately; the store is the
// source of truth and the view is reconciled from it whenever a write fails.
type LeadService struct {
	repo         lead.Repository
	scorer       lead.CVScorer
	files        fsx.FileSystem
	scoreTimeout time.Duration

	mu    sync.Mutex
	cache []lead.Lead
	ready bool
}

// NewLeadService creates the pipeline service. scorer and files may be nil;
// submissions then skip AI analysis and CV archiving respectively.
func NewLeadService(repo lead.Repository, scorer lead.CVScorer, files fsx.FileSystem, scoreTimeout time.Duration) *LeadService {
	if scoreTimeout <= 0 {
		scoreTimeout = 20 * time.Second
	}
	return &LeadService{
		repo:         repo,
		scorer:       scorer,
		files:        files,
		scoreTimeout: scoreTimeout,
	}
}

// ============================================================================
// Submission
// ============================================================================

// Submit validates and ingests a public application. The heuristic score is
// computed exactly once here; later edits never recompute it.
func (s *LeadService) Submit(ctx context.Context, req lead.SubmitRequest) (*lead.Lead, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultSource
	}

	var aiScore *float64
	var aiSummary *string
	if req.CVBase64 != nil && *req.CVBase64 != "" {
		if err := validateCV(*req.CVBase64); err != nil {
			return nil, err
		}
		if s.scorer != nil {
			analysis := s.analyzeCV(ctx, req)
			aiScore = ptrx.Float64(analysis.Score)
			aiSummary = ptrx.String(analysis.Summary)
		}
	}

	score, priority := lead.CalculateScore(source, req.PostAppliedFor, aiScore)

	now := time.Now()
	entity := &lead.Lead{
		ID:             kernel.NewLeadID(uuid.NewString()),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		PostAppliedFor: req.PostAppliedFor,
		Bio:            req.Bio,
		Source:         source,
		Status:         lead.StatusLead,
		Priority:       priority,
		Score:          score,
		Tasks:          lead.TaskList{},
		CVBase64:       req.CVBase64,
		CVFileName:     req.CVFileName,
		AIScore:        aiScore,
		AISummary:      aiSummary,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, errx.Wrap(err, "failed to create lead", errx.TypeExternal)
	}

	s.archiveCV(ctx, entity)

	s.mu.Lock()
	if s.ready {
		s.cache = append([]lead.Lead{*entity}, s.cache...)
	}
	s.mu.Unlock()

	return entity, nil
}

// analyzeCV runs the scorer under its own deadline. Scorer failures are
// absorbed upstream; by the time this returns, the analysis is final.
func (s *LeadService) analyzeCV(ctx context.Context, req lead.SubmitRequest) lead.CVAnalysis {
	scoreCtx, cancel := context.WithTimeout(ctx, s.scoreTimeout)
	defer cancel()

	fileName := ptrx.StringValue(req.CVFileName)
	analysis, err := s.scorer.Score(scoreCtx, *req.CVBase64, fileName, req.PostAppliedFor)
	if err != nil {
		logx.WithFields(logx.Fields{"error": err.Error()}).Warnf("cv analysis failed")
		return lead.CVAnalysis{Score: 0, Summary: "AI analysis was unavailable for this document."}
	}
	return analysis
}

// archiveCV copies the uploaded document into object storage, best effort.
// Archival failures never fail a submission.
func (s *LeadService) archiveCV(ctx context.Context, entity *lead.Lead) {
	if s.files == nil || !entity.HasCV() {
		return
	}

	data, err := decodeCV(*entity.CVBase64)
	if err != nil {
		return
	}

	key := "cv/" + entity.ID.String()
	if entity.CVFileName != nil && *entity.CVFileName != "" {
		key += "/" + *entity.CVFileName
	}
	if err := s.files.Write(ctx, key, data, "application/octet-stream"); err != nil {
		logx.WithFields(logx.Fields{
			"lead_id": entity.ID.String(),
			"error":   err.Error(),
		}).Warnf("cv archive failed")
	}
}

func validateSubmission(req lead.SubmitRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", req.FullName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"post_applied_for", req.PostAppliedFor},
		{"bio", req.Bio},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return lead.ErrMissingField(f.name)
		}
	}
	return nil
}

func validateCV(encoded string) error {
	data, err := decodeCV(encoded)
	if err != nil {
		return lead.ErrInvalidCV()
	}
	if len(data) > lead.MaxCVSizeBytes {
		return lead.ErrCVTooLarge()
	}
	return nil
}

// decodeCV accepts both raw base64 payloads and data URLs.
func decodeCV(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// ============================================================================
// Queries
// ============================================================================

// Refresh reloads the working set from the store.
func (s *LeadService) Refresh(ctx context.Context) error {
	leads, err := s.repo.FindAll(ctx)
	if err != nil {
		return errx.Wrap(err, "failed to load leads", errx.TypeExternal)
	}

	s.mu.Lock()
	s.cache = leads
	s.ready = true
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current working set without touching the
// store. It reflects optimistic updates that may not have been persisted yet.
func (s *LeadService) Snapshot() []lead.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lead.Lead, len(s.cache))
	copy(out, s.cache)
	return out
}

func (s *LeadService) workingSet(ctx context.Context) ([]lead.Lead, error) {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()

	if !ready {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.Snapshot(), nil
}

// List returns the filtered, display-ordered collection.
func (s *LeadService) List(ctx context.Context, q lead.Query) ([]lead.Lead, error) {
	leads, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}
	return lead.SortForPipeline(lead.Filter(leads, q)), nil
}

// BoardView projects the filtered, ordered collection onto the pipeline
// columns.
func (s *LeadService) BoardView(ctx context.Context, q lead.Query) (lead.Board, error) {
	leads, err := s.List(ctx, q)
	if err != nil {
		return lead.Board{}, err
	}
	return lead.GroupByStatus(leads), nil
}

// Get returns a single lead by id.
func (s *LeadService) Get(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lead.ErrLeadNotFound()
	}
	return entity, nil
}

// ============================================================================
// Pipeline Moves
// ============================================================================

// Move changes the stage of a lead. The working set is updated before the
// store write so the board reflects the move immediately; if the write fails,
// the whole working set is reloaded from the store.
func (s *LeadService) Move(ctx context.Context, id kernel.LeadID, status lead.Status) (*lead.Lead, error) {
	if !status.IsValid() {
		return nil, lead.ErrInvalidStatus().WithDetail("status", string(status))
	}

	if _, err := s.workingSet(ctx); err != nil {
		return nil, err
	}

	if !s.applyStatus(id, status) {
		return nil, lead.ErrLeadNotFound()
	}

	updated, err := s.repo.Update(ctx, id, lead.UpdateRequest{Status: &status})
	if err != nil {
		s.reconcile(ctx)
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, lead.ErrStoreFailure().WithError(err)
	}
	return updated, nil
}

// MoveBatch moves several leads to the same stage. Every move is applied to
// the working set first, then persisted independently; a single reload
// reconciles the set when any write fails.
func (s *LeadService) MoveBatch(ctx context.Context, ids []kernel.LeadID, status lead.Status) error {
	if !status.IsValid() {
		return lead.ErrInvalidStatus().WithDetail("status", string(status))
	}

	if _, err := s.workingSet(ctx); err != nil {
		return err
	}

	for _, id := range ids {
		s.applyStatus(id, status)
	}

	var failed []string
	for _, id := range ids {
		if _, err := s.repo.Update(ctx, id, lead.UpdateRequest{Status: &status}); err != nil {
			logx.WithFields(logx.Fields{
				"lead_id": id.String(),
				"error":   err.Error(),
			}).Warnf("batch move failed for lead")
			failed = append(failed, id.String())
		}
	}

	if len(failed) > 0 {
		s.reconcile(ctx)
		return lead.ErrStoreFailure().WithDetail("failed_ids", failed)
	}
	return nil
}

// applyStatus mutates the working set only. Reports whether the lead exists.
func (s *LeadService) applyStatus(id kernel.LeadID, status lead.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cache {
		if s.cache[i].ID == id {
			s.cache[i].Status = status
			s.cache[i].UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

func (s *LeadService) reconcile(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		logx.WithFields(logx.Fields{"error": err.Error()}).Errorf("reconcile reload failed")
	}
}

// ============================================================================
// Edits
// ============================================================================

// Update applies a partial edit. Score and priority pass through verbatim
// when present; nothing here recomputes them.
func (s *LeadService) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateRequest) (*lead.Lead, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, lead.ErrInvalidStatus().WithDetail("status", string(*req.Status))
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, lead.ErrStoreFailure().WithError(err)
	}

	s.replaceInCache(*updated)
	return updated, nil
}

// AddTask appends a follow-up task to a lead.
func (s *LeadService) AddTask(ctx context.Context, id kernel.LeadID, text string) (*lead.Lead, error) {
	if strings.TrimSpace(text) == "" {
		return nil, lead.ErrMissingField("text")
	}

	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks := append(lead.TaskList{}, entity.Tasks...)
	tasks = append(tasks, lead.Task{
		ID:        kernel.NewTaskID(uuid.NewString()),
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	})
	return s.Update(ctx, id, lead.UpdateRequest{Tasks: &tasks})
}

// ToggleTask flips the completion flag of one task.
func (s *LeadService) ToggleTask(ctx context.Context, id kernel.LeadID, taskID kernel.TaskID) (*lead.Lead, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := entity.FindTask(taskID)
	if idx < 0 {
		return nil, lead.ErrTaskNotFound()
	}

	tasks := append(lead.TaskList{}, entity.Tasks...)
	tasks[idx].IsCompleted = !tasks[idx].IsCompleted
	return s.Update(ctx, id, lead.UpdateRequest{Tasks: &tasks})
}

// RemoveTask deletes one task from a lead.
func (s *LeadService) RemoveTask(ctx context.Context, id kernel.LeadID, taskID kernel.TaskID) (*lead.Lead, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := entity.FindTask(taskID)
	if idx < 0 {
		return nil, lead.ErrTaskNotFound()
	}

	tasks := append(lead.TaskList{}, entity.Tasks[:idx]...)
	tasks = append(tasks, entity.Tasks[idx+1:]...)
	return s.Update(ctx, id, lead.UpdateRequest{Tasks: &tasks})
}

// Delete removes a lead from the store and the working set.
func (s *LeadService) Delete(ctx context.Context, id kernel.LeadID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return err
		}
		return lead.ErrStoreFailure().WithError(err)
	}

	s.mu.Lock()
	for i := range s.cache {
		if s.cache[i].ID == id {
			s.cache = append(s.cache[:i], s.cache[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// DeleteBatch removes several leads. Each delete is independent; a single
// reload reconciles the set when any of them fails.
func (s *LeadService) DeleteBatch(ctx context.Context, ids []kernel.LeadID) error {
	var failed []string
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			failed = append(failed, id.String())
		}
	}
	if len(failed) > 0 {
		s.reconcile(ctx)
		return lead.ErrStoreFailure().WithDetail("failed_ids", failed)
	}
	return nil
}

func (s *LeadService) replaceInCache(updated lead.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cache {
		if s.cache[i].ID == updated.ID {
			s.cache[i] = updated
			return
		}
	}
}
