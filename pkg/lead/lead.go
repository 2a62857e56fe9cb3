package lead

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/kernel"
)

// ============================================================================
// Lead Entity
// ============================================================================

// Status is the pipeline stage of a lead. Stages are totally ordered for
// display, but a lead may move between any two stages; Rejected is the
// conventional sink, not a terminal state.
type Status string

const (
	StatusLead         Status = "Lead"
	StatusInterviewing Status = "Interviewing"
	StatusFormation    Status = "Formation"
	StatusRecruiter    Status = "Recruiter"
	StatusRejected     Status = "Rejected"
)

// PipelineStatuses lists the five stages in board order.
var PipelineStatuses = []Status{
	StatusLead,
	StatusInterviewing,
	StatusFormation,
	StatusRecruiter,
	StatusRejected,
}

// IsValid reports whether s is a member of the pipeline.
func (s Status) IsValid() bool {
	switch s {
	case StatusLead, StatusInterviewing, StatusFormation, StatusRecruiter, StatusRejected:
		return true
	}
	return false
}

// Priority is the coarse ranking bucket derived from the score.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Task is a follow-up item owned by its parent lead. Tasks have no
// independent lifecycle; they are created and removed through lead edits.
type Task struct {
	ID          kernel.TaskID `json:"id"`
	Text        string        `json:"text"`
	IsCompleted bool          `json:"is_completed"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TaskList serializes the tasks of a lead as a single JSONB column.
type TaskList []Task

// Value implements driver.Valuer.
func (t TaskList) Value() (driver.Value, error) {
	if t == nil {
		t = TaskList{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *TaskList) Scan(src any) error {
	if src == nil {
		*t = TaskList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TaskList", src)
	}
	if len(data) == 0 {
		*t = TaskList{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// Lead is a candidate application moving through the recruitment pipeline.
// Identity and submission fields are immutable after creation; status,
// priority, score, tasks and follow-up data are mutated by recruiter actions.
type Lead struct {
	ID             kernel.LeadID `db:"id" json:"id"`
	FullName       string        `db:"full_name" json:"full_name"`
	Email          string        `db:"email" json:"email"`
	Phone          string        `db:"phone" json:"phone"`
	PostAppliedFor string        `db:"post_applied_for" json:"post_applied_for"`
	Bio            string        `db:"bio" json:"bio"`
	Source         string        `db:"source" json:"source"`

	Status   Status   `db:"status" json:"status"`
	Priority Priority `db:"priority" json:"priority"`
	Score    float64  `db:"score" json:"score"`
	Tasks    TaskList `db:"tasks" json:"tasks"`

	CVBase64     *string    `db:"cv_base64" json:"cv_base64,omitempty"`
	CVFileName   *string    `db:"cv_file_name" json:"cv_file_name,omitempty"`
	NextFollowUp *time.Time `db:"next_follow_up" json:"next_follow_up,omitempty"`
	AISummary    *string    `db:"ai_summary" json:"ai_summary,omitempty"`
	AIScore      *float64   `db:"ai_score" json:"ai_score,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasCV reports whether a CV document was attached at submission.
func (l *Lead) HasCV() bool {
	return l.CVBase64 != nil && *l.CVBase64 != ""
}

// FindTask returns the index of the task with the given id, or -1.
func (l *Lead) FindTask(id kernel.TaskID) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ============================================================================
// Service DTOs
// ============================================================================

// MaxCVSizeBytes caps the decoded size of an uploaded CV document.
const MaxCVSizeBytes = 5 * 1024 * 1024

// SubmitRequest is the public submission form payload.
type SubmitRequest struct {
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	PostAppliedFor string  `json:"post_applied_for"`
	Bio            string  `json:"bio"`
	Source         string  `json:"source"`
	CVBase64       *string `json:"cv_base64,omitempty"`
	CVFileName     *string `json:"cv_file_name,omitempty"`
}

// UpdateRequest carries a partial edit of a lead. Nil fields are left
// untouched. Score and priority are edited independently of each other:
// manual edits never trigger a recompute, so recruiter overrides survive.
type UpdateRequest struct {
	FullName       *string    `json:"full_name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	PostAppliedFor *string    `json:"post_applied_for,omitempty"`
	Bio            *string    `json:"bio,omitempty"`
	Source         *string    `json:"source,omitempty"`
	Status         *Status    `json:"status,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
	Score          *float64   `json:"score,omitempty"`
	Tasks          *TaskList  `json:"tasks,omitempty"`
	NextFollowUp   *time.Time `json:"next_follow_up,omitempty"`
}

// Board groups the filtered and sorted collection into the five fixed
// pipeline buckets. Every lead appears in exactly one bucket.
type Board struct {
	Columns map[Status][]Lead `json:"columns"`
	Total   int               `json:"total"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("LEAD")

var (
	CodeLeadNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Lead not found")
	CodeInvalidStatus = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown pipeline status")
	CodeMissingField  = ErrRegistry.Register("MISSING_FIELD", errx.TypeValidation, http.StatusBadRequest, "Required field missing")
	CodeCVTooLarge    = ErrRegistry.Register("CV_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds 5MB limit")
	CodeInvalidCV     = ErrRegistry.Register("INVALID_CV", errx.TypeValidation, http.StatusBadRequest, "CV document is not valid base64 data")
	CodeTaskNotFound  = ErrRegistry.Register("TASK_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Task not found on lead")
	CodeStoreFailure  = ErrRegistry.Register("STORE_FAILURE", errx.TypeExternal, http.StatusBadGateway, "Lead store operation failed")
)

func ErrLeadNotFound() *errx.Error {
	return ErrRegistry.New(CodeLeadNotFound)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrMissingField(field string) *errx.Error {
	return ErrRegistry.New(CodeMissingField).WithDetail("field", field)
}

func ErrCVTooLarge() *errx.Error {
	return ErrRegistry.New(CodeCVTooLarge)
}

func ErrInvalidCV() *errx.Error {
	return ErrRegistry.New(CodeInvalidCV)
}

func ErrTaskNotFound() *errx.Error {
	return ErrRegistry.New(CodeTaskNotFound)
}

func ErrStoreFailure() *errx.Error {
	return ErrRegistry.New(CodeStoreFailure)
}
