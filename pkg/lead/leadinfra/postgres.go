package leadinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
)

const leadColumns = `
	id, full_name, email, phone, post_applied_for, bio, source,
	status, priority, score, tasks,
	cv_base64, cv_file_name, next_follow_up, ai_summary, ai_score,
	created_at, updated_at`

// PostgresLeadRepository is the PostgreSQL implementation of lead.Repository.
type PostgresLeadRepository struct {
	db *sqlx.DB
}

// NewPostgresLeadRepository creates a new lead repository backed by Postgres.
func NewPostgresLeadRepository(db *sqlx.DB) lead.Repository {
	return &PostgresLeadRepository{
		db: db,
	}
}

// Create inserts a new lead.
func (r *PostgresLeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (
			id, full_name, email, phone, post_applied_for, bio, source,
			status, priority, score, tasks,
			cv_base64, cv_file_name, next_follow_up, ai_summary, ai_score,
			created_at, updated_at
		) VALUES (
			:id, :full_name, :email, :phone, :post_applied_for, :bio, :source,
			:status, :priority, :score, :tasks,
			:cv_base64, :cv_file_name, :next_follow_up, :ai_summary, :ai_score,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, l)
	if err != nil {
		return errx.Wrap(err, "failed to create lead", errx.TypeInternal).
			WithDetail("lead_id", l.ID.String())
	}

	return nil
}

// FindByID loads a single lead.
func (r *PostgresLeadRepository) FindByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads WHERE id = $1`

	var l lead.Lead
	err := r.db.GetContext(ctx, &l, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find lead by id", errx.TypeInternal).
			WithDetail("lead_id", id.String())
	}

	return &l, nil
}

// FindAll returns the whole collection, newest first.
func (r *PostgresLeadRepository) FindAll(ctx context.Context) ([]lead.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	var leads []lead.Lead
	err := r.db.SelectContext(ctx, &leads, query)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list leads", errx.TypeInternal)
	}

	if leads == nil {
		leads = []lead.Lead{}
	}
	return leads, nil
}

// Update applies the non-nil fields of the request and returns the updated
// row. updated_at is always bumped by the store.
func (r *PostgresLeadRepository) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateRequest) (*lead.Lead, error) {
	sets := []string{"updated_at = :updated_at"}
	args := map[string]any{
		"id":         id.String(),
		"updated_at": time.Now(),
	}

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = :%s", column, column))
		args[column] = value
	}

	if req.FullName != nil {
		addSet("full_name", *req.FullName)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.PostAppliedFor != nil {
		addSet("post_applied_for", *req.PostAppliedFor)
	}
	if req.Bio != nil {
		addSet("bio", *req.Bio)
	}
	if req.Source != nil {
		addSet("source", *req.Source)
	}
	if req.Status != nil {
		addSet("status", string(*req.Status))
	}
	if req.Priority != nil {
		addSet("priority", string(*req.Priority))
	}
	if req.Score != nil {
		addSet("score", *req.Score)
	}
	if req.Tasks != nil {
		addSet("tasks", *req.Tasks)
	}
	if req.NextFollowUp != nil {
		addSet("next_follow_up", *req.NextFollowUp)
	}

	query := `UPDATE leads SET ` + strings.Join(sets, ", ") + ` WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return nil, errx.Wrap(err, "failed to update lead", errx.TypeInternal).
			WithDetail("lead_id", id.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return nil, lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}

	return r.FindByID(ctx, id)
}

// Delete removes a lead.
func (r *PostgresLeadRepository) Delete(ctx context.Context, id kernel.LeadID) error {
	query := `DELETE FROM leads WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete lead", errx.TypeInternal).
			WithDetail("lead_id", id.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}

	return nil
}
