package leadinfra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/ptrx"
)

func TestSeededRepositoryContainsDemoPipeline(t *testing.T) {
	repo := NewSeededMemoryLeadRepository()

	leads, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	// Newest first: Wagner applied four hours ago, Dubois two days ago.
	assert.Equal(t, "Sarah Wagner", leads[0].FullName)
	assert.Equal(t, "Alexandre Dubois", leads[1].FullName)

	dubois := leads[1]
	assert.Equal(t, lead.StatusInterviewing, dubois.Status)
	assert.Equal(t, lead.PriorityHigh, dubois.Priority)
	assert.Equal(t, 85.0, dubois.Score)
	require.Len(t, dubois.Tasks, 1)
	assert.Equal(t, "Check reference letters", dubois.Tasks[0].Text)

	wagner := leads[0]
	assert.Equal(t, lead.StatusLead, wagner.Status)
	assert.Equal(t, lead.PriorityMedium, wagner.Priority)
	assert.Equal(t, 72.0, wagner.Score)
}

func TestMemoryRepositoryCRUD(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	entity := &lead.Lead{
		ID:        kernel.NewLeadID("lead-1"),
		FullName:  "Marie Kremer",
		Email:     "marie@email.lu",
		Status:    lead.StatusLead,
		Priority:  lead.PriorityLow,
		Tasks:     lead.TaskList{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, entity))

	loaded, err := repo.FindByID(ctx, entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marie Kremer", loaded.FullName)

	status := lead.StatusFormation
	updated, err := repo.Update(ctx, entity.ID, lead.UpdateRequest{
		Status: &status,
		Score:  ptrx.Float64(44),
	})
	require.NoError(t, err)
	assert.Equal(t, lead.StatusFormation, updated.Status)
	assert.Equal(t, 44.0, updated.Score)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Marie Kremer", updated.FullName)

	require.NoError(t, repo.Delete(ctx, entity.ID))

	_, err = repo.FindByID(ctx, entity.ID)
	require.Error(t, err)

	err = repo.Delete(ctx, entity.ID)
	require.Error(t, err)
}

func TestMemoryRepositoryFindAllOrdersNewestFirst(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	now := time.Now()
	for i, name := range []string{"Oldest", "Middle", "Newest"} {
		require.NoError(t, repo.Create(ctx, &lead.Lead{
			ID:        kernel.NewLeadID(name),
			FullName:  name,
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}))
	}

	leads, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, "Newest", leads[0].FullName)
	assert.Equal(t, "Oldest", leads[2].FullName)
}
