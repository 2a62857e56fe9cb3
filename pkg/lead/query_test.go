package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somGabriel/Proago/pkg/kernel"
)

func testLead(name, email, post string, priority Priority, status Status, age time.Duration) Lead {
	return Lead{
		ID:             kernel.NewLeadID(name),
		FullName:       name,
		Email:          email,
		PostAppliedFor: post,
		Priority:       priority,
		Status:         status,
		CreatedAt:      time.Now().Add(-age),
	}
}

func TestFilterMatchesCaseInsensitively(t *testing.T) {
	leads := []Lead{
		testLead("Alexandre Dubois", "alex.dubois@email.lu", "Team Leader", PriorityHigh, StatusInterviewing, time.Hour),
		testLead("Sarah Wagner", "sarah.wagner@email.lu", "Promoter / Brand Ambassador", PriorityMedium, StatusLead, time.Minute),
	}

	byName := Filter(leads, Query{Search: "dub"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Alexandre Dubois", byName[0].FullName)

	byEmail := Filter(leads, Query{Search: "WAGNER@EMAIL"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Sarah Wagner", byEmail[0].FullName)

	byPost := Filter(leads, Query{Search: "ambassador"})
	require.Len(t, byPost, 1)
	assert.Equal(t, "Sarah Wagner", byPost[0].FullName)

	assert.Empty(t, Filter(leads, Query{Search: "nobody"}))
}

func TestFilterBlankTermKeepsEverything(t *testing.T) {
	leads := []Lead{
		testLead("A", "a@x", "Team Leader", PriorityLow, StatusLead, time.Hour),
		testLead("B", "b@x", "Team Leader", PriorityLow, StatusLead, time.Minute),
	}
	assert.Len(t, Filter(leads, Query{Search: "   "}), 2)
	assert.Len(t, Filter(leads, Query{}), 2)
}

func TestSortForPipelineHighPriorityFirstThenNewest(t *testing.T) {
	old := testLead("Old High", "o@x", "Team Leader", PriorityHigh, StatusLead, 72*time.Hour)
	newest := testLead("Fresh Low", "f@x", "Team Leader", PriorityLow, StatusLead, time.Minute)
	mid := testLead("Mid Medium", "m@x", "Team Leader", PriorityMedium, StatusLead, time.Hour)
	newHigh := testLead("Fresh High", "n@x", "Team Leader", PriorityHigh, StatusLead, 10*time.Minute)

	sorted := SortForPipeline([]Lead{newest, old, mid, newHigh})

	require.Len(t, sorted, 4)
	assert.Equal(t, "Fresh High", sorted[0].FullName)
	assert.Equal(t, "Old High", sorted[1].FullName)
	assert.Equal(t, "Fresh Low", sorted[2].FullName)
	assert.Equal(t, "Mid Medium", sorted[3].FullName)
}

func TestSortForPipelineIsStableAndNonDestructive(t *testing.T) {
	at := time.Now()
	a := testLead("A", "a@x", "Team Leader", PriorityMedium, StatusLead, 0)
	b := testLead("B", "b@x", "Team Leader", PriorityMedium, StatusLead, 0)
	a.CreatedAt = at
	b.CreatedAt = at

	input := []Lead{a, b}
	sorted := SortForPipeline(input)

	assert.Equal(t, "A", sorted[0].FullName)
	assert.Equal(t, "B", sorted[1].FullName)

	// Input order untouched.
	assert.Equal(t, "A", input[0].FullName)
	assert.Equal(t, "B", input[1].FullName)
}

func TestGroupByStatusAlwaysHasAllColumns(t *testing.T) {
	board := GroupByStatus(nil)
	assert.Equal(t, 0, board.Total)
	require.Len(t, board.Columns, len(PipelineStatuses))
	for _, s := range PipelineStatuses {
		assert.NotNil(t, board.Columns[s])
		assert.Empty(t, board.Columns[s])
	}
}

func TestGroupByStatusPartitionsLeads(t *testing.T) {
	leads := []Lead{
		testLead("A", "a@x", "Team Leader", PriorityHigh, StatusInterviewing, time.Hour),
		testLead("B", "b@x", "Team Leader", PriorityLow, StatusLead, time.Minute),
		testLead("C", "c@x", "Team Leader", PriorityLow, StatusInterviewing, time.Minute),
	}

	board := GroupByStatus(leads)

	assert.Equal(t, 3, board.Total)
	assert.Len(t, board.Columns[StatusInterviewing], 2)
	assert.Len(t, board.Columns[StatusLead], 1)
	assert.Empty(t, board.Columns[StatusRejected])

	total := 0
	for _, col := range board.Columns {
		total += len(col)
	}
	assert.Equal(t, board.Total, total)
}
