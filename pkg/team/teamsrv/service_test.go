package teamsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somGabriel/Proago/pkg/team"
)

func TestManagerOverviewAggregatesFinances(t *testing.T) {
	svc := NewTeamService()

	overview := svc.ManagerOverview()

	require.Len(t, overview.Finances.Months, 3)
	assert.Equal(t, 145000.0, overview.Finances.TotalRevenue)
	assert.Equal(t, 101000.0, overview.Finances.TotalCost)
	assert.Equal(t, 44000.0, overview.Finances.Profit)
	assert.Len(t, overview.Workers, 4)
}

func TestAddFinanceEntryExtendsOverview(t *testing.T) {
	svc := NewTeamService()

	finances, err := svc.AddFinanceEntry(team.AddFinanceRequest{
		Month:    "Nov",
		Revenue:  50000,
		Expenses: 30000,
	})
	require.NoError(t, err)

	require.Len(t, finances.Months, 4)
	assert.Equal(t, "Nov", finances.Months[3].Month)
	assert.Equal(t, 195000.0, finances.TotalRevenue)
	assert.Equal(t, 64000.0, finances.Profit)
}

func TestAddFinanceEntryValidatesInput(t *testing.T) {
	svc := NewTeamService()

	_, err := svc.AddFinanceEntry(team.AddFinanceRequest{Month: "", Revenue: 10, Expenses: 10})
	require.Error(t, err)

	_, err = svc.AddFinanceEntry(team.AddFinanceRequest{Month: "Nov", Revenue: 0, Expenses: 10})
	require.Error(t, err)

	// Failed entries leave the dataset unchanged.
	assert.Len(t, svc.ManagerOverview().Finances.Months, 3)
}

func TestRecruiterRosterAndSessions(t *testing.T) {
	svc := NewTeamService()

	recruiters := svc.Recruiters()
	require.Len(t, recruiters, 3)
	assert.Equal(t, "ACTIVE", recruiters[0].Status)
	assert.Equal(t, 154, recruiters[0].Stats.TotalSales)

	sessions := svc.FormationSessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "Pitch Fundamentals", sessions[0].Title)
	assert.Contains(t, sessions[0].Participants, recruiters[0].ID)
}

func TestWorkerWeekShape(t *testing.T) {
	svc := NewTeamService()

	week := svc.WorkerWeek()

	require.Len(t, week.Week, 7)
	assert.Equal(t, "Mon", week.Week[0].Day)
	assert.Equal(t, "Rest", week.Week[6].Status)
	assert.Len(t, week.Shifts, 3)
	assert.Len(t, week.Leaderboard, 4)
	assert.Equal(t, 1, week.Leaderboard[0].Rank)
	assert.Equal(t, 18, week.Summary.ShiftsWorked)
}
