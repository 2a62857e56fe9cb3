package teamsrv

import (
	"strings"
	"sync"
	"time"

	"github.com/somGabriel/Proago/pkg/team"
)

// TeamService serves the worker and manager dashboards. The data is the
// fixed demo dataset; only finance entries are mutable.
type TeamService struct {
	mu         sync.RWMutex
	finances   []team.MonthlyFinance
	workers    []team.WorkerPerformance
	week       team.WorkerWeek
	recruiters []team.Recruiter
	sessions   []team.FormationSession
}

// NewTeamService creates the dashboard service pre-loaded with demo data.
func NewTeamService() *TeamService {
	return &TeamService{
		finances: []team.MonthlyFinance{
			{Month: "Aug", Revenue: 45000, Expenses: 32000},
			{Month: "Sep", Revenue: 52000, Expenses: 35000},
			{Month: "Oct", Revenue: 48000, Expenses: 34000},
		},
		workers: []team.WorkerPerformance{
			{ID: "1", Name: "Jean-Pierre M.", Generated: 8400, Cost: 3200, Sales: 154, ROI: "2.6x"},
			{ID: "2", Name: "Sarah W.", Generated: 7200, Cost: 2800, Sales: 132, ROI: "2.5x"},
			{ID: "3", Name: "Marco V.", Generated: 6500, Cost: 2600, Sales: 121, ROI: "2.5x"},
			{ID: "4", Name: "Worker 111", Generated: 2400, Cost: 1200, Sales: 42, ROI: "2.0x"},
		},
		week:       demoWeek(),
		recruiters: demoRecruiters(),
		sessions:   demoSessions(),
	}
}

// Recruiters returns the recruiting team roster.
func (s *TeamService) Recruiters() []team.Recruiter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Recruiter, len(s.recruiters))
	copy(out, s.recruiters)
	return out
}

// FormationSessions returns the scheduled training sessions.
func (s *TeamService) FormationSessions() []team.FormationSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.FormationSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// WorkerWeek returns the worker dashboard payload.
func (s *TeamService) WorkerWeek() team.WorkerWeek {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.week
}

// ManagerOverview returns the manager dashboard payload.
func (s *TeamService) ManagerOverview() team.ManagerOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	months := make([]team.MonthlyFinance, len(s.finances))
	copy(months, s.finances)

	var revenue, expenses float64
	for _, m := range months {
		revenue += m.Revenue
		expenses += m.Expenses
	}

	workers := make([]team.WorkerPerformance, len(s.workers))
	copy(workers, s.workers)

	return team.ManagerOverview{
		Finances: team.FinanceOverview{
			Months:       months,
			TotalRevenue: revenue,
			TotalCost:    expenses,
			Profit:       revenue - expenses,
		},
		Workers: workers,
	}
}

// AddFinanceEntry records one month of revenue and expenses.
func (s *TeamService) AddFinanceEntry(req team.AddFinanceRequest) (team.FinanceOverview, error) {
	if strings.TrimSpace(req.Month) == "" || req.Revenue <= 0 || req.Expenses <= 0 {
		return team.FinanceOverview{}, team.ErrInvalidFinanceEntry()
	}

	s.mu.Lock()
	s.finances = append(s.finances, team.MonthlyFinance{
		Month:    req.Month,
		Revenue:  req.Revenue,
		Expenses: req.Expenses,
	})
	s.mu.Unlock()

	return s.ManagerOverview().Finances, nil
}

func demoRecruiters() []team.Recruiter {
	now := time.Now()
	return []team.Recruiter{
		{
			ID: "r-1", Name: "Jean-Pierre Muller", Email: "jp.muller@proago.lu", Status: "ACTIVE",
			Stats:     team.RecruiterStats{TotalSales: 154, ConversionRate: 0.32, PersonalBest: 18},
			CreatedAt: now.AddDate(0, -6, 0), UpdatedAt: now,
		},
		{
			ID: "r-2", Name: "Sarah Wagner", Email: "s.wagner@proago.lu", Status: "ACTIVE",
			Stats:     team.RecruiterStats{TotalSales: 132, ConversionRate: 0.29, PersonalBest: 15},
			CreatedAt: now.AddDate(0, -4, 0), UpdatedAt: now,
		},
		{
			ID: "r-3", Name: "Marco Verde", Email: "m.verde@proago.lu", Status: "INACTIVE",
			Stats:     team.RecruiterStats{TotalSales: 121, ConversionRate: 0.25, PersonalBest: 14},
			CreatedAt: now.AddDate(0, -9, 0), UpdatedAt: now.AddDate(0, -1, 0),
		},
	}
}

func demoSessions() []team.FormationSession {
	now := time.Now()
	return []team.FormationSession{
		{
			ID: "fs-1", Title: "Pitch Fundamentals", Date: now.AddDate(0, 0, 5),
			Location: "Cloche d'Or, Luxembourg", Participants: []string{"r-1", "r-2"},
			CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: now,
		},
		{
			ID: "fs-2", Title: "Territory Onboarding", Date: now.AddDate(0, 0, 12),
			Location: "Kirchberg, Luxembourg", Participants: []string{"r-3"},
			CreatedAt: now.AddDate(0, 0, -3), UpdatedAt: now,
		},
	}
}

func demoWeek() team.WorkerWeek {
	now := time.Now()
	return team.WorkerWeek{
		Summary: team.WorkerSummary{
			Earnings:     "€2,450.00",
			ShiftsWorked: 18,
			AvgSalesHour: 2.4,
			Rank:         "Promoter",
		},
		Week: []team.DayPerformance{
			{Day: "Mon", FullDay: "Monday", Score: 92, Sales: 15, Hours: 8.5, Status: "Excellent", Feedback: "Outstanding start to the week. High conversion rate."},
			{Day: "Tue", FullDay: "Tuesday", Score: 35, Sales: 3, Hours: 8.0, Status: "Low", Feedback: "Low energy detected. Sales pitch adherence was below 60%."},
			{Day: "Wed", FullDay: "Wednesday", Score: 88, Sales: 12, Hours: 7.5, Status: "Excellent", Feedback: "Great recovery! Territory coverage was perfect."},
			{Day: "Thu", FullDay: "Thursday", Score: 95, Sales: 18, Hours: 9.0, Status: "Excellent", Feedback: "Top performer of the day. Consistent energy levels."},
			{Day: "Fri", FullDay: "Friday", Score: 60, Sales: 8, Hours: 6.0, Status: "Average", Feedback: "Solid effort, but left shift early."},
			{Day: "Sat", FullDay: "Saturday", Score: 75, Sales: 10, Hours: 5.0, Status: "Good", Feedback: "Good weekend hustle."},
			{Day: "Sun", FullDay: "Sunday", Score: 0, Sales: 0, Hours: 0, Status: "Rest", Feedback: "Rest Day."},
		},
		Shifts: []team.Shift{
			{ID: 1, Location: "Cloche d'Or, Luxembourg", Date: now.AddDate(0, 0, 3), Time: "10:00 - 18:00", Type: "D2D Sales", Status: "Upcoming"},
			{ID: 2, Location: "Kirchberg Shopping", Date: now.AddDate(0, 0, -2), Time: "09:00 - 17:00", Type: "Event Promotion", Status: "Completed"},
			{ID: 3, Location: "Esch-sur-Alzette Center", Date: now.AddDate(0, 0, -4), Time: "11:00 - 19:00", Type: "Lead Gen", Status: "Completed"},
		},
		Leaderboard: []team.LeaderboardEntry{
			{Rank: 1, Name: "Jean-Pierre M.", Score: 98, Avatar: "JP"},
			{Rank: 2, Name: "Sarah W.", Score: 94, Avatar: "SW"},
			{Rank: 3, Name: "You", Score: 88, Avatar: "ME"},
			{Rank: 4, Name: "Marco V.", Score: 85, Avatar: "MV"},
		},
	}
}
