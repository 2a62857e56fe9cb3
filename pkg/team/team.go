package team

import (
	"net/http"
	"time"

	"github.com/somGabriel/Proago/pkg/errx"
)

// DayPerformance is one day of a worker's scored week.
type DayPerformance struct {
	Day      string  `json:"day"`
	FullDay  string  `json:"full_day"`
	Score    float64 `json:"score"`
	Sales    int     `json:"sales"`
	Hours    float64 `json:"hours"`
	Status   string  `json:"status"`
	Feedback string  `json:"feedback"`
}

// Shift is a scheduled field assignment.
type Shift struct {
	ID       int       `json:"id"`
	Location string    `json:"location"`
	Date     time.Time `json:"date"`
	Time     string    `json:"time"`
	Type     string    `json:"type"`
	Status   string    `json:"status"`
}

// LeaderboardEntry ranks workers by weekly score.
type LeaderboardEntry struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Avatar string  `json:"avatar"`
}

// WorkerSummary is the headline stats block of the worker dashboard.
type WorkerSummary struct {
	Earnings     string  `json:"earnings"`
	ShiftsWorked int     `json:"shifts_worked"`
	AvgSalesHour float64 `json:"avg_sales_per_hour"`
	Rank         string  `json:"rank"`
}

// WorkerWeek is the full worker dashboard payload.
type WorkerWeek struct {
	Summary     WorkerSummary      `json:"summary"`
	Week        []DayPerformance   `json:"week"`
	Shifts      []Shift            `json:"shifts"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// MonthlyFinance is one month of revenue against expenses.
type MonthlyFinance struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// WorkerPerformance is the manager-side view of one worker's output.
type WorkerPerformance struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Generated float64 `json:"generated"`
	Cost      float64 `json:"cost"`
	Sales     int     `json:"sales"`
	ROI       string  `json:"roi"`
}

// FinanceOverview aggregates the monthly entries.
type FinanceOverview struct {
	Months       []MonthlyFinance `json:"months"`
	TotalRevenue float64          `json:"total_revenue"`
	TotalCost    float64          `json:"total_expenses"`
	Profit       float64          `json:"profit"`
}

// ManagerOverview is the full manager dashboard payload.
type ManagerOverview struct {
	Finances FinanceOverview     `json:"finances"`
	Workers  []WorkerPerformance `json:"workers"`
}

// RecruiterStats is the sales record attached to a recruiter.
type RecruiterStats struct {
	TotalSales     int     `json:"total_sales"`
	ConversionRate float64 `json:"conversion_rate"`
	PersonalBest   int     `json:"personal_best"`
}

// Recruiter is an active member of the recruiting team.
type Recruiter struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Status    string         `json:"status"`
	Stats     RecruiterStats `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FormationSession is a scheduled training session with its participants.
type FormationSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddFinanceRequest records one month of revenue and expenses.
type AddFinanceRequest struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("TEAM")

var (
	CodeInvalidFinanceEntry = ErrRegistry.Register("INVALID_FINANCE_ENTRY", errx.TypeValidation, http.StatusBadRequest, "Finance entry is incomplete")
)

func ErrInvalidFinanceEntry() *errx.Error {
	return ErrRegistry.New(CodeInvalidFinanceEntry)
}
