package teamapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
	"github.com/somGabriel/Proago/pkg/team"
	"github.com/somGabriel/Proago/pkg/team/teamsrv"
)

// TeamHandlers exposes the worker and manager dashboards.
type TeamHandlers struct {
	service *teamsrv.TeamService
}

func NewTeamHandlers(service *teamsrv.TeamService) *TeamHandlers {
	return &TeamHandlers{service: service}
}

// RegisterRoutes registers the dashboard routes on Fiber.
func (h *TeamHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	planning := router.Group("/planning",
		authMiddleware.Authenticate(),
		authMiddleware.RequireView(iam.ViewPlanning),
	)
	planning.Get("/week", h.WorkerWeek)

	management := router.Group("/team",
		authMiddleware.Authenticate(),
		authMiddleware.RequireView(iam.ViewTeam),
	)
	management.Get("/overview", h.ManagerOverview)
	management.Get("/recruiters", h.Recruiters)
	management.Post("/finances", h.AddFinanceEntry)

	formation := router.Group("/formation",
		authMiddleware.Authenticate(),
		authMiddleware.RequireView(iam.ViewFormation),
	)
	formation.Get("/sessions", h.FormationSessions)
}

// Recruiters returns the recruiting team roster.
func (h *TeamHandlers) Recruiters(c *fiber.Ctx) error {
	return c.JSON(h.service.Recruiters())
}

// FormationSessions returns the scheduled training sessions.
func (h *TeamHandlers) FormationSessions(c *fiber.Ctx) error {
	return c.JSON(h.service.FormationSessions())
}

// WorkerWeek returns the worker dashboard payload.
func (h *TeamHandlers) WorkerWeek(c *fiber.Ctx) error {
	return c.JSON(h.service.WorkerWeek())
}

// ManagerOverview returns the manager dashboard payload.
func (h *TeamHandlers) ManagerOverview(c *fiber.Ctx) error {
	return c.JSON(h.service.ManagerOverview())
}

// AddFinanceEntry records one month of revenue and expenses.
func (h *TeamHandlers) AddFinanceEntry(c *fiber.Ctx) error {
	var req team.AddFinanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	finances, err := h.service.AddFinanceEntry(req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(finances)
}
