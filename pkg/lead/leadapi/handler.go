package leadapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
	"github.com/somGabriel/Proago/pkg/kernel"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/lead/leadsrv"
)

// LeadHandlers exposes the pipeline over HTTP. Submission is public; every
// other route is recruiter-gated.
type LeadHandlers struct {
	service *leadsrv.LeadService
}

func NewLeadHandlers(service *leadsrv.LeadService) *LeadHandlers {
	return &LeadHandlers{service: service}
}

// RegisterRoutes registers the lead routes on Fiber.
func (h *LeadHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	router.Post("/apply", h.Submit)

	leads := router.Group("/leads",
		authMiddleware.Authenticate(),
		authMiddleware.RequireView(iam.ViewPipeline),
	)

	leads.Get("/", h.List)
	leads.Get("/board", h.Board)
	leads.Get("/:id", h.Get)
	leads.Patch("/:id", h.Update)
	leads.Post("/:id/move", h.Move)
	leads.Post("/move", h.MoveBatch)
	leads.Post("/delete", h.DeleteBatch)
	leads.Delete("/:id", h.Delete)

	leads.Post("/:id/tasks", h.AddTask)
	leads.Post("/:id/tasks/:taskId/toggle", h.ToggleTask)
	leads.Delete("/:id/tasks/:taskId", h.RemoveTask)
}

// Submit ingests a public application form.
func (h *LeadHandlers) Submit(c *fiber.Ctx) error {
	var req lead.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.service.Submit(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns the filtered, ordered collection.
func (h *LeadHandlers) List(c *fiber.Ctx) error {
	q := lead.Query{Search: c.Query("search")}

	leads, err := h.service.List(c.Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"leads": leads,
		"total": len(leads),
	})
}

// Board returns the pipeline grouped into columns.
func (h *LeadHandlers) Board(c *fiber.Ctx) error {
	q := lead.Query{Search: c.Query("search")}

	board, err := h.service.BoardView(c.Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(board)
}

// Get returns one lead.
func (h *LeadHandlers) Get(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))

	entity, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(entity)
}

// Update applies a partial edit.
func (h *LeadHandlers) Update(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))

	var req lead.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.Update(c.Context(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// MoveRequest changes the stage of one lead.
type MoveRequest struct {
	Status lead.Status `json:"status"`
}

// Move changes the stage of one lead.
func (h *LeadHandlers) Move(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.Move(c.Context(), id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// BatchMoveRequest moves several leads to the same stage.
type BatchMoveRequest struct {
	IDs    []string    `json:"ids"`
	Status lead.Status `json:"status"`
}

// MoveBatch moves several leads at once.
func (h *LeadHandlers) MoveBatch(c *fiber.Ctx) error {
	var req BatchMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.MoveBatch(c.Context(), leadIDs(req.IDs), req.Status); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Leads moved", "count": len(req.IDs)})
}

// Delete removes one lead.
func (h *LeadHandlers) Delete(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Lead deleted"})
}

// BatchDeleteRequest removes several leads.
type BatchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteBatch removes several leads at once.
func (h *LeadHandlers) DeleteBatch(c *fiber.Ctx) error {
	var req BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.DeleteBatch(c.Context(), leadIDs(req.IDs)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Leads deleted", "count": len(req.IDs)})
}

// AddTaskRequest appends a follow-up task.
type AddTaskRequest struct {
	Text string `json:"text"`
}

// AddTask appends a follow-up task to a lead.
func (h *LeadHandlers) AddTask(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))

	var req AddTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.service.AddTask(c.Context(), id, req.Text)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(updated)
}

// ToggleTask flips one task's completion flag.
func (h *LeadHandlers) ToggleTask(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))
	taskID := kernel.NewTaskID(c.Params("taskId"))

	updated, err := h.service.ToggleTask(c.Context(), id, taskID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// RemoveTask deletes one task from a lead.
func (h *LeadHandlers) RemoveTask(c *fiber.Ctx) error {
	id := kernel.NewLeadID(c.Params("id"))
	taskID := kernel.NewTaskID(c.Params("taskId"))

	updated, err := h.service.RemoveTask(c.Context(), id, taskID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func leadIDs(ids []string) []kernel.LeadID {
	out := make([]kernel.LeadID, 0, len(ids))
	for _, id := range ids {
		out = append(out, kernel.NewLeadID(id))
	}
	return out
}
