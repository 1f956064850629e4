package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RaceHandler handles HTTP requests for races and run lists
type RaceHandler struct {
	service   *service.RaceService
	validator *validator.Validate
}

// NewRaceHandler creates a new race handler
func NewRaceHandler(service *service.RaceService) *RaceHandler {
	return &RaceHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateRace handles POST /api/v1/races
func (h *RaceHandler) CreateRace(c *fiber.Ctx) error {
	var req models.RaceRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	race, err := h.service.CreateRace(c.Context(), CurrentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(race)
}

// ListRaces handles GET /api/v1/races
func (h *RaceHandler) ListRaces(c *fiber.Ctx) error {
	races, err := h.service.ListRaces(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(races)
}

// GetRace handles GET /api/v1/races/:id
func (h *RaceHandler) GetRace(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid race ID",
		})
	}
	race, err := h.service.GetRace(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(race)
}

// UpdateRace handles PUT /api/v1/races/:id
func (h *RaceHandler) UpdateRace(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid race ID",
		})
	}

	var req models.RaceRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	race, err := h.service.UpdateRace(c.Context(), CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(race)
}

// DeleteRace handles DELETE /api/v1/races/:id
func (h *RaceHandler) DeleteRace(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid race ID",
		})
	}
	if err := h.service.DeleteRace(c.Context(), CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateRunList handles POST /api/v1/runlists
func (h *RaceHandler) CreateRunList(c *fiber.Ctx) error {
	var req models.RunListRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	list, err := h.service.CreateRunList(c.Context(), CurrentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// ListRunLists handles GET /api/v1/runlists
func (h *RaceHandler) ListRunLists(c *fiber.Ctx) error {
	lists, err := h.service.ListRunLists(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lists)
}

// GetRunList handles GET /api/v1/runlists/:id
func (h *RaceHandler) GetRunList(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid run list ID",
		})
	}
	list, err := h.service.GetRunList(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateRunList handles PUT /api/v1/runlists/:id
func (h *RaceHandler) UpdateRunList(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid run list ID",
		})
	}

	var req models.RunListRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	list, err := h.service.UpdateRunList(c.Context(), CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// DeleteRunList handles DELETE /api/v1/runlists/:id
func (h *RaceHandler) DeleteRunList(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid run list ID",
		})
	}
	if err := h.service.DeleteRunList(c.Context(), CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reorder handles PUT /api/v1/runlists/:id/order
func (h *RaceHandler) Reorder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid run list ID",
		})
	}

	var req models.RunListReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	list, err := h.service.Reorder(c.Context(), CurrentUser(c), id, req.RaceIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
