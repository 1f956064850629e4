package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// LapTimeHandler handles HTTP requests for lap times
type LapTimeHandler struct {
	service   *service.LapTimeService
	validator *validator.Validate
}

// NewLapTimeHandler creates a new lap time handler
func NewLapTimeHandler(service *service.LapTimeService) *LapTimeHandler {
	return &LapTimeHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Submit handles POST /api/v1/laptimes
func (h *LapTimeHandler) Submit(c *fiber.Ctx) error {
	var req models.LapTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	lap, err := h.service.Submit(c.Context(), CurrentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lap)
}

// List handles GET /api/v1/laptimes with optional car_id/track_id/user_id/build_id filters
func (h *LapTimeHandler) List(c *fiber.Ctx) error {
	filter := repository.LapFilter{}
	if id := queryID(c, "car_id"); id != 0 {
		filter.CarID = &id
	}
	if id := queryID(c, "track_id"); id != 0 {
		filter.TrackID = &id
	}
	if id := queryID(c, "user_id"); id != 0 {
		filter.UserID = &id
	}
	if id := queryID(c, "build_id"); id != 0 {
		filter.BuildID = &id
	}

	laps, err := h.service.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(laps)
}

// Delete handles DELETE /api/v1/laptimes/:id
func (h *LapTimeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid lap ID",
		})
	}
	if err := h.service.Delete(c.Context(), CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
