package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BuildHandler handles HTTP requests for builds
type BuildHandler struct {
	service   *service.BuildService
	validator *validator.Validate
}

// NewBuildHandler creates a new build handler
func NewBuildHandler(service *service.BuildService) *BuildHandler {
	return &BuildHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create handles POST /api/v1/builds
func (h *BuildHandler) Create(c *fiber.Ctx) error {
	var req models.BuildRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	build, err := h.service.Create(c.Context(), CurrentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(build)
}

// Get handles GET /api/v1/builds/:id
func (h *BuildHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid build ID",
		})
	}
	build, err := h.service.Get(c.Context(), CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(build)
}

// GetShared handles GET /api/v1/builds/shared/:token without authentication
func (h *BuildHandler) GetShared(c *fiber.Ctx) error {
	build, err := h.service.GetShared(c.Context(), c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(build)
}

// List handles GET /api/v1/builds (own builds) and ?car_id= (public builds per car)
func (h *BuildHandler) List(c *fiber.Ctx) error {
	if carID := queryID(c, "car_id"); carID != 0 {
		builds, err := h.service.ListPublicByCar(c.Context(), carID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(builds)
	}

	builds, err := h.service.ListByUser(c.Context(), CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(builds)
}

// Update handles PUT /api/v1/builds/:id
func (h *BuildHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid build ID",
		})
	}

	var req models.BuildRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	build, err := h.service.Update(c.Context(), CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(build)
}

// Delete handles DELETE /api/v1/builds/:id. Deletion is permanent.
func (h *BuildHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid build ID",
		})
	}
	if err := h.service.Delete(c.Context(), CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit handles POST /api/v1/builds/:id/submit persisting edited selections
func (h *BuildHandler) Submit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid build ID",
		})
	}

	var submission models.BuildSubmission
	if err := c.BodyParser(&submission); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&submission); err != nil {
		return validationError(c, err)
	}

	build, err := h.service.SubmitSelections(c.Context(), CurrentUser(c), id, submission)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(build)
}
