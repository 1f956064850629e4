package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/catalog"
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogueHandler handles HTTP requests for cars, tracks and the
// upgrade/tuning field catalogue
type CatalogueHandler struct {
	postgresRepo *repository.PostgresRepository
	validator    *validator.Validate
}

// NewCatalogueHandler creates a new catalogue handler
func NewCatalogueHandler(postgresRepo *repository.PostgresRepository) *CatalogueHandler {
	return &CatalogueHandler{
		postgresRepo: postgresRepo,
		validator:    validator.New(),
	}
}

// ListCars handles GET /api/v1/cars
func (h *CatalogueHandler) ListCars(c *fiber.Ctx) error {
	cars, err := h.postgresRepo.ListCars(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cars)
}

// GetCar handles GET /api/v1/cars/:id
func (h *CatalogueHandler) GetCar(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid car ID",
		})
	}
	car, err := h.postgresRepo.GetCar(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(car)
}

// CreateCar handles POST /api/v1/cars (admin only)
func (h *CatalogueHandler) CreateCar(c *fiber.Ctx) error {
	if !CurrentUser(c).IsAdmin {
		return respondError(c, service.ErrForbidden)
	}

	var req models.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	car := &models.Car{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Category:     req.Category,
	}
	if err := h.postgresRepo.CreateCar(c.Context(), car); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// UpdateCar handles PUT /api/v1/cars/:id (admin only)
func (h *CatalogueHandler) UpdateCar(c *fiber.Ctx) error {
	if !CurrentUser(c).IsAdmin {
		return respondError(c, service.ErrForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid car ID",
		})
	}

	var req models.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	car, err := h.postgresRepo.GetCar(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	car.Name = req.Name
	car.Manufacturer = req.Manufacturer
	car.Category = req.Category
	if err := h.postgresRepo.UpdateCar(c.Context(), car); err != nil {
		return respondError(c, err)
	}
	return c.JSON(car)
}

// DeleteCar handles DELETE /api/v1/cars/:id (admin only)
func (h *CatalogueHandler) DeleteCar(c *fiber.Ctx) error {
	if !CurrentUser(c).IsAdmin {
		return respondError(c, service.ErrForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid car ID",
		})
	}
	if err := h.postgresRepo.DeleteCar(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTracks handles GET /api/v1/tracks
func (h *CatalogueHandler) ListTracks(c *fiber.Ctx) error {
	tracks, err := h.postgresRepo.ListTracks(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

// CreateTrack handles POST /api/v1/tracks (admin only)
func (h *CatalogueHandler) CreateTrack(c *fiber.Ctx) error {
	if !CurrentUser(c).IsAdmin {
		return respondError(c, service.ErrForbidden)
	}

	var req models.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	track := &models.Track{
		Name:     req.Name,
		Location: req.Location,
		Layout:   req.Layout,
	}
	if err := h.postgresRepo.CreateTrack(c.Context(), track); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(track)
}

// UpdateTrack handles PUT /api/v1/tracks/:id (admin only)
func (h *CatalogueHandler) UpdateTrack(c *fiber.Ctx) error {
	if !CurrentUser(c).IsAdmin {
		return respondError(c, service.ErrForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid track ID",
		})
	}

	var req models.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	track, err := h.postgresRepo.GetTrack(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	track.Name = req.Name
	track.Location = req.Location
	track.Layout = req.Layout
	if err := h.postgresRepo.UpdateTrack(c.Context(), track); err != nil {
		return respondError(c, err)
	}
	return c.JSON(track)
}

// DeleteTrack handles DELETE /api/v1/tracks/:id (admin only)
func (h *CatalogueHandler) DeleteTrack(c *fiber.Ctx) error {
	if !CurrentUser(c).IsAdmin {
		return respondError(c, service.ErrForbidden)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid track ID",
		})
	}
	if err := h.postgresRepo.DeleteTrack(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fieldResponse is one catalogue field in the fields endpoint response
type fieldResponse struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// Fields handles GET /api/v1/catalogue/fields, the upgrade/tuning metadata
// the build editor renders its controls from
func (h *CatalogueHandler) Fields(c *fiber.Ctx) error {
	toResponse := func(fields []catalog.Field) []fieldResponse {
		out := make([]fieldResponse, 0, len(fields))
		for _, f := range fields {
			entry := fieldResponse{ID: f.ID, Label: f.Label, Options: f.Options}
			switch f.Type {
			case catalog.InputCheckbox:
				entry.Type = "checkbox"
			case catalog.InputDropdown:
				entry.Type = "dropdown"
			default:
				entry.Type = "text"
			}
			out = append(out, entry)
		}
		return out
	}

	return c.JSON(fiber.Map{
		"upgrades": toResponse(catalog.UpgradeParts),
		"tuning":   toResponse(catalog.TuningSettings),
	})
}
