package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user administration
type UserHandler struct {
	service   *service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create handles POST /api/v1/users. The auth proxy provisions a profile
// here on a user's first login.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req models.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	user, err := h.service.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(CurrentUser(c))
}

// List handles GET /api/v1/admin/users (admin only)
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context(), CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// Update handles PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid user ID",
		})
	}

	var req models.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	user, err := h.service.UpdateProfile(c.Context(), CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SetBanned handles PUT /api/v1/admin/users/:id/ban (admin only)
func (h *UserHandler) SetBanned(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid user ID",
		})
	}

	var req models.BanRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	if err := h.service.SetBanned(c.Context(), CurrentUser(c), id, req.Banned); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id": id,
		"banned":  req.Banned,
	})
}
