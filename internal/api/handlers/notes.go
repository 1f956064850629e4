package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles HTTP requests for user notes
type NoteHandler struct {
	service   *service.NoteService
	validator *validator.Validate
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create handles POST /api/v1/notes
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var req models.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	note, err := h.service.Create(c.Context(), CurrentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// List handles GET /api/v1/notes
func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.service.List(c.Context(), CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notes)
}

// Update handles PUT /api/v1/notes/:id
func (h *NoteHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid note ID",
		})
	}

	var req models.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	note, err := h.service.Update(c.Context(), CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Delete handles DELETE /api/v1/notes/:id
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid note ID",
		})
	}
	if err := h.service.Delete(c.Context(), CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
