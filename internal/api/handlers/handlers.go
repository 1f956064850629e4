// Package handlers contains the thin HTTP route handlers: parse and
// validate input, call a service, return JSON.
package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "currentUser"

// CurrentUser returns the authenticated user installed by RequireUser
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

// RequireUser resolves the X-User-ID header (set by the external auth proxy)
// to a user record and rejects missing, unknown or banned users
func RequireUser(users *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("X-User-ID")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error:   "Unauthenticated",
				Message: "Missing X-User-ID header",
			})
		}
		id, err := strconv.ParseUint(header, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error:   "Unauthenticated",
				Message: "Invalid X-User-ID header",
			})
		}
		user, err := users.Get(c.Context(), uint(id))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error:   "Unauthenticated",
				Message: "Unknown user",
			})
		}
		if user.IsBanned {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
				Error: "Account banned",
			})
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// respondError maps service errors to HTTP responses. Unexpected errors are
// logged server-side and surface as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Not found",
		})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
			Error: "Forbidden",
		})
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
	default:
		log.Printf("request failed: %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Internal error",
		})
	}
}

// validationError renders a validator failure as a 400
func validationError(c *fiber.Ctx, err error) error {
	message := err.Error()
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		message = validationErrors.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error:   "Validation failed",
		Message: message,
	})
}

// bodyError renders an unparseable request body as a 400
func bodyError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error:   "Invalid request body",
		Message: err.Error(),
	})
}

// paramID parses a numeric path parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryID parses an optional numeric query parameter; 0 means absent
func queryID(c *fiber.Ctx, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
