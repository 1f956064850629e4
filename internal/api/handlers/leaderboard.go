package handlers

import (
	"strconv"

	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler handles HTTP requests for leaderboards
type LeaderboardHandler struct {
	service *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
	}
}

// Get handles GET /api/v1/leaderboard?car_id=&track_id=&limit=
func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	carID := queryID(c, "car_id")
	trackID := queryID(c, "track_id")

	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100 // Max limit to prevent abuse
	}

	resp, err := h.service.Get(c.Context(), carID, trackID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// TrackBests handles GET /api/v1/cars/:id/trackbests?user_id=
// with per-track personal bests for a car
func (h *LeaderboardHandler) TrackBests(c *fiber.Ctx) error {
	carID, err := paramID(c, "id")
	if err != nil {
		return bodyError(c, err)
	}

	var userFilter *uint
	if id := queryID(c, "user_id"); id != 0 {
		userFilter = &id
	}

	bests, err := h.service.TrackBests(c.Context(), carID, userFilter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bests)
}
