// README: Driving-distance suggestion handler for the kilometre field.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DistanceSource estimates one-way driving kilometres between two places.
// Satisfied by maps.RouteService.
type DistanceSource interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

type DistanceHandler struct {
	route DistanceSource
}

// NewDistanceHandler accepts a nil source; the endpoint then reports itself
// disabled.
func NewDistanceHandler(src DistanceSource) *DistanceHandler {
	return &DistanceHandler{route: src}
}

// Suggest handles GET /api/distance?origin=&destination=.
func (h *DistanceHandler) Suggest(c *gin.Context) {
	if h.route == nil {
		writeError(c, http.StatusServiceUnavailable, "distance suggestion disabled")
		return
	}
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		writeError(c, http.StatusBadRequest, "missing origin or destination")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	km, err := h.route.DistanceKm(ctx, origin, destination)
	if err != nil {
		writeError(c, http.StatusBadGateway, "route lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"origin":        origin,
		"destination":   destination,
		"km":            km,
		"round_trip_km": km * 2,
	})
}
