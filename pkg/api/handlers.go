package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"terrain_router/pkg/geo"
	"terrain_router/pkg/render"
	"terrain_router/pkg/routing"
)

const (
	maxBodyBytes = 64 << 10
	maxWaypoints = 256
)

// HandlerOptions are the defaults applied to every route query.
type HandlerOptions struct {
	Scale        geo.Scale // for GeoJSON output
	ParallelLegs bool
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router routing.Router
	stats  StatsResponse
	opts   HandlerOptions
}

// NewHandlers creates handlers with the given router.
func NewHandlers(router routing.Router, stats StatsResponse, opts HandlerOptions) *Handlers {
	return &Handlers{
		router: router,
		stats:  stats,
		opts:   opts,
	}
}

// NewStats summarizes the engine's grid.
func NewStats(e *routing.Engine) StatsResponse {
	g := e.Grid()
	stats := StatsResponse{
		Rows:       g.Rows,
		Cols:       g.Cols,
		Components: e.Components().Count(),
		Terrain:    make(map[string]int),
	}
	_, stats.LargestComponent = e.Components().Largest()
	for k, n := range g.KindCounts() {
		stats.Terrain[k.String()] = n
		if !k.Impassible() {
			stats.PassableCells += n
		}
	}
	return stats
}

// HandleRoute handles POST /api/v1/route. With ?format=geojson the route is
// returned as a GeoJSON FeatureCollection.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "", nil)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, http.StatusBadRequest, "invalid_request", "format", nil)
		return
	}

	// Parse request.
	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "", nil)
		return
	}

	// Validate waypoints.
	if len(req.Waypoints) < 2 || len(req.Waypoints) > maxWaypoints {
		writeError(w, http.StatusBadRequest, "invalid_request", "waypoints", nil)
		return
	}
	wps := make([]routing.Waypoint, len(req.Waypoints))
	for i, wp := range req.Waypoints {
		if wp.Col < 0 || wp.Row < 0 {
			writeError(w, http.StatusBadRequest, "invalid_waypoint", fmt.Sprintf("waypoints[%d]", i), nil)
			return
		}
		wps[i] = routing.Waypoint{Col: wp.Col, Row: wp.Row}
	}

	// Route.
	result, err := h.router.Route(r.Context(), routing.RouteRequest{
		Waypoints: wps,
		Snap:      req.Snap,
		Options: routing.PlanOptions{
			DedupeJunctions: req.Dedupe,
			Parallel:        h.opts.ParallelLegs,
		},
	})
	if err != nil {
		writeRouteError(w, err)
		return
	}

	if format == "geojson" {
		w.Header().Set("Content-Type", "application/geo+json")
		render.WriteGeoJSON(w, result, h.opts.Scale)
		return
	}

	// Build response.
	resp := RouteResponse{
		TotalDistanceMeters: result.TotalDistanceMeters,
		Legs:                make([]LegJSON, 0, len(result.Legs)),
	}
	for _, leg := range result.Legs {
		cells := make([]CellJSON, len(leg.Cells))
		for i, c := range leg.Cells {
			cells[i] = CellJSON{Col: c.Col, Row: c.Row, Elevation: c.Elevation, Terrain: c.Terrain.String()}
		}
		resp.Legs = append(resp.Legs, LegJSON{
			DistanceMeters: leg.DistanceMeters,
			Cells:          cells,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func writeRouteError(w http.ResponseWriter, err error) {
	var leg *int
	var legErr *routing.LegError
	if errors.As(err, &legErr) {
		leg = &legErr.Leg
	}

	switch {
	case errors.Is(err, routing.ErrPointTooFar):
		writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_passable", "", nil)
	case errors.Is(err, routing.ErrWaypointOutOfRange):
		writeError(w, http.StatusBadRequest, "invalid_waypoint", "waypoints", nil)
	case errors.Is(err, routing.ErrTooFewWaypoints):
		writeError(w, http.StatusBadRequest, "invalid_request", "waypoints", nil)
	case errors.Is(err, routing.ErrNoRoute):
		writeError(w, http.StatusNotFound, "no_route_found", "", leg)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "", nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "", nil)
	}
}

func writeError(w http.ResponseWriter, status int, code, field string, leg *int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field, Leg: leg})
}
