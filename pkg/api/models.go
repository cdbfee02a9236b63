package api

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Waypoints []WaypointJSON `json:"waypoints"`
	Snap      bool           `json:"snap"`
	Dedupe    bool           `json:"dedupe"`
}

// WaypointJSON is a raster position in JSON.
type WaypointJSON struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	TotalDistanceMeters float64   `json:"total_distance_meters"`
	Legs                []LegJSON `json:"legs"`
}

// LegJSON is the path between two consecutive waypoints.
type LegJSON struct {
	DistanceMeters float64    `json:"distance_meters"`
	Cells          []CellJSON `json:"cells"`
}

// CellJSON is one step of a leg.
type CellJSON struct {
	Col       int     `json:"col"`
	Row       int     `json:"row"`
	Elevation float64 `json:"elevation"`
	Terrain   string  `json:"terrain"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Leg   *int   `json:"leg,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	Rows             int            `json:"rows"`
	Cols             int            `json:"cols"`
	PassableCells    int            `json:"passable_cells"`
	Components       int            `json:"components"`
	LargestComponent int            `json:"largest_component"`
	Terrain          map[string]int `json:"terrain"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
