package render

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"terrain_router/pkg/geo"
	"terrain_router/pkg/grid"
	"terrain_router/pkg/routing"
)

// Point places a cell in planar coordinates: metres east and north of the
// raster's top-left corner. Rows grow southward, so y is negative.
func Point(c grid.Cell, scale geo.Scale) orb.Point {
	return orb.Point{float64(c.Col) * scale.ColMeters, -float64(c.Row) * scale.RowMeters}
}

// LineString converts route cells to a planar line.
func LineString(cells []grid.Cell, scale geo.Scale) orb.LineString {
	ls := make(orb.LineString, len(cells))
	for i, c := range cells {
		ls[i] = Point(c, scale)
	}
	return ls
}

// FeatureCollection holds one LineString feature per leg and one Point
// feature per waypoint.
func FeatureCollection(route *routing.Route, scale geo.Scale) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, leg := range route.Legs {
		f := geojson.NewFeature(LineString(leg.Cells, scale))
		f.Properties["leg"] = i
		f.Properties["distance_meters"] = leg.DistanceMeters
		f.Properties["cells"] = len(leg.Cells)
		fc.Append(f)
	}
	for i, leg := range route.Legs {
		if i == 0 {
			fc.Append(waypointFeature(0, leg.From, scale))
		}
		fc.Append(waypointFeature(i+1, leg.To, scale))
	}
	fc.ExtraMembers = geojson.Properties{"total_distance_meters": route.TotalDistanceMeters}
	return fc
}

func waypointFeature(i int, c grid.Cell, scale geo.Scale) *geojson.Feature {
	f := geojson.NewFeature(Point(c, scale))
	f.Properties["waypoint"] = i
	f.Properties["row"] = c.Row
	f.Properties["col"] = c.Col
	f.Properties["terrain"] = c.Terrain.String()
	return f
}

// WriteGeoJSON encodes the route's FeatureCollection to w.
func WriteGeoJSON(w io.Writer, route *routing.Route, scale geo.Scale) error {
	return json.NewEncoder(w).Encode(FeatureCollection(route, scale))
}
