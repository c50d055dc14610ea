package osmnav

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// RouteFeature returns GeoJSON feature of path with travel time in properties
func (rg *RoutingGraph) RouteFeature(path Path) *geojson.Feature {
	line := rg.pathLineString(path)
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].Lon(), line[i].Lat()}
	}
	feature := geojson.NewLineStringFeature(pts2d)
	feature.SetProperty("minutes", path.Minutes)
	ids := make([]string, len(path.Vertices))
	for i := range path.Vertices {
		ids[i] = string(path.Vertices[i])
	}
	feature.SetProperty("vertices", ids)
	return feature
}

// PrepareGeoJSONLinestring returns GeoJSON representation of path
func (rg *RoutingGraph) PrepareGeoJSONLinestring(path Path) (string, error) {
	b, err := rg.RouteFeature(path).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "can't convert route to geojson")
	}
	return string(b), nil
}

// PrepareGeoJSONPoint returns GeoJSON representation of vertex
func PrepareGeoJSONPoint(v *GeoVertex) (string, error) {
	feature := geojson.NewPointFeature([]float64{v.Lon, v.Lat})
	feature.SetProperty("id", string(v.ID))
	b, err := feature.MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "can't convert vertex to geojson")
	}
	return string(b), nil
}
