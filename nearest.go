package osmnav

import (
	"github.com/pkg/errors"
)

// NearestVertex returns identifier of vertex closest to given position according to graph metric.
// Vertices are scanned in graph order and the first one wins ties
func (rg *RoutingGraph) NearestVertex(lat, lon float64) (VertexID, error) {
	if len(rg.order) == 0 {
		return "", errors.Wrap(ErrEmptyGraph, "can't search for nearest vertex")
	}
	nearest := rg.order[0]
	first := rg.geoVertices[nearest]
	best := rg.metric.Distance(first.Lat, first.Lon, lat, lon)
	for _, id := range rg.order[1:] {
		v := rg.geoVertices[id]
		dist := rg.metric.Distance(v.Lat, v.Lon, lat, lon)
		if dist < best {
			best = dist
			nearest = id
		}
	}
	return nearest, nil
}
