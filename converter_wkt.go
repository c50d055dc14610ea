package osmnav

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// pathLineString returns geometry of path. Unknown vertices are skipped
func (rg *RoutingGraph) pathLineString(path Path) orb.LineString {
	line := make(orb.LineString, 0, len(path.Vertices))
	for _, id := range path.Vertices {
		if v, ok := rg.geoVertices[id]; ok {
			line = append(line, v.Point())
		}
	}
	return line
}

// PrepareWKTLinestring returns WKT representation of path
func (rg *RoutingGraph) PrepareWKTLinestring(path Path) string {
	line := rg.pathLineString(path)
	if len(line) == 1 {
		return wkt.MarshalString(line[0])
	}
	return wkt.MarshalString(line)
}

// PrepareWKTPoint returns WKT representation of vertex
func PrepareWKTPoint(v *GeoVertex) string {
	return wkt.MarshalString(v.Point())
}
