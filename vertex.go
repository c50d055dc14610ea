package osmnav

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// VertexID is an identifier of vertex taken from source map (OSM node ID or DOT node name)
type VertexID string

func vertexIDFromNode(id osm.NodeID) VertexID {
	return VertexID(strconv.FormatInt(int64(id), 10))
}

// Vertex represents topology-only vertex
type Vertex struct {
	ID VertexID
}

// GeoVertex is vertex with its geographic position and position in plot space
type GeoVertex struct {
	ID  VertexID
	Lat float64
	Lon float64
	// X and Y are used by diagram exporter only
	X float64
	Y float64
}

// Point returns position of vertex as orb.Point (Lon == X, Lat == Y)
func (gv *GeoVertex) Point() orb.Point {
	return orb.Point{gv.Lon, gv.Lat}
}

// String returns pretty printed value for GeoVertex
func (gv *GeoVertex) String() string {
	return fmt.Sprintf("%s : %v, %v", gv.ID, gv.Lat, gv.Lon)
}
