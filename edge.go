package osmnav

const (
	// DefaultSpeed is used for every edge which source does not provide max speed for. Kilometers per hour.
	DefaultSpeed = 50.0
	// TravelTimeFactor converts meters divided by km/h into minutes: 60 / 1000
	TravelTimeFactor = 0.06
)

// Edge connects two vertices. It is traversable in both directions unless OneWay is set
type Edge struct {
	V1       VertexID
	V2       VertexID
	MaxSpeed float64
	OneWay   bool
}

// GeoEdge is Edge with resolved endpoints
type GeoEdge struct {
	Edge   Edge
	Source *GeoVertex
	Target *GeoVertex
}

// edgeKey is undirected identity of edge
type edgeKey struct {
	a VertexID
	b VertexID
}

func newEdgeKey(v1, v2 VertexID) edgeKey {
	if v2 < v1 {
		v1, v2 = v2, v1
	}
	return edgeKey{a: v1, b: v2}
}
