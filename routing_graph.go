package osmnav

import (
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// RoutingGraph is graph with geographic positions of its vertices. Topology is read-only after construction,
// so queries could be run concurrently
type RoutingGraph struct {
	graph       *Graph
	geoVertices map[VertexID]*GeoVertex
	order       []VertexID
	geoEdges    []GeoEdge
	bounds      Bounds
	metric      DistanceMetric
	logger      *log.Logger

	adjacencyOnce sync.Once
	adjacency     map[VertexID][]arc
}

// arc is traversable direction of edge with precomputed travel time
type arc struct {
	to      VertexID
	minutes float64
}

// WithMetric sets distance metric used by nearest vertex lookup and edge weights
func WithMetric(metric DistanceMetric) func(*RoutingGraph) {
	return func(rg *RoutingGraph) {
		rg.metric = metric
	}
}

// WithRoutingLogger sets logger for queries
func WithRoutingLogger(logger *log.Logger) func(*RoutingGraph) {
	return func(rg *RoutingGraph) {
		rg.logger = logger
	}
}

// NewRoutingGraph returns routing graph on top of given topology.
// Vertices order defines iteration order of nearest vertex lookup
func NewRoutingGraph(graph *Graph, vertices []*GeoVertex, bounds Bounds, options ...func(*RoutingGraph)) (*RoutingGraph, error) {
	rg := &RoutingGraph{
		graph:       graph,
		geoVertices: make(map[VertexID]*GeoVertex, len(vertices)),
		order:       make([]VertexID, 0, len(vertices)),
		geoEdges:    make([]GeoEdge, 0, len(graph.Edges)),
		bounds:      bounds,
		metric:      METRIC_HAVERSINE,
		logger:      log.New(io.Discard),
	}
	for _, option := range options {
		option(rg)
	}
	if len(vertices) != len(graph.Vertices) {
		return nil, errors.Errorf("number of geo vertices (%d) differs from number of vertices (%d)", len(vertices), len(graph.Vertices))
	}
	for _, v := range vertices {
		if _, ok := rg.geoVertices[v.ID]; ok {
			return nil, errors.Errorf("duplicate geo vertex '%s'", v.ID)
		}
		if !graph.HasVertex(v.ID) {
			return nil, errors.Wrapf(ErrVertexNotFound, "geo vertex '%s' has no vertex in graph", v.ID)
		}
		rg.geoVertices[v.ID] = v
		rg.order = append(rg.order, v.ID)
	}
	for i, edge := range graph.Edges {
		if edge.MaxSpeed <= 0 || math.IsInf(edge.MaxSpeed, 0) || math.IsNaN(edge.MaxSpeed) {
			return nil, errors.Wrapf(ErrInvalidEdge, "edge #%d (%s -> %s) has speed %v", i, edge.V1, edge.V2, edge.MaxSpeed)
		}
		rg.geoEdges = append(rg.geoEdges, GeoEdge{
			Edge:   edge,
			Source: rg.geoVertices[edge.V1],
			Target: rg.geoVertices[edge.V2],
		})
	}
	if !bounds.Valid() {
		return nil, errors.Wrapf(ErrBadBounds, "'%s'", bounds)
	}
	return rg, nil
}

// Graph returns underlying topology
func (rg *RoutingGraph) Graph() *Graph {
	return rg.graph
}

// Bounds returns bounding box
func (rg *RoutingGraph) Bounds() Bounds {
	return rg.bounds
}

// Metric returns distance metric of the graph
func (rg *RoutingGraph) Metric() DistanceMetric {
	return rg.metric
}

// Len returns number of vertices
func (rg *RoutingGraph) Len() int {
	return len(rg.order)
}

// Vertex returns geo vertex by its identifier
func (rg *RoutingGraph) Vertex(id VertexID) (*GeoVertex, bool) {
	v, ok := rg.geoVertices[id]
	return v, ok
}

// Vertices returns geo vertices in graph order
func (rg *RoutingGraph) Vertices() []*GeoVertex {
	vertices := make([]*GeoVertex, len(rg.order))
	for i, id := range rg.order {
		vertices[i] = rg.geoVertices[id]
	}
	return vertices
}

// Edges returns geo edges
func (rg *RoutingGraph) Edges() []GeoEdge {
	return rg.geoEdges
}

// DistanceVertices returns distance between two vertices according to graph metric
func (rg *RoutingGraph) DistanceVertices(v1, v2 VertexID) (float64, error) {
	a, ok := rg.geoVertices[v1]
	if !ok {
		return 0, errors.Wrapf(ErrVertexNotFound, "'%s'", v1)
	}
	b, ok := rg.geoVertices[v2]
	if !ok {
		return 0, errors.Wrapf(ErrVertexNotFound, "'%s'", v2)
	}
	return rg.metric.Distance(a.Lat, a.Lon, b.Lat, b.Lon), nil
}

// edgeMinutes returns travel time along edge in minutes
func (rg *RoutingGraph) edgeMinutes(edge GeoEdge) float64 {
	distance := rg.metric.Distance(edge.Source.Lat, edge.Source.Lon, edge.Target.Lat, edge.Target.Lon)
	return travelTime(distance, edge.Edge.MaxSpeed)
}

// arcs returns outgoing arcs of every vertex. Index is built once on first use
func (rg *RoutingGraph) arcs() map[VertexID][]arc {
	rg.adjacencyOnce.Do(func() {
		adjacency := make(map[VertexID][]arc, len(rg.order))
		for _, id := range rg.order {
			adjacency[id] = []arc{}
		}
		for _, edge := range rg.geoEdges {
			minutes := rg.edgeMinutes(edge)
			adjacency[edge.Edge.V1] = append(adjacency[edge.Edge.V1], arc{to: edge.Edge.V2, minutes: minutes})
			if !edge.Edge.OneWay {
				adjacency[edge.Edge.V2] = append(adjacency[edge.Edge.V2], arc{to: edge.Edge.V1, minutes: minutes})
			}
		}
		rg.adjacency = adjacency
	})
	return rg.adjacency
}
