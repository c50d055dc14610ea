package osmnav

import (
	"github.com/pkg/errors"
)

// Highlight keeps emphasized vertices and edges for diagram export. It never touches graph topology
type Highlight struct {
	rg       *RoutingGraph
	vertices map[VertexID]struct{}
	edges    map[edgeKey]struct{}
}

// NewHighlight returns empty highlight for given graph
func NewHighlight(rg *RoutingGraph) *Highlight {
	return &Highlight{
		rg:       rg,
		vertices: make(map[VertexID]struct{}),
		edges:    make(map[edgeKey]struct{}),
	}
}

// HighlightVertices marks given vertices. Fails on the first unknown vertex
func (hl *Highlight) HighlightVertices(ids ...VertexID) error {
	for _, id := range ids {
		if _, ok := hl.rg.Vertex(id); !ok {
			return errors.Wrapf(ErrVertexNotFound, "vertex with id '%s' does not exist", id)
		}
		hl.vertices[id] = struct{}{}
	}
	return nil
}

// HighlightPath marks edges between consecutive vertices of path
func (hl *Highlight) HighlightPath(path Path) error {
	if len(path.Vertices) < 2 {
		return nil
	}
	known := make(map[edgeKey]struct{}, len(hl.rg.geoEdges))
	for _, edge := range hl.rg.geoEdges {
		known[newEdgeKey(edge.Edge.V1, edge.Edge.V2)] = struct{}{}
	}
	for i := 0; i < len(path.Vertices)-1; i++ {
		key := newEdgeKey(path.Vertices[i], path.Vertices[i+1])
		if _, ok := known[key]; !ok {
			return errors.Wrapf(ErrInvalidEdge, "no edge between '%s' and '%s'", path.Vertices[i], path.Vertices[i+1])
		}
		hl.edges[key] = struct{}{}
	}
	return nil
}

// VertexHighlighted checks if vertex is marked
func (hl *Highlight) VertexHighlighted(id VertexID) bool {
	if hl == nil {
		return false
	}
	_, ok := hl.vertices[id]
	return ok
}

// EdgeEmphasized checks if edge is marked. Direction does not matter
func (hl *Highlight) EdgeEmphasized(edge Edge) bool {
	if hl == nil {
		return false
	}
	_, ok := hl.edges[newEdgeKey(edge.V1, edge.V2)]
	return ok
}
