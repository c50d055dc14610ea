package osmnav

import (
	"github.com/pkg/errors"
)

// Graph is topology of road network: vertices and ordered edges
type Graph struct {
	Vertices map[VertexID]Vertex
	Edges    []Edge
}

// NewGraph returns graph after checking that every edge's endpoints are present in vertices
func NewGraph(vertices map[VertexID]Vertex, edges []Edge) (*Graph, error) {
	for i := range edges {
		if _, ok := vertices[edges[i].V1]; !ok {
			return nil, errors.Wrapf(ErrVertexNotFound, "edge #%d source '%s'", i, edges[i].V1)
		}
		if _, ok := vertices[edges[i].V2]; !ok {
			return nil, errors.Wrapf(ErrVertexNotFound, "edge #%d target '%s'", i, edges[i].V2)
		}
	}
	return &Graph{
		Vertices: vertices,
		Edges:    edges,
	}, nil
}

// HasVertex checks if vertex exists
func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.Vertices[id]
	return ok
}
