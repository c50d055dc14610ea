package osmnav

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestContractedAgreesWithDijkstra(t *testing.T) {
	vertices := []testVertex{
		{"1", 55.750, 37.600},
		{"2", 55.751, 37.605},
		{"3", 55.752, 37.611},
		{"4", 55.748, 37.607},
		{"5", 55.745, 37.612},
		{"6", 55.755, 37.603},
		{"7", 55.757, 37.614},
	}
	edges := []Edge{
		{V1: "1", V2: "2", MaxSpeed: 40},
		{V1: "2", V2: "3", MaxSpeed: 60},
		{V1: "1", V2: "4", MaxSpeed: 60},
		{V1: "4", V2: "5", MaxSpeed: 90},
		{V1: "5", V2: "3", MaxSpeed: 20},
		{V1: "2", V2: "4"},
		{V1: "1", V2: "6", MaxSpeed: 30},
		{V1: "6", V2: "7", MaxSpeed: 90},
		{V1: "7", V2: "3", MaxSpeed: 90},
		{V1: "6", V2: "2", OneWay: true},
		// Parallel edge: the faster one wins
		{V1: "4", V2: "5", MaxSpeed: 30},
	}
	rg := buildRoutingGraph(t, vertices, edges)
	cg, err := rg.Contract()
	if err != nil {
		t.Fatalf("Can't contract graph: %s", err)
	}
	ctx := context.Background()
	for _, from := range vertices {
		for _, to := range vertices {
			expected, err := rg.ShortestPath(ctx, from.id, to.id)
			if err != nil {
				t.Fatalf("Dijkstra %s -> %s: %s", from.id, to.id, err)
			}
			got, err := cg.ShortestPath(ctx, from.id, to.id)
			if err != nil {
				t.Fatalf("Contracted %s -> %s: %s", from.id, to.id, err)
			}
			if math.Abs(expected.Minutes-got.Minutes) > 1e-9 {
				t.Errorf("Travel time %s -> %s must be %f, but got %f", from.id, to.id, expected.Minutes, got.Minutes)
			}
			if got.Vertices[0] != from.id || got.Vertices[len(got.Vertices)-1] != to.id {
				t.Errorf("Path %s -> %s has wrong endpoints: %v", from.id, to.id, got.Vertices)
			}
		}
	}
}

func TestContractedNoPath(t *testing.T) {
	rg := buildRoutingGraph(t, squareVertices, []Edge{{V1: "A", V2: "B"}, {V1: "C", V2: "D"}})
	cg, err := rg.Contract()
	if err != nil {
		t.Fatalf("Can't contract graph: %s", err)
	}
	if _, err := cg.ShortestPath(context.Background(), "A", "D"); !errors.Is(err, ErrNoPath) {
		t.Errorf("Disconnected vertices must produce ErrNoPath, but got %v", err)
	}
	if _, err := cg.ShortestPath(context.Background(), "A", "Z"); !errors.Is(err, ErrVertexNotFound) {
		t.Errorf("Unknown vertex must produce ErrVertexNotFound, but got %v", err)
	}
}
