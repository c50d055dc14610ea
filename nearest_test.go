package osmnav

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNearestVertexSingle(t *testing.T) {
	rg := buildRoutingGraph(t, []testVertex{{"only", 0, 0}}, nil)
	id, err := rg.NearestVertex(1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if id != "only" {
		t.Errorf("Nearest vertex must be 'only', but got '%s'", id)
	}
}

func TestNearestVertexEmpty(t *testing.T) {
	rg := buildRoutingGraph(t, nil, nil)
	if _, err := rg.NearestVertex(1, 1); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("Empty graph must produce ErrEmptyGraph, but got %v", err)
	}
}

func TestNearestVertexDependsOnMetric(t *testing.T) {
	// 1.5 degrees of longitude at 60N is ~83 km, 1 degree of latitude is ~111 km
	vertices := []testVertex{
		{"A", 60, 1.5},
		{"B", 61, 0},
	}
	cases := []struct {
		metric   DistanceMetric
		expected VertexID
	}{
		{METRIC_HAVERSINE, "A"},
		{METRIC_PLANAR, "B"},
	}
	for _, c := range cases {
		rg := buildRoutingGraph(t, vertices, nil, WithMetric(c.metric))
		id, err := rg.NearestVertex(60, 0)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if id != c.expected {
			t.Errorf("Nearest vertex with %s metric must be %s, but got %s", c.metric, c.expected, id)
		}
	}
}

func TestNearestVertexTieIsFirst(t *testing.T) {
	rg := buildRoutingGraph(t, []testVertex{{"east", 0, 1}, {"west", 0, -1}}, nil)
	id, err := rg.NearestVertex(0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if id != "east" {
		t.Errorf("Tie must be resolved to the first vertex, but got '%s'", id)
	}
}
