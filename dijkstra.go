package osmnav

import (
	"container/heap"
	"context"

	"github.com/pkg/errors"
)

// Path is result of shortest path query
type Path struct {
	Vertices []VertexID
	// Minutes is total travel time
	Minutes float64
}

// Router is the query contract shared by plain Dijkstra search and contracted graph
type Router interface {
	ShortestPath(ctx context.Context, from, to VertexID) (Path, error)
}

// ShortestPath returns fastest path between two vertices. Returns ErrNoPath when target is unreachable
func (rg *RoutingGraph) ShortestPath(ctx context.Context, from, to VertexID) (Path, error) {
	if _, ok := rg.geoVertices[from]; !ok {
		return Path{}, errors.Wrapf(ErrVertexNotFound, "source '%s'", from)
	}
	if _, ok := rg.geoVertices[to]; !ok {
		return Path{}, errors.Wrapf(ErrVertexNotFound, "target '%s'", to)
	}
	if from == to {
		return Path{Vertices: []VertexID{from}, Minutes: 0}, nil
	}

	adjacency := rg.arcs()
	distances := make(map[VertexID]float64, len(rg.order))
	predecessors := make(map[VertexID]VertexID)
	settled := make(map[VertexID]struct{}, len(rg.order))

	distances[from] = 0
	pq := &vertexDistHeap{}
	heap.Init(pq)
	heap.Push(pq, &vertexDist{id: from, dist: 0})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Path{}, errors.Wrapf(err, "search %s -> %s interrupted", from, to)
		}
		current := heap.Pop(pq).(*vertexDist)
		if _, ok := settled[current.id]; ok {
			continue
		}
		settled[current.id] = struct{}{}
		if current.id == to {
			return Path{
				Vertices: reconstructPath(predecessors, from, to),
				Minutes:  current.dist,
			}, nil
		}
		for _, a := range adjacency[current.id] {
			if _, ok := settled[a.to]; ok {
				continue
			}
			newDist := current.dist + a.minutes
			if old, ok := distances[a.to]; !ok || newDist < old {
				distances[a.to] = newDist
				predecessors[a.to] = current.id
				heap.Push(pq, &vertexDist{id: a.to, dist: newDist})
			}
		}
	}
	return Path{}, errors.Wrapf(ErrNoPath, "%s -> %s", from, to)
}

// ShortestPathPositions resolves nearest vertices for both positions and searches path between them
func (rg *RoutingGraph) ShortestPathPositions(ctx context.Context, lat1, lon1, lat2, lon2 float64) (Path, error) {
	from, err := rg.NearestVertex(lat1, lon1)
	if err != nil {
		return Path{}, err
	}
	to, err := rg.NearestVertex(lat2, lon2)
	if err != nil {
		return Path{}, err
	}
	return rg.ShortestPath(ctx, from, to)
}

// reconstructPath follows predecessors from target back to source
func reconstructPath(predecessors map[VertexID]VertexID, from, to VertexID) []VertexID {
	path := []VertexID{to}
	for current := to; current != from; {
		current = predecessors[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type vertexDist struct {
	id   VertexID
	dist float64
}

type vertexDistHeap []*vertexDist

func (h vertexDistHeap) Len() int           { return len(h) }
func (h vertexDistHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h vertexDistHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *vertexDistHeap) Push(x interface{}) {
	*h = append(*h, x.(*vertexDist))
}

func (h *vertexDistHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
