package osmnav

import (
	"context"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// ContractedGraph answers shortest path queries on contraction hierarchies built over RoutingGraph.
// Weights are the same travel times (minutes) as used by RoutingGraph.ShortestPath
type ContractedGraph struct {
	rg     *RoutingGraph
	graph  ch.Graph
	labels map[VertexID]int64
	ids    []VertexID
}

// Contract prepares contraction hierarchies for the graph. It could take a while for large graphs
func (rg *RoutingGraph) Contract() (*ContractedGraph, error) {
	cg := &ContractedGraph{
		rg:     rg,
		graph:  ch.Graph{},
		labels: make(map[VertexID]int64, len(rg.order)),
		ids:    make([]VertexID, 0, len(rg.order)),
	}
	for i, id := range rg.order {
		label := int64(i)
		err := cg.graph.CreateVertex(label)
		if err != nil {
			return nil, errors.Wrapf(err, "can't create vertex '%s'", id)
		}
		cg.labels[id] = label
		cg.ids = append(cg.ids, id)
	}

	// Parallel edges are collapsed into the fastest one
	weights := make(map[[2]int64]float64)
	order := [][2]int64{}
	addArc := func(source, target int64, minutes float64) {
		key := [2]int64{source, target}
		if old, ok := weights[key]; ok {
			if minutes < old {
				weights[key] = minutes
			}
			return
		}
		weights[key] = minutes
		order = append(order, key)
	}
	adjacency := rg.arcs()
	for _, id := range rg.order {
		source := cg.labels[id]
		for _, a := range adjacency[id] {
			addArc(source, cg.labels[a.to], a.minutes)
		}
	}
	for _, key := range order {
		err := cg.graph.AddEdge(key[0], key[1], weights[key])
		if err != nil {
			return nil, errors.Wrapf(err, "can't add edge '%s' -> '%s'", cg.ids[key[0]], cg.ids[key[1]])
		}
	}

	rg.logger.Debug("Starting contraction process...")
	st := time.Now()
	cg.graph.PrepareContractionHierarchies()
	rg.logger.Debug("Contraction process done", "elapsed", time.Since(st))
	return cg, nil
}

// ShortestPath returns fastest path between two vertices. Context is checked before query only:
// bidirectional search on contracted graph is not interruptible
func (cg *ContractedGraph) ShortestPath(ctx context.Context, from, to VertexID) (Path, error) {
	source, ok := cg.labels[from]
	if !ok {
		return Path{}, errors.Wrapf(ErrVertexNotFound, "source '%s'", from)
	}
	target, ok := cg.labels[to]
	if !ok {
		return Path{}, errors.Wrapf(ErrVertexNotFound, "target '%s'", to)
	}
	if from == to {
		return Path{Vertices: []VertexID{from}, Minutes: 0}, nil
	}
	if err := ctx.Err(); err != nil {
		return Path{}, errors.Wrapf(err, "search %s -> %s interrupted", from, to)
	}
	cost, labels := cg.graph.ShortestPath(source, target)
	if cost < 0 || len(labels) == 0 {
		return Path{}, errors.Wrapf(ErrNoPath, "%s -> %s", from, to)
	}
	path := Path{
		Vertices: make([]VertexID, len(labels)),
		Minutes:  cost,
	}
	for i, label := range labels {
		path.Vertices[i] = cg.ids[label]
	}
	return path, nil
}
