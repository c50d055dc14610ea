package osmnav

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// prepareGraph synthesizes edges from consecutive way nodes and keeps the largest connected component only
func (data *OSMDataRaw) prepareGraph(cfg *OsmConfiguration, strictMode bool, logger *log.Logger) (*Graph, []*GeoVertex, error) {
	logger.Debug("Preparing edges...")
	st := time.Now()
	adjacency := NewAdjacency()
	edges := make([]Edge, 0, len(data.ways))
	positions := make(map[VertexID]osmNode)
	skipped := 0
	for _, way := range data.ways {
		for i := 0; i < len(way.Nodes)-1; i++ {
			source, target := way.Nodes[i], way.Nodes[i+1]
			if source == target {
				continue
			}
			sourceNode, okSource := data.nodes[source]
			targetNode, okTarget := data.nodes[target]
			if !okSource || !okTarget {
				missing := source
				if okSource {
					missing = target
				}
				if strictMode {
					return nil, nil, errors.Wrapf(ErrMissingNode, "way %d references node %d", way.ID, missing)
				}
				logger.Warn("Skipping edge with missing node", "way", way.ID, "node", missing)
				skipped++
				continue
			}
			v1, v2 := vertexIDFromNode(source), vertexIDFromNode(target)
			edges = append(edges, Edge{
				V1:       v1,
				V2:       v2,
				MaxSpeed: cfg.DefaultSpeed,
				OneWay:   false,
			})
			adjacency.Connect(v1, v2)
			positions[v1] = sourceNode
			positions[v2] = targetNode
		}
	}
	logger.Debug("Preparing edges done", "edges", len(edges), "skipped", skipped, "elapsed", time.Since(st))
	if adjacency.Len() == 0 {
		return nil, nil, errors.Wrapf(ErrEmptyGraph, "no ways with '%s' in %v", cfg.EntityName, cfg.Tags)
	}

	logger.Debug("Searching for the largest component...")
	st = time.Now()
	components := ConnectedComponents(adjacency)
	largest := LargestComponent(components)
	keep := make(map[VertexID]struct{}, len(largest))
	for _, v := range largest {
		keep[v] = struct{}{}
	}
	logger.Debug("Searching for the largest component done", "components", len(components), "vertices", len(largest), "elapsed", time.Since(st))

	vertices := make(map[VertexID]Vertex, len(keep))
	geoVertices := make([]*GeoVertex, 0, len(keep))
	for _, vid := range adjacency.order {
		if _, ok := keep[vid]; !ok {
			continue
		}
		node := positions[vid]
		vertices[vid] = Vertex{ID: vid}
		geoVertices = append(geoVertices, &GeoVertex{
			ID:  vid,
			Lat: node.Lat,
			Lon: node.Lon,
			X:   node.Lon,
			Y:   node.Lat,
		})
	}
	filtered := make([]Edge, 0, len(edges))
	for _, edge := range edges {
		_, okV1 := keep[edge.V1]
		_, okV2 := keep[edge.V2]
		if okV1 && okV2 {
			filtered = append(filtered, edge)
		}
	}

	graph, err := NewGraph(vertices, filtered)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't build graph")
	}
	return graph, geoVertices, nil
}

