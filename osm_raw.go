package osmnav

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// osmNode is the subset of osm.Node the loader needs
type osmNode struct {
	ID  osm.NodeID
	Lat float64
	Lon float64
}

// wayData is filtered way: only its node references are kept
type wayData struct {
	ID    osm.WayID
	Nodes []osm.NodeID
}

// OSMDataRaw is result of scanning OSM document
type OSMDataRaw struct {
	nodes map[osm.NodeID]osmNode
	ways  []wayData
}

func newOSMScanner(ctx context.Context, ext string, reader io.Reader) (OSMScanner, error) {
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, reader), nil
	case ".pbf":
		return osmpbf.New(ctx, reader, 4), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "extension '%s' is not handled for OSM data", ext)
	}
}

// readOSM scans document twice: first for ways that pass configuration filter, then for nodes referenced by those ways
func readOSM(ctx context.Context, file io.ReadSeeker, ext string, cfg *OsmConfiguration, logger *log.Logger) (*OSMDataRaw, error) {
	/* Process ways */
	logger.Debug("Processing ways...")
	st := time.Now()
	ways := []wayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(ctx, ext, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()

		for scannerWays.Scan() {
			way, ok := scannerWays.Object().(*osm.Way)
			if !ok {
				continue
			}
			tag := way.Tags.Find(cfg.EntityName)
			if tag == "" || !cfg.CheckTag(tag) {
				continue
			}
			preparedWay := wayData{
				ID:    way.ID,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
			}
			// Mark way's nodes as seen to skip unused nodes in further
			for _, node := range way.Nodes {
				if node.ID == 0 {
					return nil, errors.Errorf("way %d contains 'nd' without 'ref'", way.ID)
				}
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
			}
			ways = append(ways, preparedWay)
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "scanner error on ways")
		}
	}
	logger.Debug("Processing ways done", "ways", len(ways), "elapsed", time.Since(st))

	// Seek file to start
	_, err := file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	logger.Debug("Processing nodes...")
	st = time.Now()
	nodes := make(map[osm.NodeID]osmNode, len(nodesSeen))
	{
		scannerNodes, err := newOSMScanner(ctx, ext, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()

		for scannerNodes.Scan() {
			node, ok := scannerNodes.Object().(*osm.Node)
			if !ok {
				continue
			}
			if _, ok := nodesSeen[node.ID]; !ok {
				continue
			}
			if node.Lat < -90 || node.Lat > 90 || node.Lon < -180 || node.Lon > 180 {
				return nil, errors.Errorf("node %d has position out of range: lat=%f lon=%f", node.ID, node.Lat, node.Lon)
			}
			delete(nodesSeen, node.ID)
			nodes[node.ID] = osmNode{
				ID:  node.ID,
				Lat: node.Lat,
				Lon: node.Lon,
			}
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "scanner error on nodes")
		}
	}
	logger.Debug("Processing nodes done", "nodes", len(nodes), "missing", len(nodesSeen), "elapsed", time.Since(st))

	return &OSMDataRaw{
		nodes: nodes,
		ways:  ways,
	}, nil
}
