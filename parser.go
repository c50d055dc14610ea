package osmnav

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Parser loads graph from map file. Map type is guessed by file extension
type Parser struct {
	filename   string
	cfg        *OsmConfiguration
	strictMode bool
	metric     DistanceMetric
	logger     *log.Logger
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Graph parser parameters:
	filename: '%s'
	entity: '%s'
	tags: '%s'
	default_speed: %f
	strict_mode enabled?: %t
	metric: '%s'
	`,
		parser.filename,
		parser.cfg.EntityName,
		strings.Join(parser.cfg.Tags, ","),
		parser.cfg.DefaultSpeed,
		parser.strictMode,
		parser.metric,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename:   fileName,
		cfg:        NewOsmConfiguration(nil),
		strictMode: false,
		metric:     METRIC_HAVERSINE,
		logger:     log.New(io.Discard),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

// WithHighwayTags sets allowed values of 'highway' tag
func WithHighwayTags(tags []string) func(*Parser) {
	return func(parser *Parser) {
		if len(tags) > 0 {
			parser.cfg.Tags = tags
		}
	}
}

// WithEntityName sets key of road-category tag
func WithEntityName(entityName string) func(*Parser) {
	return func(parser *Parser) {
		if entityName != "" {
			parser.cfg.EntityName = entityName
		}
	}
}

// WithDefaultSpeed sets speed (km/h) for edges without explicit one
func WithDefaultSpeed(defaultSpeed float64) func(*Parser) {
	return func(parser *Parser) {
		parser.cfg.DefaultSpeed = defaultSpeed
	}
}

// WithStrictMode makes dangling references abort loading instead of skipping the edge
func WithStrictMode(strictMode bool) func(*Parser) {
	return func(parser *Parser) {
		parser.strictMode = strictMode
	}
}

// WithDistanceMetric sets metric of resulting routing graph
func WithDistanceMetric(metric DistanceMetric) func(*Parser) {
	return func(parser *Parser) {
		parser.metric = metric
	}
}

func WithLogger(logger *log.Logger) func(*Parser) {
	return func(parser *Parser) {
		if logger != nil {
			parser.logger = logger
		}
	}
}

// Load reads map file and returns both topology and routing graph
func (parser *Parser) Load(ctx context.Context) (*Graph, *RoutingGraph, error) {
	if parser.cfg.DefaultSpeed <= 0 {
		return nil, nil, errors.Errorf("default speed must be positive, got %f", parser.cfg.DefaultSpeed)
	}
	ext := strings.ToLower(filepath.Ext(parser.filename))
	switch ext {
	case ".osm", ".xml", ".pbf":
		return parser.loadOSM(ctx, ext)
	case ".dot", ".gv":
		return parser.loadDOT()
	default:
		return nil, nil, errors.Wrapf(ErrUnsupportedFormat, "input file type '%s' of '%s' is not recognized", ext, parser.filename)
	}
}

func (parser *Parser) loadOSM(ctx context.Context, ext string) (*Graph, *RoutingGraph, error) {
	if parser.cfg.EntityName == "highway" {
		if unknown := parser.cfg.unknownTags(); len(unknown) > 0 {
			parser.logger.Warn("Highway values in configuration are not drivable by car", "tags", unknown)
		}
	}
	parser.logger.Info("Loading graph from OSM file", "file", parser.filename)
	st := time.Now()
	file, err := os.Open(parser.filename)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't open OSM file")
	}
	defer file.Close()

	dataOSM, err := readOSM(ctx, file, ext, parser.cfg, parser.logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't parse OSM data")
	}
	graph, geoVertices, err := dataOSM.prepareGraph(parser.cfg, parser.strictMode, parser.logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't prepare road network")
	}
	bounds, err := ComputeBounds(geoVertices)
	if err != nil {
		return nil, nil, err
	}
	rg, err := NewRoutingGraph(graph, geoVertices, bounds, WithMetric(parser.metric), WithRoutingLogger(parser.logger))
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't prepare routing graph")
	}
	parser.logger.Info("Graph loaded", "vertices", len(graph.Vertices), "edges", len(graph.Edges), "elapsed", time.Since(st))
	return graph, rg, nil
}

func (parser *Parser) loadDOT() (*Graph, *RoutingGraph, error) {
	parser.logger.Info("Loading graph from GraphViz file", "file", parser.filename)
	st := time.Now()
	file, err := os.Open(parser.filename)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't open GraphViz file")
	}
	defer file.Close()

	diagram, err := ReadDiagram(file, parser.cfg.DefaultSpeed, parser.strictMode, parser.logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't parse GraphViz data")
	}
	graph, rg, err := diagram.RoutingGraph(WithMetric(parser.metric), WithRoutingLogger(parser.logger))
	if err != nil {
		return nil, nil, err
	}
	parser.logger.Info("Graph loaded", "vertices", len(graph.Vertices), "edges", len(graph.Edges), "elapsed", time.Since(st))
	return graph, rg, nil
}
