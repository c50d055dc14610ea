package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/LdDl/osmnav"
)

// app holds state shared by all commands
type app struct {
	cfg    config
	logger *log.Logger
	closer io.Closer
	stderr io.Writer
}

// execute runs the osmnav CLI with given arguments. Results go to stdout, log messages go to stderr
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if a.closer != nil {
		a.closer.Close()
	}
	if err != nil {
		if a.logger != nil {
			a.logger.Error(err.Error())
		} else {
			fmt.Fprintln(a.stderr, styleError.Render(err.Error()))
		}
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	var (
		configPath   string
		verbose      bool
		logFile      string
		tags         string
		entity       string
		defaultSpeed float64
		strict       bool
		metric       string
		engine       string
		timeout      string
	)

	root := &cobra.Command{
		Use:   "osmnav",
		Short: "osmnav finds fastest routes on OpenStreetMap road networks",
		Long: `osmnav loads road network from OSM (.osm, .xml, .pbf) or Graphviz (.dot, .gv) file,
keeps its largest connected component and answers fastest path queries between vertices or coordinates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("verbose") {
				cfg.Log.Verbose = verbose
			}
			if flags.Changed("log-file") {
				cfg.Log.File = logFile
			}
			if flags.Changed("tags") {
				cfg.Map.Tags = splitTags(tags)
			}
			if flags.Changed("entity") {
				cfg.Map.Entity = entity
			}
			if flags.Changed("default-speed") {
				cfg.Map.DefaultSpeed = defaultSpeed
			}
			if flags.Changed("strict") {
				cfg.Map.Strict = strict
			}
			if flags.Changed("metric") {
				cfg.Routing.Metric = metric
			}
			if flags.Changed("engine") {
				cfg.Routing.Engine = engine
			}
			if flags.Changed("timeout") {
				cfg.Routing.Timeout = timeout
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			level := log.InfoLevel
			if cfg.Log.Verbose {
				level = log.DebugLevel
			}
			logger, closer, err := newLogger(a.stderr, cfg.Log.File, level)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			a.closer = closer
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML configuration file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&logFile, "log-file", "log/logfile.log", "Duplicate log into file (empty to disable)")
	pf.StringVar(&tags, "tags", strings.Join(osmnav.DefaultHighwayTags, ","), "Set of allowed road-category values (separated by commas)")
	pf.StringVar(&entity, "entity", "highway", "Key of road-category tag")
	pf.Float64Var(&defaultSpeed, "default-speed", osmnav.DefaultSpeed, "Speed (km/h) for edges without explicit one")
	pf.BoolVar(&strict, "strict", false, "Abort loading when way references missing node")
	pf.StringVar(&metric, "metric", osmnav.METRIC_HAVERSINE.String(), "Distance metric. Expected values: haversine / planar")
	pf.StringVar(&engine, "engine", engineDijkstra, "Shortest path engine. Expected values: dijkstra / ch")
	pf.StringVar(&timeout, "timeout", "1m", "Timeout of a single route search (0 to disable)")

	root.AddCommand(a.exportCommand())
	root.AddCommand(a.showNodesCommand())
	root.AddCommand(a.midistCommand())
	root.AddCommand(a.serveCommand())

	return root
}

func splitTags(str string) []string {
	tags := []string{}
	for _, tag := range strings.Split(str, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// loadGraph loads map file according to configuration
func (a *app) loadGraph(ctx context.Context, filename string) (*osmnav.RoutingGraph, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, errors.Errorf("file %s does not exist", filename)
	}
	metric, err := osmnav.ParseDistanceMetric(a.cfg.Routing.Metric)
	if err != nil {
		return nil, err
	}
	parser := osmnav.NewParser(
		filename,
		osmnav.WithEntityName(a.cfg.Map.Entity),
		osmnav.WithHighwayTags(a.cfg.Map.Tags),
		osmnav.WithDefaultSpeed(a.cfg.Map.DefaultSpeed),
		osmnav.WithStrictMode(a.cfg.Map.Strict),
		osmnav.WithDistanceMetric(metric),
		osmnav.WithLogger(a.logger),
	)
	a.logger.Debug(parser.String())
	_, rg, err := parser.Load(ctx)
	if err != nil {
		return nil, err
	}
	return rg, nil
}

// router returns query engine selected by configuration
func (a *app) router(rg *osmnav.RoutingGraph) (osmnav.Router, error) {
	if a.cfg.Routing.Engine != engineCH {
		return rg, nil
	}
	contracted, err := rg.Contract()
	if err != nil {
		return nil, errors.Wrap(err, "can't prepare contraction hierarchies")
	}
	return contracted, nil
}

// queryContext bounds single route search with configured timeout
func (a *app) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout, _ := a.cfg.timeout()
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
