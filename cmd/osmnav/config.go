package main

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/LdDl/osmnav"
)

// config is content of TOML configuration file. Command line flags take precedence
type config struct {
	Map     mapConfig     `toml:"map"`
	Routing routingConfig `toml:"routing"`
	Log     logConfig     `toml:"log"`
	Server  serverConfig  `toml:"server"`
}

type mapConfig struct {
	Entity       string   `toml:"entity"`
	Tags         []string `toml:"tags"`
	DefaultSpeed float64  `toml:"default_speed"`
	Strict       bool     `toml:"strict"`
}

type routingConfig struct {
	Metric  string `toml:"metric"`
	Engine  string `toml:"engine"`
	Timeout string `toml:"timeout"`
}

type logConfig struct {
	File    string `toml:"file"`
	Verbose bool   `toml:"verbose"`
}

type serverConfig struct {
	Addr string `toml:"addr"`
}

const (
	engineDijkstra = "dijkstra"
	engineCH       = "ch"
)

func defaultConfig() config {
	return config{
		Map: mapConfig{
			Entity:       "highway",
			Tags:         append([]string{}, osmnav.DefaultHighwayTags...),
			DefaultSpeed: osmnav.DefaultSpeed,
		},
		Routing: routingConfig{
			Metric:  osmnav.METRIC_HAVERSINE.String(),
			Engine:  engineDijkstra,
			Timeout: "1m",
		},
		Log: logConfig{
			File: "log/logfile.log",
		},
		Server: serverConfig{
			Addr: ":8080",
		},
	}
}

// loadConfig decodes file on top of defaults. Empty path means defaults only
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "can't decode config '%s'", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown keys in config '%s': %v", path, undecoded)
	}
	return cfg, nil
}

func (cfg config) validate() error {
	if _, err := osmnav.ParseDistanceMetric(cfg.Routing.Metric); err != nil {
		return err
	}
	switch cfg.Routing.Engine {
	case engineDijkstra, engineCH:
	default:
		return errors.Errorf("unknown engine '%s'. Expected values: dijkstra / ch", cfg.Routing.Engine)
	}
	if _, err := cfg.timeout(); err != nil {
		return err
	}
	if cfg.Map.DefaultSpeed <= 0 {
		return errors.Errorf("default speed must be positive, got %f", cfg.Map.DefaultSpeed)
	}
	return nil
}

// timeout of a single route search. Zero disables it
func (cfg config) timeout() (time.Duration, error) {
	if cfg.Routing.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Routing.Timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "bad timeout '%s'", cfg.Routing.Timeout)
	}
	return d, nil
}
