package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	voronoi "github.com/arl/go-voronoi"
)

// BoxConfig is the box section of a config file. The info command echoes
// it; the build, lloyd and seed-from-obj commands do not apply it, since
// voronoi.Build always clips to voronoi.CanonicalBox. The zero value is not
// a valid box; use defaultConfig for a ready-to-use one.
type BoxConfig struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// Config is the YAML-loaded settings for the build, lloyd and info
// subcommands. There is deliberately no Epsilon field: the sweep's
// tolerance is an internal tuning constant, not something a config file
// may override, so loadConfig rejects any YAML document that sets one.
type Config struct {
	Sites           int       `yaml:"sites"`
	Seed            int64     `yaml:"seed"`
	Box             BoxConfig `yaml:"box"`
	LloydIterations int       `yaml:"lloyd_iterations"`
	ObjOut          string    `yaml:"obj_out"`
}

// defaultConfig returns the settings used when no --config file is given.
func defaultConfig() Config {
	return Config{
		Sites:           200,
		Seed:            1,
		Box:             BoxConfig(voronoi.CanonicalBox),
		LloydIterations: 0,
		ObjOut:          "",
	}
}

// loadConfig reads and validates a YAML config file at path. Unrecognized
// keys (including a stray "epsilon") are a hard error, via
// yaml.UnmarshalStrict, rather than silently ignored.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func (c Config) box() voronoi.Box {
	return voronoi.Box{Left: c.Box.Left, Right: c.Box.Right, Top: c.Box.Top, Bottom: c.Box.Bottom}
}
