package ctf

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Config holds the solving policy and the report switch.
type Config struct {
	// base CTF time step
	TimeStep Interval
	// the time step may be widened in multiples of TimeStep up to this, h
	MaxTimeStep float64

	// largest history order N a CTF set may have
	MaxTerms int
	// discarded history weight allowed, relative to the retained weight
	RelativeTolerance float64

	MinNodesPerLayer int
	MaxTotalNodes    int
	// node spacing is sqrt(NodeSpacingFactor * diffusivity * time step)
	NodeSpacingFactor float64

	// user request for the constructions report
	ShowReport bool

	// 0 uses MaxParallelism
	Workers int
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		TimeStep:          IntervalM15,
		MaxTimeStep:       4.0,
		MaxTerms:          19,
		RelativeTolerance: 1.0e-4,
		MinNodesPerLayer:  6,
		MaxTotalNodes:     75,
		NodeSpacingFactor: 3.0,
		ShowReport:        false,
		Workers:           0,
	}
}

// LoadConfig reads an ini file; missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return loadConfig(file)
}

func loadConfig(file *ini.File) (Config, error) {
	d := DefaultConfig()

	ctf := file.Section("ctf")
	itv, err := ParseInterval(ctf.Key("time_step").MustString(string(d.TimeStep)))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		TimeStep:          itv,
		MaxTimeStep:       ctf.Key("max_time_step").MustFloat64(d.MaxTimeStep),
		MaxTerms:          ctf.Key("max_terms").MustInt(d.MaxTerms),
		RelativeTolerance: ctf.Key("relative_tolerance").MustFloat64(d.RelativeTolerance),
		MinNodesPerLayer:  ctf.Key("min_nodes_per_layer").MustInt(d.MinNodesPerLayer),
		MaxTotalNodes:     ctf.Key("max_total_nodes").MustInt(d.MaxTotalNodes),
		NodeSpacingFactor: ctf.Key("node_spacing_factor").MustFloat64(d.NodeSpacingFactor),
		ShowReport:        file.Section("report").Key("constructions").MustBool(d.ShowReport),
		Workers:           file.Section("run").Key("workers").MustInt(d.Workers),
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if _, err := ParseInterval(string(c.TimeStep)); err != nil {
		return err
	}
	if c.MaxTimeStep < c.TimeStep.Hours() {
		return fmt.Errorf("max_time_step %g h is shorter than time_step %s", c.MaxTimeStep, c.TimeStep)
	}
	if c.MaxTerms < 1 {
		return fmt.Errorf("max_terms must be at least 1, got %d", c.MaxTerms)
	}
	if c.RelativeTolerance <= 0.0 {
		return fmt.Errorf("relative_tolerance must be positive, got %g", c.RelativeTolerance)
	}
	if c.MaxTotalNodes < 1 {
		return fmt.Errorf("max_total_nodes must be at least 1, got %d", c.MaxTotalNodes)
	}
	if c.NodeSpacingFactor <= 0.0 {
		return fmt.Errorf("node_spacing_factor must be positive, got %g", c.NodeSpacingFactor)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
