package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/askeland/multistep/internal/ode"
)

type Config struct {
	Problem string  `yaml:"problem"`
	Solver  string  `yaml:"solver"`
	Nout    int     `yaml:"nout"`
	Tstep   float64 `yaml:"tstep"`

	ATol            float64 `yaml:"atol"`
	RTol            float64 `yaml:"rtol"`
	MaxTimestep     float64 `yaml:"max_timestep"`
	MinTimestep     float64 `yaml:"min_timestep"`
	StartTimestep   float64 `yaml:"start_timestep"`
	MXStep          int     `yaml:"mxstep"`
	MaxRejects      int     `yaml:"max_rejects"`
	Adaptive        bool    `yaml:"adaptive"`
	AdaptiveOrder   bool    `yaml:"adaptive_order"`
	MaximumOrder    int     `yaml:"maximum_order"`
	DtFac           float64 `yaml:"dtfac"`
	RejectShrink    float64 `yaml:"reject_shrink"`
	FollowHighOrder bool    `yaml:"follow_high_order"`

	OrderWindow         int     `yaml:"order_window"`
	OrderRaiseThreshold float64 `yaml:"order_raise_threshold"`
	OrderLowerThreshold float64 `yaml:"order_lower_threshold"`
}

func DefaultConfig() *Config {
	opts := ode.DefaultOptions()
	return &Config{
		Problem:             "decay",
		Solver:              "adams-bashforth",
		Nout:                10,
		Tstep:               0.1,
		ATol:                opts.ATol,
		RTol:                opts.RTol,
		MaxTimestep:         opts.MaxTimestep,
		MinTimestep:         opts.MinTimestep,
		StartTimestep:       opts.StartTimestep,
		MXStep:              opts.MXStep,
		MaxRejects:          opts.MaxRejects,
		Adaptive:            opts.Adaptive,
		AdaptiveOrder:       opts.AdaptiveOrder,
		MaximumOrder:        opts.MaximumOrder,
		DtFac:               opts.DtFac,
		RejectShrink:        opts.RejectShrink,
		FollowHighOrder:     opts.FollowHighOrder,
		OrderWindow:         opts.OrderWindow,
		OrderRaiseThreshold: opts.OrderRaiseThreshold,
		OrderLowerThreshold: opts.OrderLowerThreshold,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options maps the file config onto the solver options.
func (c *Config) Options() ode.Options {
	return ode.Options{
		ATol:                c.ATol,
		RTol:                c.RTol,
		MaxTimestep:         c.MaxTimestep,
		MinTimestep:         c.MinTimestep,
		StartTimestep:       c.StartTimestep,
		MXStep:              c.MXStep,
		MaxRejects:          c.MaxRejects,
		Adaptive:            c.Adaptive,
		AdaptiveOrder:       c.AdaptiveOrder,
		MaximumOrder:        c.MaximumOrder,
		DtFac:               c.DtFac,
		RejectShrink:        c.RejectShrink,
		FollowHighOrder:     c.FollowHighOrder,
		OrderWindow:         c.OrderWindow,
		OrderRaiseThreshold: c.OrderRaiseThreshold,
		OrderLowerThreshold: c.OrderLowerThreshold,
	}
}
