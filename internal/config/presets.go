package config

import "sort"

func GetPreset(problem, name string) *Config {
	group, ok := Presets[problem]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(problem string) []string {
	group, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func preset(problem string, mut func(*Config)) *Config {
	c := DefaultConfig()
	c.Problem = problem
	mut(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"decay": {
		"quick": preset("decay", func(c *Config) {
			c.Nout = 10
			c.Tstep = 0.1
		}),
		"accurate": preset("decay", func(c *Config) {
			c.Nout = 20
			c.Tstep = 0.25
			c.ATol = 1e-14
			c.RTol = 1e-10
			c.AdaptiveOrder = true
			c.MaximumOrder = 6
		}),
		"fixed": preset("decay", func(c *Config) {
			c.Nout = 50
			c.Tstep = 0.1
			c.Adaptive = false
			c.StartTimestep = 0.001
		}),
	},
	"oscillator": {
		"default": preset("oscillator", func(c *Config) {
			c.Nout = 60
			c.Tstep = 0.1
		}),
		"long": preset("oscillator", func(c *Config) {
			c.Nout = 600
			c.Tstep = 0.1
			c.RTol = 1e-8
			c.AdaptiveOrder = true
		}),
		"loose": preset("oscillator", func(c *Config) {
			c.Nout = 60
			c.Tstep = 0.1
			c.RTol = 1e-3
		}),
	},
	"polynomial": {
		"default": preset("polynomial", func(c *Config) {
			c.Nout = 10
			c.Tstep = 0.2
		}),
		"fixed": preset("polynomial", func(c *Config) {
			c.Nout = 10
			c.Tstep = 0.2
			c.Adaptive = false
			c.StartTimestep = 0.01
		}),
	},
	"vanderpol": {
		"mild": preset("vanderpol", func(c *Config) {
			c.Nout = 100
			c.Tstep = 0.2
		}),
		"stiff": preset("vanderpol", func(c *Config) {
			c.Nout = 100
			c.Tstep = 0.5
			c.RTol = 1e-7
			c.MaxRejects = 50
			c.MXStep = 20000
			c.AdaptiveOrder = true
		}),
	},
}
