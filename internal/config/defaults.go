package config

import (
	"github.com/ziadkadry99/forcetree/internal/aggregate"
	"github.com/ziadkadry99/forcetree/internal/colordomain"
	"github.com/ziadkadry99/forcetree/internal/dataset"
	"github.com/ziadkadry99/forcetree/internal/simulation"
	"github.com/ziadkadry99/forcetree/internal/view"
)

// DefaultPath is where the CLI looks for its config file.
const DefaultPath = ".forcetree.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	palette := colordomain.DefaultPalette()
	sim := simulation.DefaultParams()
	return &Config{
		DataPath:             dataset.DefaultPath,
		Port:                 8080,
		Watch:                true,
		JournalPath:          ".forcetree/journal.db",
		JournalRetentionDays: 30,
		View: ViewConfig{
			SentinelName:    view.DefaultSentinelName,
			AggregateHidden: true,
			RadiusScale:     aggregate.DefaultScale,
			DefaultRadius:   aggregate.DefaultRadius,
		},
		Color: ColorConfig{
			Mode:      string(palette.Mode),
			Low:       palette.Low,
			High:      palette.High,
			Neutral:   palette.Neutral,
			Collapsed: palette.Collapsed,
			Expanded:  palette.Expanded,
			Leaf:      palette.Leaf,
		},
		Simulation: SimulationConfig{
			LinkDistance: sim.LinkDistance,
			Charge:       sim.Charge,
			Gravity:      sim.Gravity,
			LinkStrength: sim.LinkStrength,
			Width:        sim.Width,
			Height:       sim.Height,
		},
	}
}

// Palette converts the color section.
func (c *Config) Palette() colordomain.Palette {
	return colordomain.Palette{
		Mode:      colordomain.Mode(c.Color.Mode),
		Low:       c.Color.Low,
		Mid:       c.Color.Mid,
		High:      c.Color.High,
		Neutral:   c.Color.Neutral,
		Collapsed: c.Color.Collapsed,
		Expanded:  c.Color.Expanded,
		Leaf:      c.Color.Leaf,
	}
}

// SimulationParams converts the simulation section.
func (c *Config) SimulationParams() simulation.Params {
	return simulation.Params{
		LinkDistance: c.Simulation.LinkDistance,
		Charge:       c.Simulation.Charge,
		Gravity:      c.Simulation.Gravity,
		LinkStrength: c.Simulation.LinkStrength,
		Width:        c.Simulation.Width,
		Height:       c.Simulation.Height,
	}
}

// ViewOptions assembles the controller options from the whole config.
func (c *Config) ViewOptions() view.Options {
	return view.Options{
		SentinelName:        c.View.SentinelName,
		CloseAllOnLoad:      c.View.CloseAllOnLoad,
		ResetBoundsOnReload: c.View.ResetBoundsOnReload,
		Aggregate: aggregate.Options{
			Scale:         c.View.RadiusScale,
			DefaultRadius: c.View.DefaultRadius,
			IncludeHidden: c.View.AggregateHidden,
		},
		Palette:    c.Palette(),
		Simulation: c.SimulationParams(),
	}
}
