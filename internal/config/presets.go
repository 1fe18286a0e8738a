package config

import (
	"sort"

	"github.com/san-kum/mandelview/internal/viewport"
)

// Preset is a named landmark of the set.
type Preset struct {
	Description string
	CenterX     float64
	CenterY     float64
	Scale       float64
}

func (p Preset) Viewport() viewport.Viewport {
	return viewport.Viewport{CenterX: p.CenterX, CenterY: p.CenterY, Scale: p.Scale}
}

var Presets = map[string]Preset{
	"home": {
		Description: "whole set",
		CenterX:     -1, CenterY: 0, Scale: 2,
	},
	"seahorse-valley": {
		Description: "dense filaments and repeating seahorse curls",
		CenterX:     -0.75, CenterY: 0.1, Scale: 0.05,
	},
	"elephant-valley": {
		Description: "large bulb with trunk-like tendrils",
		CenterX:     -1.8, CenterY: -0.06, Scale: 0.05,
	},
	"spiral-minibrot": {
		Description: "small copy of the set with tight spiral arms",
		CenterX:     -0.74275, CenterY: 0.13175, Scale: 0.00075,
	},
	"triple-spiral": {
		Description: "threefold symmetric spiral",
		CenterX:     -0.7465, CenterY: 0.0965, Scale: 0.0015,
	},
	"valley-of-the-dragon": {
		Description: "deep spiral filaments",
		CenterX:     -0.7375, CenterY: 0.1825, Scale: 0.0025,
	},
	"mini-spiral-minibrot": {
		Description: "minibrot inside a spiral arm",
		CenterX:     -1.73825, CenterY: -0.02275, Scale: 0.00075,
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
