// Package stages wires the built-in assessment stages into a registry
// and fixes their canonical execution order.
package stages

import (
	"github.com/kingrea/windscout/internal/stage"
	"github.com/kingrea/windscout/internal/stages/environment"
	"github.com/kingrea/windscout/internal/stages/geocode"
	"github.com/kingrea/windscout/internal/stages/grid"
	"github.com/kingrea/windscout/internal/stages/imagery"
	"github.com/kingrea/windscout/internal/stages/land"
	"github.com/kingrea/windscout/internal/stages/sentiment"
)

// Order is the canonical stage execution order. Geocode must run first
// because imagery, land, and grid consume its coordinates.
var Order = []string{
	"geocode",
	"imagery",
	"sentiment",
	"land",
	"environment",
	"grid",
}

// RegisterBuiltins installs every built-in stage factory.
func RegisterBuiltins(reg *stage.Registry) {
	geocode.Register(reg)
	imagery.Register(reg)
	sentiment.Register(reg)
	land.Register(reg)
	environment.Register(reg)
	grid.Register(reg)
}
