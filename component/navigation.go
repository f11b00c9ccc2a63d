package component

import (
	"github.com/lixenwraith/gridnav/navigation"
)

// NavigationComponent provides pathfinding state for kinetic entities
type NavigationComponent struct {
	// Active path, replaced on every resolve
	Path navigation.Path

	// Requested goal in world coordinates (Q32.32); Pending is true from
	// request until the navigation system resolves it
	GoalX, GoalY int64
	Pending      bool

	// Flow direction for this tick (Q32.32 normalized), zero when idle
	FlowX, FlowY int64

	// Arrived latches once the active path completes
	Arrived bool
}
