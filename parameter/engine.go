package parameter

// System priorities, lower runs first
const (
	PriorityNavigation = 10
	PrioritySteering   = 20
)

// Agent movement
const (
	// AgentSpeedMilliCells is agent speed in thousandths of a cell per
	// tick, kept integer for determinism
	AgentSpeedMilliCells = 250

	// SeparationRadius is the neighbor query radius for steering
	// separation (cells)
	SeparationRadius = 1

	// SeparationWeight scales the separation push blended into the flow
	// direction (Q32.32, 0.25)
	SeparationWeight = int64(1) << 30
)
