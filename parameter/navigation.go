package parameter

// Navigation - Hierarchical Graph
const (
	// ClusterSize is the square cluster edge length in cells
	ClusterSize = 10

	// MaxRegions caps walkable connected components per cluster
	// Region routing indices alias beyond this; exceeding it is a build error
	MaxRegions = 16

	// MaxIslands caps mutually-reachable cluster groups per map
	MaxIslands = 256

	// FallbackPortalLimit is the number of substitute portals kept per
	// unreachable cluster pair
	FallbackPortalLimit = 4
)

// Navigation - Path Resolution
const (
	// LocalPathMaxDistance is the Chebyshev cell distance below which a
	// request attempts direct local A* before going hierarchical
	LocalPathMaxDistance = 2 * ClusterSize

	// LocalSearchMargin expands the local A* bounding box around
	// start and goal (cells)
	LocalSearchMargin = 2

	// NearestWalkableMaxRadius bounds the ring scan that substitutes a
	// blocked goal cell
	NearestWalkableMaxRadius = 16
)

// Navigation - Incremental Build
const (
	// BuildPortalBatch is the number of portals unioned per island
	// detection chunk
	BuildPortalBatch = 64
)
