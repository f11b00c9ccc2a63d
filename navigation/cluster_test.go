package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
)

func TestRegionDecomposition(t *testing.T) {
	g := testGrid(10, 10)
	g.FillRect(core.Area{X: 0, Y: 5, Width: 10, Height: 1}, grid.CostBlocked)
	ctx := buildContext(t, g)

	c := ctx.Graph().ClusterAt(ClusterKey{X: 0, Y: 0})
	require.NotNil(t, c)
	require.Equal(t, 2, c.RegionCount)

	// Row-major discovery: the upper component gets label 0
	require.Equal(t, RegionID(0), c.RegionAt(0, 0))
	require.Equal(t, RegionID(0), c.RegionAt(9, 4))
	require.Equal(t, RegionID(1), c.RegionAt(0, 6))
	require.Equal(t, RegionID(1), c.RegionAt(9, 9))
	require.Equal(t, NoRegion, c.RegionAt(4, 5))  // Blocked
	require.Equal(t, NoRegion, c.RegionAt(-1, 0)) // Outside
	require.Equal(t, NoRegion, c.RegionAt(0, 10))
}

func TestRegionsAreMaximal(t *testing.T) {
	g := testGrid(10, 10)
	// An L-shaped wall that does not fully separate the cluster
	g.FillRect(core.Area{X: 3, Y: 0, Width: 1, Height: 7}, grid.CostBlocked)
	g.FillRect(core.Area{X: 3, Y: 6, Width: 4, Height: 1}, grid.CostBlocked)
	ctx := buildContext(t, g)

	c := ctx.Graph().ClusterAt(ClusterKey{X: 0, Y: 0})
	require.Equal(t, 1, c.RegionCount)
	require.Equal(t, c.RegionAt(0, 0), c.RegionAt(9, 0))
	require.Equal(t, c.RegionAt(0, 0), c.RegionAt(0, 9))
}

func TestCornerCutSeparatesRegions(t *testing.T) {
	g := testGrid(10, 10)
	// Two walls meeting corner to corner: the diagonal gap is not passable
	g.FillRect(core.Area{X: 0, Y: 4, Width: 5, Height: 1}, grid.CostBlocked)
	g.FillRect(core.Area{X: 5, Y: 5, Width: 5, Height: 1}, grid.CostBlocked)
	ctx := buildContext(t, g)

	c := ctx.Graph().ClusterAt(ClusterKey{X: 0, Y: 0})
	require.Equal(t, 2, c.RegionCount)
	require.NotEqual(t, c.RegionAt(4, 5), c.RegionAt(5, 4))
}

func TestPortalRunSplitsOnBlockedCell(t *testing.T) {
	g := testGrid(20, 10)
	g.SetCost(9, 5, grid.CostBlocked)
	ctx := buildContext(t, g)
	gr := ctx.Graph()

	require.Equal(t, 2, gr.NodeCount())
	p0 := gr.Portal(0)
	p1 := gr.Portal(1)

	require.False(t, p0.Horizontal)
	require.Equal(t, ClusterKey{X: 0, Y: 0}, p0.Cluster)
	require.Equal(t, ClusterKey{X: 1, Y: 0}, p0.Neighbor)
	require.Equal(t, 0, p0.StartY)
	require.Equal(t, 5, p0.Span)
	require.Equal(t, 6, p1.StartY)
	require.Equal(t, 4, p1.Span)
}

func TestPortalRegionTags(t *testing.T) {
	g := testGrid(20, 10)
	// Wall across the left cluster only; the boundary column stays split
	g.FillRect(core.Area{X: 0, Y: 5, Width: 10, Height: 1}, grid.CostBlocked)
	ctx := buildContext(t, g)
	gr := ctx.Graph()

	require.Equal(t, 2, gr.NodeCount())
	p0 := gr.Portal(0)
	p1 := gr.Portal(1)
	require.Equal(t, RegionID(0), p0.Region)
	require.Equal(t, RegionID(1), p1.Region)
	require.Equal(t, RegionID(0), p0.NeighborRegion)
	require.Equal(t, RegionID(0), p1.NeighborRegion)

	// Both sides of the wall stay one island through the open right cluster
	require.Equal(t, 1, gr.IslandCount())
}

func TestClusterFieldLookup(t *testing.T) {
	ctx := buildContext(t, testGrid(20, 10))
	gr := ctx.Graph()
	require.Equal(t, 1, gr.NodeCount())

	c := gr.ClusterAt(ClusterKey{X: 0, Y: 0})
	require.NotNil(t, c.FieldFor(0))
	require.Nil(t, c.FieldFor(99))

	// The field descends toward the boundary from anywhere in the cluster
	f := c.FieldFor(0)
	require.Equal(t, DirTarget, f.DirectionAt(9, 3))
	require.NotEqual(t, DirNone, f.DirectionAt(0, 0))
	require.Greater(t, f.DistanceAt(0, 0), f.DistanceAt(8, 3))
}

func TestClippedEdgeClusters(t *testing.T) {
	// 25x17 leaves partial clusters on the east and south edges
	ctx := buildContext(t, testGrid(25, 17))
	gr := ctx.Graph()

	require.Equal(t, 6, gr.ClusterCount())
	c := gr.ClusterAt(ClusterKey{X: 2, Y: 1})
	require.NotNil(t, c)
	require.Equal(t, core.Area{X: 20, Y: 10, Width: 5, Height: 7}, c.Bounds)
	require.Equal(t, 1, gr.IslandCount())
}
