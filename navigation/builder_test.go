package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/vmath"
)

func testGrid(w, h int) *grid.CostGrid {
	return grid.New(w, h, vmath.FromInt(1), 0, 0)
}

func buildContext(t *testing.T, g *grid.CostGrid) *Context {
	t.Helper()
	ctx := NewContext(g, parameter.ClusterSize)
	require.NoError(t, ctx.BuildSync())
	require.True(t, ctx.Initialized())
	return ctx
}

func TestBuildOpenField(t *testing.T) {
	ctx := buildContext(t, testGrid(50, 50))
	gr := ctx.Graph()

	require.Equal(t, 25, gr.ClusterCount())
	require.Equal(t, 1, gr.IslandCount())

	for _, c := range gr.Clusters() {
		require.Equal(t, 1, c.RegionCount, "cluster %v", c.Key)
	}

	// 4x5 horizontal boundaries plus 5x4 vertical, one full-span portal each
	require.Equal(t, 40, gr.NodeCount())
	for i := range gr.Nodes() {
		p := gr.Portal(PortalID(i))
		require.Equal(t, parameter.ClusterSize, p.Span)
		require.Equal(t, RegionID(0), p.Region)
		require.Equal(t, RegionID(0), p.NeighborRegion)
	}

	// Every portal reaches its cluster mates, and edges are symmetric
	for i := 0; i < gr.NodeCount(); i++ {
		edges := gr.Edges(PortalID(i))
		require.NotEmpty(t, edges)
		for _, e := range edges {
			require.Greater(t, e.Cost, int32(0))
			back := gr.Edges(e.To)
			found := false
			for _, be := range back {
				if be.To == PortalID(i) {
					require.Equal(t, e.Cost, be.Cost)
					found = true
				}
			}
			require.True(t, found, "edge %d->%d has no mirror", i, e.To)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	obstacles := []core.Area{
		{X: 12, Y: 4, Width: 3, Height: 20},
		{X: 30, Y: 30, Width: 10, Height: 2},
		{X: 5, Y: 40, Width: 25, Height: 3},
	}
	make1 := func() *Context {
		g := testGrid(50, 50)
		for _, a := range obstacles {
			g.FillRect(a, grid.CostBlocked)
		}
		return buildContext(t, g)
	}

	a, b := make1().Graph(), make1().Graph()
	require.Equal(t, a.Nodes(), b.Nodes())
	require.Equal(t, a.IslandCount(), b.IslandCount())
	for i := 0; i < a.NodeCount(); i++ {
		require.Equal(t, a.Edges(PortalID(i)), b.Edges(PortalID(i)))
	}
}

func TestIncrementalMatchesSync(t *testing.T) {
	setup := func() *grid.CostGrid {
		g := testGrid(60, 40)
		g.FillRect(core.Area{X: 15, Y: 0, Width: 2, Height: 30}, grid.CostBlocked)
		g.FillRect(core.Area{X: 40, Y: 10, Width: 8, Height: 8}, grid.CostBlocked)
		return g
	}

	sync := buildContext(t, setup())

	inc := NewContext(setup(), parameter.ClusterSize)
	prev := 0.0
	for inc.State() != BuildDone {
		require.NoError(t, inc.Tick())
		frac := inc.Progress.Fraction.Get()
		require.GreaterOrEqual(t, frac, prev, "progress must never move backward")
		prev = frac
	}
	require.NoError(t, inc.Tick()) // Publishes
	require.True(t, inc.Initialized())
	require.Equal(t, 1.0, inc.Progress.Fraction.Get())

	ga, gb := sync.Graph(), inc.Graph()
	require.Equal(t, ga.Nodes(), gb.Nodes())
	require.Equal(t, ga.IslandCount(), gb.IslandCount())
	require.Equal(t, ga.EdgeCount(), gb.EdgeCount())
	for i := 0; i < ga.NodeCount(); i++ {
		require.Equal(t, ga.Edges(PortalID(i)), gb.Edges(PortalID(i)))
	}
}

func TestWallSplitsIslands(t *testing.T) {
	g := testGrid(50, 50)
	g.FillRect(core.Area{X: 25, Y: 0, Width: 1, Height: 50}, grid.CostBlocked)
	ctx := buildContext(t, g)
	gr := ctx.Graph()

	require.Equal(t, 2, gr.IslandCount())

	left := core.Point{X: 2, Y: 2}
	right := core.Point{X: 45, Y: 2}
	il := gr.IslandOf(left.X, left.Y)
	ir := gr.IslandOf(right.X, right.Y)
	require.NotEqual(t, NoIsland, il)
	require.NotEqual(t, NoIsland, ir)
	require.NotEqual(t, il, ir)

	_, ok := ctx.FindNextPortal(il, ir)
	require.False(t, ok)
	require.False(t, ctx.AreConnected(left, right))
	require.True(t, ctx.AreConnected(left, core.Point{X: 2, Y: 45}))

	fallback := ctx.GetFallbackPortals(left, right)
	require.NotEmpty(t, fallback)
	require.LessOrEqual(t, len(fallback), parameter.FallbackPortalLimit)
	// Fallbacks must be crossable from the start side
	for _, id := range fallback {
		p := gr.Portal(id)
		cx, cy := p.Center(p.Cluster)
		require.Equal(t, il, gr.IslandOf(cx, cy))
	}
}

// A wall through the middle of a cluster row leaves every crossed cluster
// with two regions in different islands; reachability must compare every
// region pair, not just region 0
func TestSplitClustersCompareAllRegions(t *testing.T) {
	g := testGrid(30, 30)
	g.FillRect(core.Area{X: 0, Y: 15, Width: 30, Height: 1}, grid.CostBlocked)
	ctx := buildContext(t, g)
	gr := ctx.Graph()

	require.Equal(t, 2, gr.IslandCount())
	mid := gr.ClusterAt(ClusterKey{X: 0, Y: 1})
	require.Equal(t, 2, mid.RegionCount)
	require.NotEqual(t, mid.IslandOf(0), mid.IslandOf(1))

	top := core.Point{X: 2, Y: 2}
	require.False(t, ctx.AreConnected(top, core.Point{X: 2, Y: 28}))
	require.True(t, ctx.AreConnected(top, core.Point{X: 28, Y: 2}))
	// Both halves of a split cluster reach themselves
	require.True(t, ctx.AreConnected(core.Point{X: 2, Y: 12}, core.Point{X: 2, Y: 12}))
}

func TestQueriesRejectOutOfMapCells(t *testing.T) {
	g := testGrid(25, 17)
	ctx := buildContext(t, g)

	in := core.Point{X: 2, Y: 2}
	for _, p := range []core.Point{
		{X: -5, Y: -5},
		{X: -1, Y: 3},
		{X: 27, Y: 3}, // Inside the clipped cluster lattice, outside the map
		{X: 3, Y: 18},
	} {
		require.False(t, ctx.AreConnected(p, in), "point %v", p)
		require.False(t, ctx.AreConnected(in, p), "point %v", p)
		require.Nil(t, ctx.GetFallbackPortals(p, in), "point %v", p)
		require.Nil(t, ctx.GetFallbackPortals(in, p), "point %v", p)
	}
	require.True(t, ctx.AreConnected(in, core.Point{X: 20, Y: 10}))
}

func TestRegionOverflow(t *testing.T) {
	g := testGrid(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if (x+y)%2 == 1 {
				g.SetCost(x, y, grid.CostBlocked)
			}
		}
	}
	ctx := NewContext(g, parameter.ClusterSize)
	err := ctx.BuildSync()
	require.ErrorIs(t, err, ErrBuildFailed)
	require.ErrorIs(t, err, ErrRegionOverflow)
	require.False(t, ctx.Initialized())
}

func TestResetRebuilds(t *testing.T) {
	g := testGrid(50, 50)
	ctx := buildContext(t, g)
	require.Equal(t, uint64(1), ctx.Epoch())
	require.Equal(t, 1, ctx.Graph().IslandCount())

	// Obstacle edits never trigger a rebuild on their own
	g.FillRect(core.Area{X: 25, Y: 0, Width: 1, Height: 50}, grid.CostBlocked)
	ctx.Reset()

	// The previous build stays readable while the new one is pending
	require.True(t, ctx.Initialized())
	require.Equal(t, 1, ctx.Graph().IslandCount())
	require.NotEqual(t, BuildDone, ctx.State())

	require.NoError(t, ctx.BuildSync())
	require.Equal(t, uint64(2), ctx.Epoch())
	require.Equal(t, 2, ctx.Graph().IslandCount())
}

func TestNoPortalsOnMapEdge(t *testing.T) {
	ctx := buildContext(t, testGrid(50, 50))
	for _, p := range ctx.Graph().Nodes() {
		if p.Horizontal {
			require.Less(t, p.StartY+1, 50)
		} else {
			require.Less(t, p.StartX+1, 50)
		}
	}
}
