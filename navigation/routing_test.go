package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
)

func TestRoutingUninitialized(t *testing.T) {
	rt := NewRoutingTable(4)
	require.False(t, rt.Initialized())

	_, ok := rt.FindNextPortal(0, 0)
	require.False(t, ok)
	_, ok = rt.NextRegion(0, 1, 0, 0)
	require.False(t, ok)
	_, ok = rt.NextPortalFor(0, 1, 0, 0)
	require.False(t, ok)
}

func TestRoutingResize(t *testing.T) {
	ctx := buildContext(t, testGrid(30, 30))
	rt := ctx.Routing()
	require.True(t, rt.Initialized())
	require.True(t, rt.IsSizedCorrectly(9))
	require.False(t, rt.IsSizedCorrectly(16))

	// Resize clears everything; queries refuse until the next build
	rt.Resize(16)
	require.True(t, rt.IsSizedCorrectly(16))
	require.False(t, rt.Initialized())
	_, ok := rt.FindNextPortal(0, 0)
	require.False(t, ok)
}

func TestRoutingBoundsChecks(t *testing.T) {
	ctx := buildContext(t, testGrid(30, 30))
	rt := ctx.Routing()

	_, ok := rt.FindNextPortal(-1, 0)
	require.False(t, ok)
	_, ok = rt.FindNextPortal(0, 100000)
	require.False(t, ok)
	_, ok = rt.NextRegion(-1, 0, 0, 0)
	require.False(t, ok)
	_, ok = rt.NextRegion(0, 9, 0, 0)
	require.False(t, ok)
	_, ok = rt.NextPortalFor(0, 0, 200, 0)
	require.False(t, ok)
}

func TestRoutingSameSlot(t *testing.T) {
	ctx := buildContext(t, testGrid(30, 30))
	rt := ctx.Routing()

	// Already in the destination region: next region is itself, no portal
	r, ok := rt.NextRegion(0, 0, 0, 0)
	require.True(t, ok)
	require.Equal(t, RegionID(0), r)
	p, ok := rt.NextPortalFor(0, 0, 0, 0)
	require.True(t, ok)
	require.Equal(t, NoPortal, p)
}

func TestRoutingIslandDiagonal(t *testing.T) {
	ctx := buildContext(t, testGrid(30, 30))
	gr := ctx.Graph()
	require.Equal(t, 1, gr.IslandCount())

	p, ok := ctx.FindNextPortal(0, 0)
	require.True(t, ok)
	require.Equal(t, gr.IslandPortals(0)[0], p)
}

func TestRoutedWalkAcrossClusters(t *testing.T) {
	g := testGrid(30, 30)
	g.FillRect(core.Area{X: 14, Y: 0, Width: 2, Height: 22}, grid.CostBlocked)
	ctx := buildContext(t, g)
	gr := ctx.Graph()
	rt := ctx.Routing()

	// Hop region to region from (1,1) toward (28,1); the wall forces the
	// route down and around
	start := core.Point{X: 1, Y: 1}
	goal := core.Point{X: 28, Y: 1}
	require.True(t, ctx.AreConnected(start, goal))

	curKey, curRegion, ok := gr.RegionOf(start.X, start.Y)
	require.True(t, ok)
	goalKey, goalRegion, ok := gr.RegionOf(goal.X, goal.Y)
	require.True(t, ok)

	for hops := 0; ; hops++ {
		require.Less(t, hops, 2*gr.ClusterCount(), "route must terminate")
		if curKey == goalKey && curRegion == goalRegion {
			break
		}
		pid, ok := rt.NextPortalFor(
			gr.ClusterIndex(curKey), gr.ClusterIndex(goalKey),
			curRegion, goalRegion,
		)
		require.True(t, ok)
		require.NotEqual(t, NoPortal, pid)

		p := gr.Portal(pid)
		require.True(t, p.Touches(curKey))
		require.Equal(t, curRegion, p.RegionIn(curKey))

		next := p.Other(curKey)
		curKey, curRegion = next, p.RegionIn(next)
	}
}

func TestRoutingUnreachablePair(t *testing.T) {
	g := testGrid(30, 30)
	g.FillRect(core.Area{X: 15, Y: 0, Width: 1, Height: 30}, grid.CostBlocked)
	ctx := buildContext(t, g)
	gr := ctx.Graph()
	rt := ctx.Routing()

	lKey, lRegion, _ := gr.RegionOf(2, 2)
	rKey, rRegion, _ := gr.RegionOf(28, 2)
	_, ok := rt.NextPortalFor(
		gr.ClusterIndex(lKey), gr.ClusterIndex(rKey), lRegion, rRegion,
	)
	require.False(t, ok)
}
