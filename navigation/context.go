package navigation

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/status"
	"github.com/lixenwraith/gridnav/vmath"
)

// Context is the single-owner handle over the whole navigation subsystem:
// the cost grid, the build driver, and the last published build. The build
// driver is its only writer; agents read during the tick phase. Readers
// always observe the previously completed build while a rebuild is in
// flight, never a half-built graph
type Context struct {
	Grid     *grid.CostGrid
	Progress *status.Progress

	builder *Builder

	// Published products of the last completed build
	graph      *Graph
	routing    *RoutingTable
	components *ConnectedComponents

	// Epoch increments on every publish; hierarchical paths from older
	// epochs are invalid
	epoch uint64

	clusterSize int
	heap        minHeap
}

// NewContext creates the navigation owner for a grid
// No graph exists until a build completes
func NewContext(g *grid.CostGrid, clusterSize int) *Context {
	progress := status.NewProgress()
	return &Context{
		Grid:        g,
		Progress:    progress,
		builder:     NewBuilder(g, clusterSize, progress),
		clusterSize: clusterSize,
	}
}

// Initialized reports whether a completed build is published
// Every query returns empty results until this is true
func (c *Context) Initialized() bool {
	return c.graph != nil
}

// Epoch returns the published build generation
func (c *Context) Epoch() uint64 {
	return c.epoch
}

// State returns the build driver step
func (c *Context) State() BuildState {
	return c.builder.State()
}

// Err returns the fatal build error, if any
func (c *Context) Err() error {
	return c.builder.Err()
}

// Graph returns the published graph, nil before the first publish
func (c *Context) Graph() *Graph {
	return c.graph
}

// Routing returns the published routing table, nil before the first publish
func (c *Context) Routing() *RoutingTable {
	return c.routing
}

// Components returns the published reachability index
func (c *Context) Components() *ConnectedComponents {
	return c.components
}

// Reset abandons any in-flight build and schedules a fresh one, picking up
// the grid's current contents. The published build stays readable until
// the new one completes. Call after every obstacle edit; mutation is never
// inferred
func (c *Context) Reset() {
	c.builder.Reset()
}

// Tick advances the incremental build by exactly one chunk and publishes
// the products when the build reaches Done. Safe to call every frame;
// idle once published and not reset
func (c *Context) Tick() error {
	if c.builder.State() == BuildDone {
		c.publish()
		return nil
	}
	if err := c.builder.Tick(); err != nil {
		return err
	}
	if c.builder.State() == BuildDone {
		c.publish()
	}
	return nil
}

// BuildSync drives the build to completion in one call. Content and
// ordering are identical to ticking incrementally: it is the same state
// machine
func (c *Context) BuildSync() error {
	if c.builder.State() == BuildDone {
		c.publish()
		return nil
	}
	if err := c.builder.BuildSync(); err != nil {
		return err
	}
	c.publish()
	return nil
}

func (c *Context) publish() {
	if c.graph == c.builder.Graph() {
		return // Already published this build
	}
	c.graph = c.builder.Graph()
	c.routing = c.builder.Routing()
	c.components = c.builder.Components()
	c.epoch++
}

// --- Query surface (read-only, valid once Initialized) ---

// FindNextPortal answers island-to-island routing in O(1)
func (c *Context) FindNextPortal(srcIsland, dstIsland int32) (PortalID, bool) {
	if c.routing == nil {
		return NoPortal, false
	}
	return c.routing.FindNextPortal(srcIsland, dstIsland)
}

// GetNextRegion answers region-to-region routing in O(1)
func (c *Context) GetNextRegion(srcCluster, dstCluster int, srcRegion, dstRegion RegionID) (RegionID, bool) {
	if c.routing == nil {
		return NoRegion, false
	}
	return c.routing.NextRegion(srcCluster, dstCluster, srcRegion, dstRegion)
}

// AreConnected reports cluster-level reachability between two cells
func (c *Context) AreConnected(a, b core.Point) bool {
	if c.graph == nil {
		return false
	}
	ca := c.graph.ClusterIndex(c.graph.ClusterOf(a.X, a.Y))
	cb := c.graph.ClusterIndex(c.graph.ClusterOf(b.X, b.Y))
	if ca < 0 || cb < 0 {
		return false
	}
	return c.components.AreConnected(ca, cb)
}

// GetFallbackPortals returns substitute portals for an unreachable
// cluster pair, nearest the goal first
func (c *Context) GetFallbackPortals(start, goal core.Point) []PortalID {
	if c.graph == nil {
		return nil
	}
	cs := c.graph.ClusterIndex(c.graph.ClusterOf(start.X, start.Y))
	cg := c.graph.ClusterIndex(c.graph.ClusterOf(goal.X, goal.Y))
	if cs < 0 || cg < 0 {
		return nil
	}
	return c.components.FallbackPortals(cs, cg)
}

// --- Path resolution ---

// ResolvePath classifies one agent request into a Path. No graph search
// runs for long routes; hierarchical paths resolve lazily tick by tick
func (c *Context) ResolvePath(startWX, startWY, goalWX, goalWY int64) Path {
	if c.graph == nil {
		return Path{Kind: PathNone}
	}
	g := c.Grid

	sx, sy := g.WorldToGrid(startWX, startWY)
	start := core.Point{X: sx, Y: sy}
	if !g.InBounds(sx, sy) || g.IsBlocked(sx, sy) {
		return Path{Kind: PathNone}
	}

	gx, gy := g.WorldToGrid(goalWX, goalWY)
	goal, ok := nearestWalkable(g, core.Point{X: gx, Y: gy}, parameter.NearestWalkableMaxRadius)
	if !ok {
		return Path{Kind: PathNone}
	}
	if goal.X != gx || goal.Y != gy {
		goalWX, goalWY = g.GridToWorld(goal.X, goal.Y)
	}

	startKey := c.graph.ClusterOf(start.X, start.Y)
	goalKey := c.graph.ClusterOf(goal.X, goal.Y)

	// Near requests: try straight line first, then a windowed A*
	if startKey == goalKey || core.ChebyshevDist(start, goal) <= parameter.LocalPathMaxDistance {
		if lineOfSight(g, startWX, startWY, goalWX, goalWY) {
			return Path{Kind: PathDirect, GoalX: goalWX, GoalY: goalWY, Epoch: c.epoch}
		}
		bounds := localSearchBounds(g, start, goal, parameter.LocalSearchMargin)
		if wp := localAStar(g, bounds, start, goal, &c.heap); wp != nil {
			return Path{Kind: PathLocal, GoalX: goalWX, GoalY: goalWY, Waypoints: wp, Epoch: c.epoch}
		}
	}

	startIsland := c.graph.IslandOf(start.X, start.Y)
	goalIsland := c.graph.IslandOf(goal.X, goal.Y)
	if startIsland == NoIsland {
		return Path{Kind: PathNone}
	}

	if goalIsland == NoIsland || startIsland != goalIsland {
		// Unreachable goal: head for the nearest fallback portal instead
		// of failing outright
		fallback := c.GetFallbackPortals(start, goal)
		if len(fallback) == 0 {
			return Path{Kind: PathNone}
		}
		p := c.graph.Portal(fallback[0])
		px, py := p.Center(p.Cluster)
		wx, wy := g.GridToWorld(px, py)
		key, region, ok := c.graph.RegionOf(px, py)
		if !ok {
			return Path{Kind: PathNone}
		}
		return Path{
			Kind:        PathHierarchical,
			GoalX:       wx,
			GoalY:       wy,
			GoalCluster: key,
			GoalRegion:  region,
			Epoch:       c.epoch,
		}
	}

	_, goalRegion, ok2 := c.graph.RegionOf(goal.X, goal.Y)
	if !ok2 {
		return Path{Kind: PathNone}
	}
	return Path{
		Kind:        PathHierarchical,
		GoalX:       goalWX,
		GoalY:       goalWY,
		GoalCluster: goalKey,
		GoalRegion:  goalRegion,
		Epoch:       c.epoch,
	}
}

// NextStep answers one tick of steering for an agent at a world position.
// O(1) for hierarchical paths: one arena read plus one cached field read.
// ok is false when the path is exhausted, stale, or yields no move this
// tick; callers re-request or idle
func (c *Context) NextStep(p *Path, wx, wy int64) (Step, bool) {
	if p == nil || p.Kind == PathNone || c.graph == nil {
		return Step{}, false
	}

	arriveRadius := c.Grid.CellSize >> 2
	switch p.Kind {
	case PathDirect:
		if vmath.DistanceApprox(p.GoalX-wx, p.GoalY-wy) <= arriveRadius {
			return Step{TargetX: p.GoalX, TargetY: p.GoalY, Arrived: true}, true
		}
		return Step{TargetX: p.GoalX, TargetY: p.GoalY}, true

	case PathLocal:
		cx, cy := c.Grid.WorldToGrid(wx, wy)
		for p.Cursor < len(p.Waypoints) &&
			p.Waypoints[p.Cursor].X == cx && p.Waypoints[p.Cursor].Y == cy {
			p.Cursor++
		}
		if p.Cursor >= len(p.Waypoints) {
			return Step{TargetX: p.GoalX, TargetY: p.GoalY, Arrived: true}, true
		}
		tx, ty := c.Grid.GridToWorld(p.Waypoints[p.Cursor].X, p.Waypoints[p.Cursor].Y)
		return Step{TargetX: tx, TargetY: ty}, true

	case PathHierarchical:
		if p.Epoch != c.epoch {
			return Step{}, false // Stale topology, path must be reissued
		}
		if vmath.DistanceApprox(p.GoalX-wx, p.GoalY-wy) <= arriveRadius {
			return Step{TargetX: p.GoalX, TargetY: p.GoalY, Arrived: true}, true
		}

		cx, cy := c.Grid.WorldToGrid(wx, wy)
		curKey, curRegion, ok := c.graph.RegionOf(cx, cy)
		if !ok {
			return Step{}, false
		}

		if curKey == p.GoalCluster && curRegion == p.GoalRegion {
			return c.finalApproach(p, wx, wy, cx, cy)
		}

		pid, ok := c.routing.NextPortalFor(
			c.graph.ClusterIndex(curKey), c.graph.ClusterIndex(p.GoalCluster),
			curRegion, p.GoalRegion,
		)
		if !ok || pid == NoPortal {
			return Step{}, false // No route this tick
		}

		cluster := c.graph.ClusterAt(curKey)
		field := cluster.FieldFor(pid)
		if field == nil {
			return Step{}, false
		}

		dir := field.DirectionAt(cx, cy)
		switch dir {
		case DirTarget:
			// Standing on the portal run: step across the boundary
			portal := c.graph.Portal(pid)
			nx, ny := cx, cy
			if portal.Horizontal {
				if curKey == portal.Cluster {
					ny++
				} else {
					ny--
				}
			} else {
				if curKey == portal.Cluster {
					nx++
				} else {
					nx--
				}
			}
			tx, ty := c.Grid.GridToWorld(nx, ny)
			return Step{TargetX: tx, TargetY: ty}, true
		case DirNone:
			return Step{}, false
		default:
			tx, ty := c.Grid.GridToWorld(cx+DirVectors[dir][0], cy+DirVectors[dir][1])
			return Step{TargetX: tx, TargetY: ty}, true
		}
	}
	return Step{}, false
}

// finalApproach steers inside the goal region: straight when sight is
// clear, otherwise the first step of a cluster-bounded A*
func (c *Context) finalApproach(p *Path, wx, wy int64, cx, cy int) (Step, bool) {
	if lineOfSight(c.Grid, wx, wy, p.GoalX, p.GoalY) {
		return Step{TargetX: p.GoalX, TargetY: p.GoalY}, true
	}
	gx, gy := c.Grid.WorldToGrid(p.GoalX, p.GoalY)
	cluster := c.graph.ClusterAt(p.GoalCluster)
	wp := localAStar(c.Grid, cluster.Bounds, core.Point{X: cx, Y: cy}, core.Point{X: gx, Y: gy}, &c.heap)
	if len(wp) < 2 {
		return Step{}, false
	}
	tx, ty := c.Grid.GridToWorld(wp[1].X, wp[1].Y)
	return Step{TargetX: tx, TargetY: ty}, true
}
