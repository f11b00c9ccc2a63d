package navigation

import (
	"fmt"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/status"
)

// BuildState is the step of the incremental graph build
type BuildState uint8

const (
	BuildNotStarted BuildState = iota
	BuildClustering
	BuildRegionDecomposition
	BuildIslandDetection
	BuildPortalGraph
	BuildRoutingTables
	BuildDone
)

func (s BuildState) String() string {
	switch s {
	case BuildNotStarted:
		return "not started"
	case BuildClustering:
		return "clustering"
	case BuildRegionDecomposition:
		return "region decomposition"
	case BuildIslandDetection:
		return "island detection"
	case BuildPortalGraph:
		return "portal graph"
	case BuildRoutingTables:
		return "routing tables"
	case BuildDone:
		return "done"
	}
	return "unknown"
}

// Cumulative progress weight consumed when a step begins
var buildPhaseBase = [...]float64{
	BuildClustering:          0.00,
	BuildRegionDecomposition: 0.05,
	BuildIslandDetection:     0.25,
	BuildPortalGraph:         0.35,
	BuildRoutingTables:       0.70,
}

var buildPhaseWeight = [...]float64{
	BuildClustering:          0.05,
	BuildRegionDecomposition: 0.20,
	BuildIslandDetection:     0.10,
	BuildPortalGraph:         0.35,
	BuildRoutingTables:       0.30,
}

// Builder drives one full graph build as a sequence of bounded chunks, one
// per Tick, so a rebuild never stalls a simulation frame. All products
// (graph, routing table, connected components) are private until Done;
// readers keep using the previously published build in the meantime
type Builder struct {
	grid        *grid.CostGrid
	clusterSize int
	progress    *status.Progress

	graph      *Graph
	routing    *RoutingTable
	components *ConnectedComponents

	state BuildState
	err   error

	// Per-phase chunk cursors
	rowCursor    int // Clustering: next cluster row
	regionCursor int // Regions sub-pass: next cluster
	portalCursor int // Portal extraction sub-pass: next cluster
	unionCursor  int // Island detection: next portal batch start
	assigned     bool
	edgeCursor   int // Portal graph: next cluster
	edgesSorted  bool
	islandCursor int // Routing: next island arena row
	routeCursor  int // Routing: next goal cluster
	ccCursor     int // Routing: next connected-components row
	finalized    bool

	uf *islandUnionFind

	// Reusable search buffers
	heap     minHeap
	seeds    []core.Point
	nodeDist []int32

	lastProgress float64
}

// NewBuilder prepares a build over g. Nothing happens until Tick
func NewBuilder(g *grid.CostGrid, clusterSize int, progress *status.Progress) *Builder {
	if clusterSize < 1 {
		clusterSize = parameter.ClusterSize
	}
	if progress == nil {
		progress = status.NewProgress()
	}
	return &Builder{
		grid:        g,
		clusterSize: clusterSize,
		progress:    progress,
	}
}

// State returns the current build step
func (b *Builder) State() BuildState {
	return b.state
}

// Err returns the fatal build error, nil while healthy
func (b *Builder) Err() error {
	return b.err
}

// Graph returns the built graph. Valid only once State is BuildDone
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Routing returns the built routing table. Valid only once State is BuildDone
func (b *Builder) Routing() *RoutingTable {
	return b.routing
}

// Components returns the reachability index. Valid only once State is BuildDone
func (b *Builder) Components() *ConnectedComponents {
	return b.components
}

// Progress returns the last reported fraction
func (b *Builder) Progress() float64 {
	return b.lastProgress
}

// Reset abandons all partial work and rewinds to NotStarted
// There is no partial resume across a topology change
func (b *Builder) Reset() {
	*b = Builder{
		grid:        b.grid,
		clusterSize: b.clusterSize,
		progress:    b.progress,
		heap:        b.heap[:0],
		seeds:       b.seeds[:0],
	}
	b.report(0)
}

// report publishes clamped, monotonically non-decreasing progress
func (b *Builder) report(frac float64) {
	if frac < b.lastProgress {
		frac = b.lastProgress
	}
	if frac > 1 {
		frac = 1
	}
	b.lastProgress = frac
	b.progress.Report(frac, b.state.String())
}

func (b *Builder) phaseProgress(done, total int) {
	base := buildPhaseBase[b.state]
	weight := buildPhaseWeight[b.state]
	if total <= 0 {
		b.report(base + weight)
		return
	}
	b.report(base + weight*float64(done)/float64(total))
}

// BuildSync drives the state machine to completion in one call. By
// construction it is the same code path as the incremental build, so node,
// edge, cluster and ordering results are identical
func (b *Builder) BuildSync() error {
	for b.state != BuildDone {
		if err := b.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Tick performs exactly one chunk of build work. Returns the fatal build
// error, if any; further calls after an error return the same error
func (b *Builder) Tick() error {
	if b.err != nil {
		return b.err
	}

	switch b.state {
	case BuildNotStarted:
		b.graph = newGraph(b.grid, b.clusterSize)
		b.state = BuildClustering
		b.report(0)

	case BuildClustering:
		b.graph.initClusterRow(b.rowCursor)
		b.rowCursor++
		b.phaseProgress(b.rowCursor, b.graph.ClustersY)
		if b.rowCursor >= b.graph.ClustersY {
			b.state = BuildRegionDecomposition
		}

	case BuildRegionDecomposition:
		total := 2 * len(b.graph.clusters)
		if b.regionCursor < len(b.graph.clusters) {
			if err := b.graph.clusters[b.regionCursor].decomposeRegions(b.grid); err != nil {
				return b.fail(err)
			}
			b.regionCursor++
			b.phaseProgress(b.regionCursor, total)
			break
		}
		b.graph.extractPortals(b.grid, b.graph.clusters[b.portalCursor])
		b.portalCursor++
		b.phaseProgress(len(b.graph.clusters)+b.portalCursor, total)
		if b.portalCursor >= len(b.graph.clusters) {
			b.state = BuildIslandDetection
		}

	case BuildIslandDetection:
		if b.uf == nil {
			b.uf = newIslandUnionFind(len(b.graph.clusters))
		}
		batches := (len(b.graph.nodes) + parameter.BuildPortalBatch - 1) / parameter.BuildPortalBatch
		if b.unionCursor < len(b.graph.nodes) {
			b.unionCursor = b.graph.unionPortalBatch(b.uf, b.unionCursor, parameter.BuildPortalBatch)
			done := (b.unionCursor + parameter.BuildPortalBatch - 1) / parameter.BuildPortalBatch
			b.phaseProgress(done, batches+1)
			break
		}
		if err := b.graph.assignIslands(b.uf); err != nil {
			return b.fail(err)
		}
		b.assigned = true
		b.uf = nil
		b.phaseProgress(batches+1, batches+1)
		b.state = BuildPortalGraph

	case BuildPortalGraph:
		total := len(b.graph.clusters) + 1
		if b.edgeCursor < len(b.graph.clusters) {
			if b.graph.edges == nil {
				b.graph.edges = make([][]Edge, len(b.graph.nodes))
			}
			c := b.graph.clusters[b.edgeCursor]
			b.seeds = b.graph.buildClusterEdges(b.grid, c, &b.heap, b.seeds)
			b.edgeCursor++
			b.phaseProgress(b.edgeCursor, total)
			break
		}
		b.graph.finishEdges()
		b.edgesSorted = true
		b.phaseProgress(total, total)
		b.state = BuildRoutingTables

	case BuildRoutingTables:
		if b.routing == nil {
			b.routing = NewRoutingTable(len(b.graph.clusters))
			b.components = newConnectedComponents(len(b.graph.clusters))
		}
		total := b.graph.islandCount + 2*len(b.graph.clusters) + 1
		done := b.islandCursor + b.routeCursor + b.ccCursor

		switch {
		case b.islandCursor < b.graph.islandCount:
			b.fillIslandRow(int32(b.islandCursor))
			b.islandCursor++
		case b.routeCursor < len(b.graph.clusters):
			b.fillRegionRoutes(b.routeCursor)
			b.routeCursor++
		case b.ccCursor < len(b.graph.clusters):
			b.components.buildClusterRow(b.graph, b.ccCursor)
			b.ccCursor++
		default:
			b.routing.markInitialized()
			b.finalized = true
			b.state = BuildDone
			b.report(1)
			return nil
		}
		b.phaseProgress(done+1, total)

	case BuildDone:
		// Idle; Reset starts the next build
	}

	return nil
}

func (b *Builder) fail(err error) error {
	b.err = fmt.Errorf("%w: %w", ErrBuildFailed, err)
	b.progress.Report(b.lastProgress, "failed: "+b.state.String())
	return b.err
}

// fillIslandRow writes one island's arena row. Within one island the entry
// is the island's lowest portal ID; distinct islands are never connected
// (islands are maximal reachability groups), so cross entries stay NoPortal
func (b *Builder) fillIslandRow(island int32) {
	portals := b.graph.IslandPortals(island)
	if len(portals) == 0 {
		return
	}
	b.routing.setIslandNext(island, island, portals[0])
}

// fillRegionRoutes computes every region-arena entry whose goal lies in
// cluster dst: one reverse Dijkstra over the portal graph per goal region,
// then a sweep choosing each start region's cheapest boundary portal
// (ties by ascending portal ID)
func (b *Builder) fillRegionRoutes(dst int) {
	gr := b.graph
	dc := gr.clusters[dst]

	if cap(b.nodeDist) < len(gr.nodes) {
		b.nodeDist = make([]int32, len(gr.nodes))
	}
	dist := b.nodeDist[:len(gr.nodes)]

	for r := 0; r < dc.RegionCount; r++ {
		goalRegion := RegionID(r)

		// Reverse Dijkstra: everything is symmetric, so seeding the goal
		// side gives cost-to-goal at every portal node
		for i := range dist {
			dist[i] = costUnreachable
		}
		h := b.heap[:0]
		for _, pid := range dc.Portals {
			p := gr.Portal(pid)
			if p.RegionIn(dc.Key) != goalRegion {
				continue
			}
			dist[pid] = 0
			h.push(heapEntry{idx: int32(pid), dist: 0})
		}
		for len(h) > 0 {
			e := h.pop()
			if e.dist > dist[e.idx] {
				continue
			}
			for _, edge := range gr.edges[e.idx] {
				nd := e.dist + edge.Cost
				if nd < dist[edge.To] {
					dist[edge.To] = nd
					h.push(heapEntry{idx: int32(edge.To), dist: nd})
				}
			}
		}
		b.heap = h[:0]

		// Sweep every start (cluster, region) slot
		for src, sc := range gr.clusters {
			for s := 0; s < sc.RegionCount; s++ {
				srcRegion := RegionID(s)
				if src == dst && srcRegion == goalRegion {
					// Already in the goal region: stay, no portal to cross
					b.routing.setRegionRoute(src, dst, srcRegion, goalRegion, goalRegion, NoPortal)
					continue
				}

				best := NoPortal
				bestDist := int32(costUnreachable)
				for _, pid := range sc.Portals {
					p := gr.Portal(pid)
					if p.RegionIn(sc.Key) != srcRegion {
						continue
					}
					if d := dist[pid]; d < bestDist {
						bestDist = d
						best = pid
					}
				}
				if best == NoPortal {
					continue
				}
				p := gr.Portal(best)
				next := p.RegionIn(p.Other(sc.Key))
				b.routing.setRegionRoute(src, dst, srcRegion, goalRegion, next, best)
			}
		}
	}
}
