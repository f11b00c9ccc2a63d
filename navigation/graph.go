package navigation

import (
	"sort"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
)

// Edge is one directed portal-graph connection inside a shared cluster
type Edge struct {
	To   PortalID
	Cost int32
}

// Graph is the hierarchical navigation aggregate: portal nodes ordered by
// ID, per-node adjacency ordered by neighbor ID, and clusters ordered
// row-major. The ascending-key ordering of every collection is the
// determinism invariant the tests assert directly
type Graph struct {
	ClusterSize           int
	ClustersX, ClustersY  int
	GridWidth, GridHeight int

	clusters []*Cluster // Row-major, index = ky*ClustersX + kx
	nodes    []Portal   // Index = PortalID
	edges    [][]Edge   // edges[p] ascending by To

	islandCount   int
	islandPortals [][]PortalID // Ascending portal IDs per island

	// Grid mutation version captured when the build started
	BuiltVersion uint64
}

// newGraph allocates an empty graph lattice for the grid dimensions
func newGraph(g *grid.CostGrid, clusterSize int) *Graph {
	cx := (g.Width + clusterSize - 1) / clusterSize
	cy := (g.Height + clusterSize - 1) / clusterSize
	return &Graph{
		ClusterSize:  clusterSize,
		ClustersX:    cx,
		ClustersY:    cy,
		GridWidth:    g.Width,
		GridHeight:   g.Height,
		clusters:     make([]*Cluster, cx*cy),
		BuiltVersion: g.Version(),
	}
}

// initClusterRow creates the cluster structs of lattice row ky with
// bounds clipped at the map edge
func (gr *Graph) initClusterRow(ky int) {
	for kx := 0; kx < gr.ClustersX; kx++ {
		bx := kx * gr.ClusterSize
		by := ky * gr.ClusterSize
		w := gr.ClusterSize
		h := gr.ClusterSize
		if bx+w > gr.GridWidth {
			w = gr.GridWidth - bx
		}
		if by+h > gr.GridHeight {
			h = gr.GridHeight - by
		}
		gr.clusters[ky*gr.ClustersX+kx] = &Cluster{
			Key:    ClusterKey{X: kx, Y: ky},
			Bounds: core.Area{X: bx, Y: by, Width: w, Height: h},
		}
	}
}

// --- Lookups ---

// ClusterIndex returns the flat row-major index of a key, -1 out of lattice
func (gr *Graph) ClusterIndex(k ClusterKey) int {
	if k.X < 0 || k.Y < 0 || k.X >= gr.ClustersX || k.Y >= gr.ClustersY {
		return -1
	}
	return k.Y*gr.ClustersX + k.X
}

// ClusterAt returns the cluster for a key, nil when out of lattice
func (gr *Graph) ClusterAt(k ClusterKey) *Cluster {
	i := gr.ClusterIndex(k)
	if i < 0 {
		return nil
	}
	return gr.clusters[i]
}

// ClusterOf maps a cell coordinate to its cluster key
// Out-of-map cells yield an out-of-lattice key; truncating division would
// otherwise alias small negative cells into cluster (0,0)
func (gr *Graph) ClusterOf(x, y int) ClusterKey {
	if x < 0 || y < 0 || x >= gr.GridWidth || y >= gr.GridHeight {
		return ClusterKey{X: -1, Y: -1}
	}
	return ClusterKey{X: x / gr.ClusterSize, Y: y / gr.ClusterSize}
}

// RegionOf returns the cluster key and region label of a cell
// ok is false for out-of-map or blocked cells
func (gr *Graph) RegionOf(x, y int) (ClusterKey, RegionID, bool) {
	if x < 0 || y < 0 || x >= gr.GridWidth || y >= gr.GridHeight {
		return ClusterKey{}, NoRegion, false
	}
	key := gr.ClusterOf(x, y)
	r := gr.clusters[gr.ClusterIndex(key)].RegionAt(x, y)
	if r == NoRegion {
		return key, NoRegion, false
	}
	return key, r, true
}

// IslandOf returns the island arena index of a cell, NoIsland for blocked
// or out-of-map cells
func (gr *Graph) IslandOf(x, y int) int32 {
	key, r, ok := gr.RegionOf(x, y)
	if !ok {
		return NoIsland
	}
	return gr.clusters[gr.ClusterIndex(key)].IslandOf(r)
}

// Portal returns the node for an ID; IDs are dense so this is an array read
func (gr *Graph) Portal(id PortalID) *Portal {
	if id < 0 || int(id) >= len(gr.nodes) {
		return nil
	}
	return &gr.nodes[id]
}

// Edges returns the adjacency of a portal, ascending by neighbor ID
func (gr *Graph) Edges(id PortalID) []Edge {
	if id < 0 || int(id) >= len(gr.edges) {
		return nil
	}
	return gr.edges[id]
}

// Nodes returns all portal nodes ordered by ascending ID
func (gr *Graph) Nodes() []Portal {
	return gr.nodes
}

// Clusters returns all clusters in row-major key order
func (gr *Graph) Clusters() []*Cluster {
	return gr.clusters
}

// NodeCount returns the number of portal nodes
func (gr *Graph) NodeCount() int {
	return len(gr.nodes)
}

// EdgeCount returns the total directed edge count
func (gr *Graph) EdgeCount() int {
	n := 0
	for _, adj := range gr.edges {
		n += len(adj)
	}
	return n
}

// ClusterCount returns the number of clusters in the lattice
func (gr *Graph) ClusterCount() int {
	return len(gr.clusters)
}

// IslandCount returns the number of islands assigned during the build
func (gr *Graph) IslandCount() int {
	return gr.islandCount
}

// IslandPortals returns the ascending portal IDs belonging to an island
func (gr *Graph) IslandPortals(island int32) []PortalID {
	if island < 0 || int(island) >= len(gr.islandPortals) {
		return nil
	}
	return gr.islandPortals[island]
}

// --- Portal graph construction ---

// buildClusterEdges computes one cluster's contribution to the portal
// graph: an integration field per portal on its boundary, then an edge per
// reachable portal pair read straight out of the fields. Fields stay
// cached on the cluster for query-time steering
func (gr *Graph) buildClusterEdges(g *grid.CostGrid, c *Cluster, heap *minHeap, seeds []core.Point) []core.Point {
	if len(gr.edges) == 0 && len(gr.nodes) > 0 {
		gr.edges = make([][]Edge, len(gr.nodes))
	}

	c.fields = make([]*Field, len(c.Portals))
	for i, pid := range c.Portals {
		p := &gr.nodes[pid]
		seeds = p.Cells(c.Key, seeds[:0])
		f := newField(c.Bounds)
		f.compute(g, seeds, heap)
		c.fields[i] = f
	}

	// Pairwise costs, ascending on both ends: i < j means ID(i) < ID(j)
	for i := 0; i < len(c.Portals); i++ {
		pi := c.Portals[i]
		fi := c.fields[i]
		for j := i + 1; j < len(c.Portals); j++ {
			pj := c.Portals[j]
			jx, jy := gr.nodes[pj].Center(c.Key)
			cost := fi.DistanceAt(jx, jy)
			if cost < 0 {
				continue // Different regions, no local route
			}
			gr.edges[pi] = append(gr.edges[pi], Edge{To: pj, Cost: cost})
			gr.edges[pj] = append(gr.edges[pj], Edge{To: pi, Cost: cost})
		}
	}
	return seeds
}

// finishEdges sorts every adjacency ascending by neighbor ID and collapses
// duplicates to the cheaper cost. Duplicates appear when two portals share
// both clusters and each side contributed a cost
func (gr *Graph) finishEdges() {
	for id := range gr.edges {
		adj := gr.edges[id]
		sort.Slice(adj, func(a, b int) bool {
			if adj[a].To != adj[b].To {
				return adj[a].To < adj[b].To
			}
			return adj[a].Cost < adj[b].Cost
		})
		out := adj[:0]
		for _, e := range adj {
			if len(out) > 0 && out[len(out)-1].To == e.To {
				continue // Sorted by cost within ID, first one is cheapest
			}
			out = append(out, e)
		}
		gr.edges[id] = out
	}
}
