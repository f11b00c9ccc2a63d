package navigation

import (
	"fmt"

	"github.com/lixenwraith/gridnav/parameter"
)

// Islands group mutually reachable regions across clusters. Membership is
// tracked per (cluster, region) slot: a cluster split by a wall contributes
// one slot per side, so an isolated pocket forms its own island.
// Slot index = clusterIndex*MaxRegions + regionID

// islandUnionFind is a plain union-find with path halving
// Assignment order, not union order, decides final island indices, so the
// structure needs no deterministic union discipline
type islandUnionFind struct {
	parent []int32
}

func newIslandUnionFind(clusterCount int) *islandUnionFind {
	uf := &islandUnionFind{
		parent: make([]int32, clusterCount*parameter.MaxRegions),
	}
	for i := range uf.parent {
		uf.parent[i] = int32(i)
	}
	return uf
}

func (uf *islandUnionFind) find(i int32) int32 {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *islandUnionFind) union(a, b int32) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	// Anchor on the smaller root to keep roots stable under any
	// union order
	if rb < ra {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
}

// unionPortalBatch unions the region slots on both sides of portals
// [from, from+n), clipped to the node count. One incremental build chunk
func (gr *Graph) unionPortalBatch(uf *islandUnionFind, from, n int) int {
	end := from + n
	if end > len(gr.nodes) {
		end = len(gr.nodes)
	}
	for i := from; i < end; i++ {
		p := &gr.nodes[i]
		a := int32(gr.ClusterIndex(p.Cluster))*parameter.MaxRegions + int32(p.Region)
		b := int32(gr.ClusterIndex(p.Neighbor))*parameter.MaxRegions + int32(p.NeighborRegion)
		uf.union(a, b)
	}
	return end
}

// assignIslands walks clusters row-major and regions ascending, handing
// each unseen union-find root the next ascending island index. The scan
// order is what makes island indices reproducible across runs
func (gr *Graph) assignIslands(uf *islandUnionFind) error {
	rootIsland := make(map[int32]int32, 64)
	next := int32(0)

	for ci, c := range gr.clusters {
		for r := 0; r < c.RegionCount; r++ {
			root := uf.find(int32(ci)*parameter.MaxRegions + int32(r))
			island, seen := rootIsland[root]
			if !seen {
				if int(next) >= parameter.MaxIslands {
					return fmt.Errorf("%w: limit %d", ErrIslandOverflow, parameter.MaxIslands)
				}
				island = next
				next++
				rootIsland[root] = island
			}
			c.islands[r] = island
		}
	}

	gr.islandCount = int(next)
	gr.islandPortals = make([][]PortalID, next)
	for i := range gr.nodes {
		p := &gr.nodes[i]
		c := gr.clusters[gr.ClusterIndex(p.Cluster)]
		island := c.IslandOf(p.Region)
		if island >= 0 {
			gr.islandPortals[island] = append(gr.islandPortals[island], p.ID)
		}
	}
	return nil
}
