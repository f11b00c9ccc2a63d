package navigation

import (
	"github.com/lixenwraith/gridnav/parameter"
)

// RoutingTable holds the two flattened precomputed arenas answering "which
// way do I go" in O(1) at agent-query time
//
// Island arena: MaxIslands^2 entries of next portal ID
// Region arena: clusterCap^2 * MaxRegions^2 entries of next region, plus a
// parallel portal arena steering uses to pick the integration field
//
// Both are write-once per build and read-many. A cluster-count change
// requires Resize, which reallocates and clears everything; callers must
// rebuild before querying again
type RoutingTable struct {
	clusterCap  int
	initialized bool

	islandNext   []PortalID
	regionNext   []RegionID
	regionPortal []PortalID
}

// NewRoutingTable allocates arenas sized for clusterCount clusters
func NewRoutingTable(clusterCount int) *RoutingTable {
	t := &RoutingTable{}
	t.Resize(clusterCount)
	return t
}

// IsSizedCorrectly reports whether the region arena matches clusterCount
// Callers must Resize before querying when this returns false
func (t *RoutingTable) IsSizedCorrectly(clusterCount int) bool {
	return t.clusterCap == clusterCount
}

// Resize reallocates both arenas for clusterCount clusters and clears
// every entry. Destructive: all previous routing data is lost and the
// table reads as uninitialized until the next build writes it
func (t *RoutingTable) Resize(clusterCount int) {
	if clusterCount < 0 {
		clusterCount = 0
	}
	t.clusterCap = clusterCount
	t.initialized = false

	t.islandNext = make([]PortalID, parameter.MaxIslands*parameter.MaxIslands)
	for i := range t.islandNext {
		t.islandNext[i] = NoPortal
	}

	n := clusterCount * clusterCount * parameter.MaxRegions * parameter.MaxRegions
	t.regionNext = make([]RegionID, n)
	t.regionPortal = make([]PortalID, n)
	for i := 0; i < n; i++ {
		t.regionNext[i] = NoRegion
		t.regionPortal[i] = NoPortal
	}
}

// Initialized reports whether a build has completed into this table
func (t *RoutingTable) Initialized() bool {
	return t.initialized
}

func (t *RoutingTable) regionIdx(srcCluster, dstCluster int, srcRegion, dstRegion RegionID) int {
	return ((srcCluster*t.clusterCap)+dstCluster)*parameter.MaxRegions*parameter.MaxRegions +
		int(srcRegion)*parameter.MaxRegions + int(dstRegion)
}

// FindNextPortal returns the portal an agent in srcIsland should head
// toward to reach dstIsland. ok is false when either island is out of
// bounds, the table is uninitialized, or the islands are not connected in
// the portal graph
func (t *RoutingTable) FindNextPortal(srcIsland, dstIsland int32) (PortalID, bool) {
	if !t.initialized ||
		srcIsland < 0 || int(srcIsland) >= parameter.MaxIslands ||
		dstIsland < 0 || int(dstIsland) >= parameter.MaxIslands {
		return NoPortal, false
	}
	p := t.islandNext[int(srcIsland)*parameter.MaxIslands+int(dstIsland)]
	if p == NoPortal {
		return NoPortal, false
	}
	return p, true
}

// NextRegion returns the region to move toward next when traveling from
// (srcCluster, srcRegion) to (dstCluster, dstRegion). ok is false for
// out-of-bounds indices, an uninitialized table, or unreachable pairs
func (t *RoutingTable) NextRegion(srcCluster, dstCluster int, srcRegion, dstRegion RegionID) (RegionID, bool) {
	if !t.initialized ||
		srcCluster < 0 || srcCluster >= t.clusterCap ||
		dstCluster < 0 || dstCluster >= t.clusterCap ||
		int(srcRegion) >= parameter.MaxRegions || int(dstRegion) >= parameter.MaxRegions {
		return NoRegion, false
	}
	r := t.regionNext[t.regionIdx(srcCluster, dstCluster, srcRegion, dstRegion)]
	if r == NoRegion {
		return NoRegion, false
	}
	return r, true
}

// NextPortalFor returns the portal to cross toward the next region for the
// same tuple NextRegion answers. Steering reads this to select the cached
// integration field. NoPortal with ok=true means the destination region is
// the current one
func (t *RoutingTable) NextPortalFor(srcCluster, dstCluster int, srcRegion, dstRegion RegionID) (PortalID, bool) {
	if !t.initialized ||
		srcCluster < 0 || srcCluster >= t.clusterCap ||
		dstCluster < 0 || dstCluster >= t.clusterCap ||
		int(srcRegion) >= parameter.MaxRegions || int(dstRegion) >= parameter.MaxRegions {
		return NoPortal, false
	}
	idx := t.regionIdx(srcCluster, dstCluster, srcRegion, dstRegion)
	if t.regionNext[idx] == NoRegion {
		return NoPortal, false
	}
	return t.regionPortal[idx], true
}

// --- Build-time writes (single owner, never concurrent with reads) ---

func (t *RoutingTable) setIslandNext(srcIsland, dstIsland int32, p PortalID) {
	t.islandNext[int(srcIsland)*parameter.MaxIslands+int(dstIsland)] = p
}

func (t *RoutingTable) setRegionRoute(srcCluster, dstCluster int, srcRegion, dstRegion RegionID, next RegionID, portal PortalID) {
	idx := t.regionIdx(srcCluster, dstCluster, srcRegion, dstRegion)
	t.regionNext[idx] = next
	t.regionPortal[idx] = portal
}

func (t *RoutingTable) markInitialized() {
	t.initialized = true
}
