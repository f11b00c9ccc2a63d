package navigation

import (
	"sort"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/parameter"
)

// ConnectedComponents is the derived cluster-pair reachability index with
// fallback portals for unreachable pairs. When the requested goal cannot
// be reached, the nearest fallback portal substitutes as an interim goal
// so the agent still makes useful progress
type ConnectedComponents struct {
	clusterCap int
	reach      []bool       // clusterCap^2
	fallback   [][]PortalID // clusterCap^2, nil for reachable pairs
}

func newConnectedComponents(clusterCount int) *ConnectedComponents {
	n := clusterCount * clusterCount
	return &ConnectedComponents{
		clusterCap: clusterCount,
		reach:      make([]bool, n),
		fallback:   make([][]PortalID, n),
	}
}

// AreConnected reports whether any region of cluster a reaches any region
// of cluster b. Out-of-bounds indices read as not connected
func (cc *ConnectedComponents) AreConnected(a, b int) bool {
	if a < 0 || b < 0 || a >= cc.clusterCap || b >= cc.clusterCap {
		return false
	}
	return cc.reach[a*cc.clusterCap+b]
}

// FallbackPortals returns substitute portals for an unreachable cluster
// pair, nearest to the goal cluster first. Empty for reachable pairs and
// for start clusters with no portals at all
func (cc *ConnectedComponents) FallbackPortals(from, to int) []PortalID {
	if from < 0 || to < 0 || from >= cc.clusterCap || to >= cc.clusterCap {
		return nil
	}
	return cc.fallback[from*cc.clusterCap+to]
}

// buildClusterRow fills the index row of start cluster ci: reachability to
// every other cluster and, for unreachable pairs, up to
// FallbackPortalLimit portals from ci's islands ordered by Chebyshev
// distance to the goal cluster center (ties by ascending portal ID).
// One incremental build chunk
func (cc *ConnectedComponents) buildClusterRow(gr *Graph, ci int) {
	from := gr.clusters[ci]

	// Islands reachable from any region of the start cluster
	var islands []int32
	for r := 0; r < from.RegionCount; r++ {
		island := from.IslandOf(RegionID(r))
		dup := false
		for _, seen := range islands {
			if seen == island {
				dup = true
				break
			}
		}
		if !dup {
			islands = append(islands, island)
		}
	}

	// Portals reachable from the start cluster, ascending IDs
	var portals []PortalID
	for _, island := range islands {
		portals = append(portals, gr.IslandPortals(island)...)
	}
	sort.Slice(portals, func(i, j int) bool { return portals[i] < portals[j] })

	for cj := 0; cj < cc.clusterCap; cj++ {
		to := gr.clusters[cj]

		connected := false
	scan:
		for r := 0; r < from.RegionCount; r++ {
			for s := 0; s < to.RegionCount; s++ {
				if from.IslandOf(RegionID(r)) == to.IslandOf(RegionID(s)) {
					connected = true
					break scan
				}
			}
		}
		idx := ci*cc.clusterCap + cj
		cc.reach[idx] = connected
		if connected || len(portals) == 0 {
			continue
		}

		// Rank reachable portals by distance to the goal cluster center
		goal := core.Point{
			X: to.Bounds.X + to.Bounds.Width/2,
			Y: to.Bounds.Y + to.Bounds.Height/2,
		}
		ranked := make([]PortalID, len(portals))
		copy(ranked, portals)
		sort.SliceStable(ranked, func(i, j int) bool {
			pi, pj := gr.Portal(ranked[i]), gr.Portal(ranked[j])
			ix, iy := pi.Center(pi.Cluster)
			jx, jy := pj.Center(pj.Cluster)
			di := core.ChebyshevDist(core.Point{X: ix, Y: iy}, goal)
			dj := core.ChebyshevDist(core.Point{X: jx, Y: jy}, goal)
			if di != dj {
				return di < dj
			}
			return ranked[i] < ranked[j]
		})
		if len(ranked) > parameter.FallbackPortalLimit {
			ranked = ranked[:parameter.FallbackPortalLimit]
		}
		cc.fallback[idx] = ranked
	}
}
