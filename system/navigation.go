package system

import (
	"sync/atomic"

	"github.com/lixenwraith/gridnav/component"
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/engine"
	"github.com/lixenwraith/gridnav/navigation"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/vmath"
)

// NavigationSystem drives the incremental graph build, consumes the path
// request queue, and computes per-agent flow directions from the routing
// arenas and cached integration fields
type NavigationSystem struct {
	world *engine.World

	// Last published build generation; a change invalidates hierarchical
	// paths and forces re-resolution
	lastEpoch uint64

	statAgents   *atomic.Int64
	statResolved *atomic.Int64
	statNoPath   *atomic.Int64
	statRebuilds *atomic.Int64
}

func NewNavigationSystem(world *engine.World) engine.System {
	s := &NavigationSystem{world: world}

	st := world.Resources.Status
	s.statAgents = st.Ints.Get("nav.agents")
	s.statResolved = st.Ints.Get("nav.resolved")
	s.statNoPath = st.Ints.Get("nav.no_path")
	s.statRebuilds = st.Ints.Get("nav.rebuilds")

	return s
}

func (s *NavigationSystem) Priority() int {
	return parameter.PriorityNavigation
}

func (s *NavigationSystem) Update() {
	nav := s.world.Resources.Nav

	// One build chunk per tick; a failed build leaves the previous graph up
	_ = nav.Tick()

	// A publish invalidates every hierarchical path; re-request with the
	// stored goal so agents reroute against the new topology
	if epoch := nav.Epoch(); epoch != s.lastEpoch {
		if s.lastEpoch != 0 {
			s.statRebuilds.Add(1)
			s.world.Navigations.ForEach(func(e core.Entity, n *component.NavigationComponent) {
				if n.Path.Kind == navigation.PathHierarchical && n.Path.Epoch != epoch {
					n.Pending = true
				}
			})
		}
		s.lastEpoch = epoch
	}

	// Accept new requests in submission order
	for _, req := range s.world.Resources.Requests.Drain() {
		n, ok := s.world.Navigations.Get(req.Entity)
		if !ok {
			continue
		}
		n.GoalX, n.GoalY = req.GoalX, req.GoalY
		n.Pending = true
		n.Arrived = false
	}

	if !nav.Initialized() {
		return
	}

	agents := int64(0)
	s.world.Navigations.ForEach(func(e core.Entity, n *component.NavigationComponent) {
		agents++
		k, ok := s.world.Kinetics.Get(e)
		if !ok {
			return
		}

		if n.Pending {
			n.Path = nav.ResolvePath(k.PreciseX, k.PreciseY, n.GoalX, n.GoalY)
			n.Pending = false
			if n.Path.Kind == navigation.PathNone {
				s.statNoPath.Add(1)
			} else {
				s.statResolved.Add(1)
			}
		}

		step, ok := nav.NextStep(&n.Path, k.PreciseX, k.PreciseY)
		if !ok {
			n.FlowX, n.FlowY = 0, 0
			return
		}
		if step.Arrived {
			n.Arrived = true
			n.Path = navigation.Path{Kind: navigation.PathNone}
			n.FlowX, n.FlowY = 0, 0
			return
		}
		n.FlowX, n.FlowY = vmath.Normalize2D(step.TargetX-k.PreciseX, step.TargetY-k.PreciseY)
	})
	s.statAgents.Store(agents)
}
