package system

import (
	"github.com/lixenwraith/gridnav/component"
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/engine"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/vmath"
)

// MotionSystem integrates agent positions along their flow directions with
// soft separation from neighboring agents. Runs after NavigationSystem
type MotionSystem struct {
	world *engine.World

	// Speed per tick in Q32.32 world units, derived from the cell size
	speed int64
}

func NewMotionSystem(world *engine.World) engine.System {
	cell := world.Resources.Grid.CellSize
	return &MotionSystem{
		world: world,
		speed: vmath.MulDiv(cell, parameter.AgentSpeedMilliCells, 1000),
	}
}

func (s *MotionSystem) Priority() int {
	return parameter.PrioritySteering
}

func (s *MotionSystem) Update() {
	g := s.world.Resources.Grid
	sp := s.world.Resources.Spatial

	s.world.Kinetics.ForEach(func(e core.Entity, k *component.KineticComponent) {
		n, ok := s.world.Navigations.Get(e)
		if !ok || (n.FlowX == 0 && n.FlowY == 0) {
			k.VelX, k.VelY = 0, 0
			return
		}

		dirX, dirY := n.FlowX, n.FlowY

		// Soft separation: push away from agents in adjacent cells
		cx, cy := g.WorldToGrid(k.PreciseX, k.PreciseY)
		var sepX, sepY int64
		sp.ForEachNeighbor(uint64(e), cx, cy, parameter.SeparationRadius, func(o uint64, pos core.Point) {
			other, found := s.world.Kinetics.Get(core.Entity(o))
			if !found {
				return
			}
			dx := k.PreciseX - other.PreciseX
			dy := k.PreciseY - other.PreciseY
			if dx == 0 && dy == 0 {
				return
			}
			nx, ny := vmath.Normalize2D(dx, dy)
			sepX += nx
			sepY += ny
		})
		if sepX != 0 || sepY != 0 {
			dirX += vmath.Mul(sepX, parameter.SeparationWeight)
			dirY += vmath.Mul(sepY, parameter.SeparationWeight)
			dirX, dirY = vmath.Normalize2D(dirX, dirY)
		}

		k.VelX = vmath.Mul(dirX, s.speed)
		k.VelY = vmath.Mul(dirY, s.speed)

		nextX := k.PreciseX + k.VelX
		nextY := k.PreciseY + k.VelY
		nx, ny := g.WorldToGrid(nextX, nextY)
		if g.IsBlocked(nx, ny) {
			// Slide along the allowed axis instead of stopping dead
			if !g.IsBlocked(nx, cy) {
				nextY = k.PreciseY
				ny = cy
			} else if !g.IsBlocked(cx, ny) {
				nextX = k.PreciseX
				nx = cx
			} else {
				return
			}
		}

		k.PreciseX, k.PreciseY = nextX, nextY
		if nx != cx || ny != cy {
			sp.Move(uint64(e), cx, cy, nx, ny)
		}
	})
}
