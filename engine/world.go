package engine

import (
	"github.com/lixenwraith/gridnav/component"
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/navigation"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/spatial"
	"github.com/lixenwraith/gridnav/status"
)

// System is one simulation stage. Systems run every tick in ascending
// Priority order
type System interface {
	Update()
	Priority() int
}

// World owns all entities, their typed component stores, and the shared
// resources. Single-threaded by contract: one Update at a time
type World struct {
	nextEntityID core.Entity

	Kinetics    *Store[component.KineticComponent]
	Navigations *Store[component.NavigationComponent]

	Resources *Resources

	systems []System
}

// NewWorld creates a world simulating navigation over g
func NewWorld(g *grid.CostGrid) *World {
	return &World{
		nextEntityID: 1,
		Kinetics:     NewStore[component.KineticComponent](),
		Navigations:  NewStore[component.NavigationComponent](),
		Resources: &Resources{
			Grid:     g,
			Nav:      navigation.NewContext(g, parameter.ClusterSize),
			Spatial:  spatial.NewGrid(g.Width, g.Height),
			Status:   status.NewRegistry(),
			Requests: &RequestQueue{},
		},
	}
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// SpawnAgent creates an entity with kinetic and navigation components at a
// grid cell, registered in the spatial index
func (w *World) SpawnAgent(x, y int) core.Entity {
	e := w.CreateEntity()
	px, py := w.Resources.Grid.GridToWorld(x, y)
	w.Kinetics.Set(e, component.KineticComponent{PreciseX: px, PreciseY: py})
	w.Navigations.Set(e, component.NavigationComponent{})
	w.Resources.Spatial.Add(uint64(e), x, y)
	return e
}

// DestroyEntity removes all components of an entity
func (w *World) DestroyEntity(e core.Entity) {
	if k, ok := w.Kinetics.Get(e); ok {
		x, y := w.Resources.Grid.WorldToGrid(k.PreciseX, k.PreciseY)
		w.Resources.Spatial.Remove(uint64(e), x, y)
	}
	w.Kinetics.Remove(e)
	w.Navigations.Remove(e)
}

// RequestPath queues a path request for an entity, served next tick
func (w *World) RequestPath(e core.Entity, goalX, goalY int64) {
	w.Resources.Requests.Push(PathRequest{Entity: e, GoalX: goalX, GoalY: goalY})
}

// RequestPathToCell queues a path request targeting a grid cell center
func (w *World) RequestPathToCell(e core.Entity, x, y int) {
	gx, gy := w.Resources.Grid.GridToWorld(x, y)
	w.RequestPath(e, gx, gy)
}

// CellOf returns the grid cell an entity currently occupies
func (w *World) CellOf(e core.Entity) (core.Point, bool) {
	k, ok := w.Kinetics.Get(e)
	if !ok {
		return core.Point{}, false
	}
	x, y := w.Resources.Grid.WorldToGrid(k.PreciseX, k.PreciseY)
	return core.Point{X: x, Y: y}, true
}

// AddSystem registers a system, keeping the list sorted by priority
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)

	// Bubble sort, small N
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Update advances the simulation one tick: all systems in priority order,
// then the frame counter
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update()
	}
	w.Resources.Tick++
}

// EntityCount returns the number of live kinetic entities
func (w *World) EntityCount() int {
	return w.Kinetics.Len()
}
