package engine

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/navigation"
	"github.com/lixenwraith/gridnav/spatial"
	"github.com/lixenwraith/gridnav/status"
)

// Resources are the shared singletons systems read and write during the
// tick. Named fields instead of a reflective store: the set is small and
// fixed, and lookups stay on the hot path
type Resources struct {
	// Tick is the authoritative simulation frame index
	Tick int64

	Grid    *grid.CostGrid
	Nav     *navigation.Context
	Spatial *spatial.Grid
	Status  *status.Registry

	// Requests is the ordered path-request inbox consumed by the
	// navigation system each tick
	Requests *RequestQueue
}

// PathRequest asks the navigation system to route an entity to a world
// position. Requests are served strictly in submission order
type PathRequest struct {
	Entity       core.Entity
	GoalX, GoalY int64
}

// RequestQueue is a FIFO of pending path requests
type RequestQueue struct {
	pending []PathRequest
}

// Push appends a request
func (q *RequestQueue) Push(r PathRequest) {
	q.pending = append(q.pending, r)
}

// Drain returns all pending requests in submission order and empties the
// queue. The returned slice is valid until the next Push
func (q *RequestQueue) Drain() []PathRequest {
	out := q.pending
	q.pending = q.pending[len(q.pending):]
	return out
}

// Len returns the number of queued requests
func (q *RequestQueue) Len() int {
	return len(q.pending)
}
