package engine

import (
	"testing"

	"github.com/lixenwraith/gridnav/core"
)

type health struct {
	HP int
}

func TestStoreSortedIteration(t *testing.T) {
	s := NewStore[health]()
	for _, e := range []core.Entity{7, 2, 9, 4, 1} {
		s.Set(e, health{HP: int(e)})
	}

	var order []core.Entity
	s.ForEach(func(e core.Entity, c *health) {
		order = append(order, e)
		if c.HP != int(e) {
			t.Fatalf("entity %d has HP %d", e, c.HP)
		}
	})

	want := []core.Entity{1, 2, 4, 7, 9}
	if len(order) != len(want) {
		t.Fatalf("got %d entities, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("iteration order %v, want %v", order, want)
		}
	}
}

func TestStoreSetReplaceAndRemove(t *testing.T) {
	s := NewStore[health]()
	s.Set(3, health{HP: 10})
	s.Set(3, health{HP: 20})
	if s.Len() != 1 {
		t.Fatalf("replace must not grow the store, len=%d", s.Len())
	}
	h, ok := s.Get(3)
	if !ok || h.HP != 20 {
		t.Fatalf("got %+v ok=%v", h, ok)
	}

	// Mutation through the pointer sticks
	h.HP = 30
	h2, _ := s.Get(3)
	if h2.HP != 30 {
		t.Fatalf("pointer mutation lost, HP=%d", h2.HP)
	}

	s.Remove(3)
	if s.Has(3) || s.Len() != 0 {
		t.Fatal("remove failed")
	}
	s.Remove(3) // Idempotent
}

func TestRequestQueueOrder(t *testing.T) {
	q := &RequestQueue{}
	for i := 1; i <= 5; i++ {
		q.Push(PathRequest{Entity: core.Entity(i)})
	}
	out := q.Drain()
	if len(out) != 5 {
		t.Fatalf("drained %d, want 5", len(out))
	}
	for i, r := range out {
		if r.Entity != core.Entity(i+1) {
			t.Fatalf("request %d is entity %d, want FIFO order", i, r.Entity)
		}
	}
	if q.Len() != 0 {
		t.Fatal("queue not emptied")
	}
}
