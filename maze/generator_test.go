package maze

import (
	"testing"

	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/vmath"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Width: 31, Height: 21, Braiding: 300, Seed: 42}
	a := Generate(cfg, vmath.FromInt(1))
	b := Generate(cfg, vmath.FromInt(1))

	if a.Start != b.Start || a.End != b.End {
		t.Fatal("endpoints differ between identical configs")
	}
	for y := 0; y < a.Grid.Height; y++ {
		for x := 0; x < a.Grid.Width; x++ {
			if a.Grid.IsBlocked(x, y) != b.Grid.IsBlocked(x, y) {
				t.Fatalf("cell (%d,%d) differs between identical configs", x, y)
			}
		}
	}

	c := Generate(Config{Width: 31, Height: 21, Braiding: 300, Seed: 43}, vmath.FromInt(1))
	same := true
	for y := 0; y < a.Grid.Height && same; y++ {
		for x := 0; x < a.Grid.Width; x++ {
			if a.Grid.IsBlocked(x, y) != c.Grid.IsBlocked(x, y) {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical mazes")
	}
}

func TestGenerateEndpointsConnected(t *testing.T) {
	r := Generate(Config{Width: 41, Height: 31, Seed: 7}, vmath.FromInt(1))
	g := r.Grid

	if g.IsBlocked(r.Start.X, r.Start.Y) || g.IsBlocked(r.End.X, r.End.Y) {
		t.Fatal("endpoints must be open")
	}

	// 4-connected BFS from start must reach end
	w, h := g.Width, g.Height
	visited := make([]bool, w*h)
	queue := []int{r.Start.Y*w + r.Start.X}
	visited[queue[0]] = true
	endIdx := r.End.Y*w + r.End.X
	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		if cur == endIdx {
			found = true
			break
		}
		cx, cy := cur%w, cur/w
		for _, d := range ortho {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h || g.IsBlocked(nx, ny) {
				continue
			}
			if !visited[ny*w+nx] {
				visited[ny*w+nx] = true
				queue = append(queue, ny*w+nx)
			}
		}
	}
	if !found {
		t.Fatal("maze start and end are disconnected")
	}
}

func TestGenerateOddDimensions(t *testing.T) {
	r := Generate(Config{Width: 20, Height: 14, Seed: 1}, vmath.FromInt(1))
	if r.Grid.Width != 19 || r.Grid.Height != 13 {
		t.Fatalf("dimensions %dx%d, want rounded down to odd 19x13",
			r.Grid.Width, r.Grid.Height)
	}
	if r.Grid.Cost(0, 0) != grid.CostBlocked {
		t.Fatal("border must stay walled without RemoveBorders")
	}
}

func TestRemoveBordersOpensEdge(t *testing.T) {
	r := Generate(Config{Width: 21, Height: 21, RemoveBorders: true, Seed: 9}, vmath.FromInt(1))
	for x := 0; x < r.Grid.Width; x++ {
		if r.Grid.IsBlocked(x, 0) || r.Grid.IsBlocked(x, r.Grid.Height-1) {
			t.Fatalf("border cell (%d, edge) still blocked", x)
		}
	}
}
