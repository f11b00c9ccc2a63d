package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/maze"
	"github.com/lixenwraith/gridnav/navigation"
	"github.com/lixenwraith/gridnav/parameter"
	"github.com/lixenwraith/gridnav/vmath"
)

func main() {
	width := flag.Int("width", 500, "map width in cells")
	height := flag.Int("height", 500, "map height in cells")
	useMaze := flag.Bool("maze", false, "maze obstacles instead of scattered blocks")
	seed := flag.Uint64("seed", 1, "obstacle seed")
	queries := flag.Int("queries", 10000, "resolve+step query count")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var g *grid.CostGrid
	if *useMaze {
		r := maze.Generate(maze.Config{
			Width:    *width,
			Height:   *height,
			Braiding: 500,
			Seed:     *seed,
		}, vmath.FromInt(1))
		g = r.Grid
	} else {
		g = grid.New(*width, *height, vmath.FromInt(1), 0, 0)
		rng := vmath.NewFastRand(*seed)
		for i := 0; i < g.Width*g.Height/120; i++ {
			bw, bh := 2+rng.Intn(8), 2+rng.Intn(8)
			x, y := rng.Intn(g.Width-bw), rng.Intn(g.Height-bh)
			g.FillRect(core.Area{X: x, Y: y, Width: bw, Height: bh}, grid.CostBlocked)
		}
	}

	ctx := navigation.NewContext(g, parameter.ClusterSize)

	start := time.Now()
	if err := ctx.BuildSync(); err != nil {
		log.Error("build failed", "error", err)
		os.Exit(1)
	}
	buildTime := time.Since(start)

	gr := ctx.Graph()
	log.Info("build",
		"size", *width*(*height),
		"duration", buildTime,
		"clusters", gr.ClusterCount(),
		"portals", gr.NodeCount(),
		"edges", gr.EdgeCount(),
		"islands", gr.IslandCount(),
	)

	// Incremental rebuild for tick-budget comparison
	ctx.Reset()
	start = time.Now()
	ticks := 0
	for ctx.State() != navigation.BuildDone {
		if err := ctx.Tick(); err != nil {
			log.Error("incremental build failed", "error", err)
			os.Exit(1)
		}
		ticks++
	}
	log.Info("incremental build",
		"duration", time.Since(start),
		"ticks", ticks,
		"per_tick", time.Since(start)/time.Duration(ticks),
	)

	// Query load: random resolvable pairs, one resolve plus one step each
	rng := vmath.NewFastRand(*seed ^ 0xdeadbeef)
	cell := func() (int64, int64) {
		for {
			x, y := rng.Intn(g.Width), rng.Intn(g.Height)
			if !g.IsBlocked(x, y) {
				return g.GridToWorld(x, y)
			}
		}
	}

	var resolved, none int
	start = time.Now()
	for i := 0; i < *queries; i++ {
		sx, sy := cell()
		gx, gy := cell()
		p := ctx.ResolvePath(sx, sy, gx, gy)
		if p.Kind == navigation.PathNone {
			none++
			continue
		}
		resolved++
		ctx.NextStep(&p, sx, sy)
	}
	queryTime := time.Since(start)
	log.Info("queries",
		"count", *queries,
		"resolved", resolved,
		"no_path", none,
		"duration", queryTime,
		"per_query", queryTime/time.Duration(*queries),
	)
}
