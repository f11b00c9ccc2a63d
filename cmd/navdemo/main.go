package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/engine"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/maze"
	"github.com/lixenwraith/gridnav/navigation"
	"github.com/lixenwraith/gridnav/system"
	"github.com/lixenwraith/gridnav/vmath"
)

var (
	styleDefault = tcell.StyleDefault
	styleWall    = styleDefault.Foreground(tcell.ColorGray)
	stylePortal  = styleDefault.Foreground(tcell.ColorYellow)
	styleAgent   = styleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleGoal    = styleDefault.Foreground(tcell.ColorRed)
	styleStatus  = styleDefault.Reverse(true)
)

type demo struct {
	cfg    Config
	screen tcell.Screen
	world  *engine.World
	agents []core.Entity
	seed   uint64

	goalX, goalY int
	hasGoal      bool
}

func main() {
	configPath := flag.String("config", "navdemo.yaml", "config file path")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Error("screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		log.Error("screen init", "error", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	d := &demo{cfg: cfg, screen: screen, seed: cfg.Seed}
	d.reset()

	if err := d.run(); err != nil {
		screen.Fini()
		log.Error("demo", "error", err)
		os.Exit(1)
	}
}

// reset regenerates obstacles and replaces the world; the next ticks run
// the incremental build visibly
func (d *demo) reset() {
	var g *grid.CostGrid
	if d.cfg.Maze {
		r := maze.Generate(maze.Config{
			Width:    d.cfg.Width,
			Height:   d.cfg.Height,
			Braiding: d.cfg.Braiding,
			Seed:     d.seed,
		}, vmath.FromInt(1))
		g = r.Grid
	} else {
		g = grid.New(d.cfg.Width, d.cfg.Height, vmath.FromInt(1), 0, 0)
		scatterBlocks(g, d.seed)
	}

	w := engine.NewWorld(g)
	w.AddSystem(system.NewNavigationSystem(w))
	w.AddSystem(system.NewMotionSystem(w))

	d.world = w
	d.agents = d.agents[:0]
	d.hasGoal = false

	rng := vmath.NewFastRand(d.seed ^ 0x9e3779b97f4a7c15)
	for len(d.agents) < d.cfg.Agents {
		x, y := rng.Intn(g.Width), rng.Intn(g.Height)
		if g.IsBlocked(x, y) {
			continue
		}
		d.agents = append(d.agents, w.SpawnAgent(x, y))
	}
}

// scatterBlocks drops rectangular obstacles over roughly a tenth of the map
func scatterBlocks(g *grid.CostGrid, seed uint64) {
	rng := vmath.NewFastRand(seed)
	blocks := g.Width * g.Height / 120
	for i := 0; i < blocks; i++ {
		bw, bh := 2+rng.Intn(6), 1+rng.Intn(4)
		x, y := rng.Intn(g.Width-bw), rng.Intn(g.Height-bh)
		g.FillRect(core.Area{X: x, Y: y, Width: bw, Height: bh}, grid.CostBlocked)
	}
}

func (d *demo) run() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go d.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Duration(d.cfg.TickMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					close(quit)
					return nil
				case ev.Rune() == 'r':
					d.seed++
					d.reset()
				case ev.Rune() == 'b':
					d.world.Resources.Nav.Reset()
				}
			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 != 0 {
					x, y := ev.Position()
					d.setGoal(x, y)
				}
			case *tcell.EventResize:
				d.screen.Sync()
			}

		case <-ticker.C:
			d.world.Update()
			d.render()
		}
	}
}

func (d *demo) setGoal(x, y int) {
	g := d.world.Resources.Grid
	if !g.InBounds(x, y) {
		return
	}
	d.goalX, d.goalY = x, y
	d.hasGoal = true
	for _, e := range d.agents {
		d.world.RequestPathToCell(e, x, y)
	}
}

func (d *demo) render() {
	s := d.screen
	s.Clear()
	g := d.world.Resources.Grid
	nav := d.world.Resources.Nav

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsBlocked(x, y) {
				s.SetContent(x, y, '█', nil, styleWall)
			}
		}
	}

	if gr := nav.Graph(); gr != nil {
		var cells []core.Point
		for i := range gr.Nodes() {
			p := gr.Portal(navigation.PortalID(i))
			cells = p.Cells(p.Cluster, cells[:0])
			for _, c := range cells {
				s.SetContent(c.X, c.Y, '+', nil, stylePortal)
			}
		}
	}

	if d.hasGoal {
		s.SetContent(d.goalX, d.goalY, 'x', nil, styleGoal)
	}
	for _, e := range d.agents {
		if cell, ok := d.world.CellOf(e); ok {
			s.SetContent(cell.X, cell.Y, '@', nil, styleAgent)
		}
	}

	d.renderStatus()
	s.Show()
}

func (d *demo) renderStatus() {
	nav := d.world.Resources.Nav
	line := fmt.Sprintf(" %s %3.0f%%", nav.State(), nav.Progress.Fraction.Get()*100)
	if gr := nav.Graph(); gr != nil {
		line += fmt.Sprintf(" | portals %d edges %d islands %d",
			gr.NodeCount(), gr.EdgeCount(), gr.IslandCount())
	}
	line += fmt.Sprintf(" | agents %d tick %d | click: goal  r: new map  b: rebuild  q: quit",
		len(d.agents), d.world.Resources.Tick)

	w, h := d.screen.Size()
	for i := 0; i < w; i++ {
		r := ' '
		if i < len(line) {
			r = rune(line[i])
		}
		d.screen.SetContent(i, h-1, r, nil, styleStatus)
	}
}
