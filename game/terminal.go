package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ember/terminal"
)

// RunTerminal drives the simulation inside screen until ctx is cancelled, the
// user quits, or maxTicks steps have run (0 = unlimited). The caller owns the
// screen and must Fini it after RunTerminal returns.
func (g *Game) RunTerminal(ctx context.Context, screen tcell.Screen, maxTicks int) error {
	rend := terminal.NewRenderer(screen, g.cfg.Terminal)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	// PollEvent returns nil once the screen is finalized
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.Terminal.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if g.handleTerminalKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			if !g.paused {
				for i := 0; i < g.stepsPerUpdate; i++ {
					g.step()
				}
			}
			rend.Draw(g.sim.Store(), g.width, g.height, g.statusLine())

			if maxTicks > 0 && int(g.sim.Tick()) >= maxTicks {
				return nil
			}
		}
	}
}

// handleTerminalKey applies a key press and reports whether to quit.
func (g *Game) handleTerminalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			g.togglePause()
		case ',':
			g.adjustSteps(-1)
		case '.':
			g.adjustSteps(1)
		case 'r':
			g.reset()
		case 's':
			g.saveSnapshot()
		}
	}
	return false
}

// statusLine summarizes the simulation for the terminal's bottom row.
func (g *Game) statusLine() string {
	fire, ash := g.sim.Counts()
	state := "running"
	if g.paused {
		state = "paused"
	}
	return fmt.Sprintf(" tick %d  fire %d  ash %d  speed %dx  %s  [q]uit [space] [,/.] [r]eset [s]nap",
		g.sim.Tick(), fire, ash, g.stepsPerUpdate, state)
}
