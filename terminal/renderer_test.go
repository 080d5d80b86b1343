package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/systems"
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestCellFor(t *testing.T) {
	tests := []struct {
		name     string
		pos      components.Position
		col, row int
		ok       bool
	}{
		{"origin", components.Position{X: 0, Y: 0}, 0, 0, true},
		{"middle", components.Position{X: 100, Y: 50}, 10, 5, true},
		{"truncates", components.Position{X: 15, Y: 25}, 1, 2, true},
		{"last cell", components.Position{X: 199.9, Y: 99.9}, 19, 9, true},
		{"left of viewport", components.Position{X: -0.1, Y: 10}, 0, 0, false},
		{"above viewport", components.Position{X: 10, Y: -3}, 0, 0, false},
		{"right edge", components.Position{X: 200, Y: 10}, 0, 0, false},
		{"bottom edge", components.Position{X: 10, Y: 100}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := CellFor(tt.pos, 200, 100, 20, 10)
			if ok != tt.ok || (ok && (col != tt.col || row != tt.row)) {
				t.Errorf("CellFor(%+v) = (%d, %d, %v), want (%d, %d, %v)", tt.pos, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}
}

func TestBlendColor(t *testing.T) {
	black := colorful.Color{}

	tests := []struct {
		name    string
		p       components.Particle
		r, g, b int32
	}{
		{"fresh fire saturates", components.Particle{Kind: components.KindFire, Life: 5}, 255, 255, 51},
		{"fire at full life", components.Particle{Kind: components.KindFire, Life: 1}, 255, 255, 51},
		{"exhausted fire is invisible", components.Particle{Kind: components.KindFire, Life: 0}, 0, 0, 0},
		{"exhausted ash is invisible", components.Particle{Kind: components.KindAsh, Life: 0}, 0, 0, 0},
		{"ash at full life is black", components.Particle{Kind: components.KindAsh, Life: 1}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := BlendColor(systems.Shade(tt.p), black).RGB()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("BlendColor = (%d, %d, %d), want (%d, %d, %d)", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestBlendColorHalfAlpha(t *testing.T) {
	r, g, b := BlendColor(systems.Tint{R: 1, G: 1, B: 1, A: 0.5}, colorful.Color{}).RGB()
	for _, c := range []int32{r, g, b} {
		if c < 127 || c > 128 {
			t.Errorf("half alpha white over black = (%d, %d, %d), want ~128", r, g, b)
			break
		}
	}
}

func TestRendererDraw(t *testing.T) {
	screen := newTestScreen(t, 20, 11) // 10 field rows + status
	rend := NewRenderer(screen, config.TerminalConfig{FireGlyph: "*", AshGlyph: "."})

	store := systems.NewSliceStore(0)
	store.Add(components.Particle{Position: components.Position{X: 15, Y: 25}, Life: 1, Kind: components.KindFire})
	store.Add(components.Particle{Position: components.Position{X: 195, Y: 95}, Life: 0.5, Kind: components.KindAsh})
	store.Add(components.Particle{Position: components.Position{X: -5, Y: 10}, Life: 1, Kind: components.KindFire})
	// Same cell as the first fire; drawn later so it wins
	store.Add(components.Particle{Position: components.Position{X: 100, Y: 50}, Life: 1, Kind: components.KindFire})
	store.Add(components.Particle{Position: components.Position{X: 101, Y: 51}, Life: 0.5, Kind: components.KindAsh})

	rend.Draw(store, 200, 100, "ok")

	tests := []struct {
		name     string
		col, row int
		want     rune
	}{
		{"fire cell", 1, 2, '*'},
		{"ash cell", 19, 9, '.'},
		{"overwritten cell", 10, 5, '.'},
		{"status", 0, 10, 'o'},
		{"status", 1, 10, 'k'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _, _ := screen.GetContent(tt.col, tt.row)
			if got != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
			}
		})
	}

	_, _, style, _ := screen.GetContent(1, 2)
	fg, _, _ := style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 255 || b != 51 {
		t.Errorf("fire foreground = (%d, %d, %d), want (255, 255, 51)", r, g, b)
	}
}

func TestRendererDrawTinyScreen(t *testing.T) {
	screen := newTestScreen(t, 10, 1) // status row only
	rend := NewRenderer(screen, config.TerminalConfig{})

	store := systems.NewSliceStore(0)
	store.Add(components.Particle{Position: components.Position{X: 1, Y: 1}, Life: 1, Kind: components.KindFire})

	// Must not panic with no room for the field
	rend.Draw(store, 640, 480, "status")
}

func TestNewRendererGlyphFallback(t *testing.T) {
	screen := newTestScreen(t, 4, 4)
	rend := NewRenderer(screen, config.TerminalConfig{FireGlyph: "", AshGlyph: "░"})

	if rend.fireGlyph != '*' {
		t.Errorf("fire glyph = %q, want fallback '*'", rend.fireGlyph)
	}
	if rend.ashGlyph != '░' {
		t.Errorf("ash glyph = %q, want '░'", rend.ashGlyph)
	}
}
