// Package terminal draws the particle store into a tcell screen, one cell per
// particle, with the world viewport scaled to the character grid.
package terminal

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/systems"
)

// Renderer maps particles onto terminal cells.
type Renderer struct {
	screen    tcell.Screen
	fireGlyph rune
	ashGlyph  rune
	bg        colorful.Color
	scratch   []components.Particle
}

// NewRenderer creates a renderer drawing to screen with the configured glyphs.
func NewRenderer(screen tcell.Screen, cfg config.TerminalConfig) *Renderer {
	return &Renderer{
		screen:    screen,
		fireGlyph: firstRune(cfg.FireGlyph, '*'),
		ashGlyph:  firstRune(cfg.AshGlyph, '.'),
		bg:        colorful.Color{},
	}
}

func firstRune(s string, fallback rune) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return fallback
	}
	return r
}

// Draw clears the screen, draws every particle, and writes status on the
// bottom row. worldW and worldH give the simulation viewport being scaled
// onto the grid. Later particles overwrite earlier ones in the same cell.
func (r *Renderer) Draw(store systems.ParticleStore, worldW, worldH float32, status string) {
	r.screen.Clear()

	cols, rows := r.screen.Size()
	fieldRows := rows - 1
	if cols <= 0 || fieldRows <= 0 || worldW <= 0 || worldH <= 0 {
		r.screen.Show()
		return
	}

	r.scratch = store.Snapshot(r.scratch[:0])
	for i := range r.scratch {
		p := &r.scratch[i]

		col, row, ok := CellFor(p.Position, worldW, worldH, cols, fieldRows)
		if !ok {
			continue
		}

		glyph := r.fireGlyph
		if p.Kind == components.KindAsh {
			glyph = r.ashGlyph
		}
		r.screen.SetContent(col, row, glyph, nil, r.styleFor(*p))
	}

	r.drawStatus(status, rows-1, cols)
	r.screen.Show()
}

// CellFor maps a world position to a grid cell. ok is false when the
// position falls outside the viewport.
func CellFor(pos components.Position, worldW, worldH float32, cols, rows int) (col, row int, ok bool) {
	if pos.X < 0 || pos.Y < 0 || pos.X >= worldW || pos.Y >= worldH {
		return 0, 0, false
	}
	col = int(pos.X / worldW * float32(cols))
	row = int(pos.Y / worldH * float32(rows))
	if col >= cols || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

// styleFor blends the particle's shade onto the background by its alpha,
// since terminals have no per-cell transparency.
func (r *Renderer) styleFor(p components.Particle) tcell.Style {
	return tcell.StyleDefault.
		Foreground(BlendColor(systems.Shade(p), r.bg)).
		Background(tcell.ColorBlack)
}

// BlendColor composites tint over bg using the tint's alpha.
func BlendColor(t systems.Tint, bg colorful.Color) tcell.Color {
	fg := colorful.Color{R: float64(t.R), G: float64(t.G), B: float64(t.B)}.Clamped()

	alpha := float64(t.A)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}

	red, green, blue := bg.BlendRgb(fg, alpha).RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}

func (r *Renderer) drawStatus(text string, row, cols int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	col := 0
	for _, ch := range text {
		if col >= cols {
			break
		}
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
}
