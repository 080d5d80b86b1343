package systems

import "github.com/pthm-cable/ember/components"

// Tint is a normalized RGBA color in [0, 1].
type Tint struct {
	R, G, B, A float32
}

// Shade maps a particle to its draw color.
// Fire fades from yellow toward red as life drains; ash goes from black toward
// a pale grey-orange. Alpha is the remaining life in both cases.
func Shade(p components.Particle) Tint {
	life := p.Life
	if p.Kind == components.KindAsh {
		return Tint{
			R: 1 - life,
			G: 0.8 - 0.8*life,
			B: 0.6 - 0.6*life,
			A: life,
		}
	}
	return Tint{
		R: 1,
		G: 0.5 + 0.5*life,
		B: 0.2,
		A: life,
	}
}

// RGBA8 converts the tint to 8-bit channels, clamping out-of-range values.
func (t Tint) RGBA8() (r, g, b, a uint8) {
	return to8(t.R), to8(t.G), to8(t.B), to8(t.A)
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
