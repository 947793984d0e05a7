package chat

import "math/rand/v2"

// DefaultPalette is the stock set of display colors handed out to identified
// sessions.
var DefaultPalette = []string{"red", "green", "blue", "magenta", "purple", "plum", "orange"}

// ColorPool hands out display colors from a finite set. Colors are claimed
// front-to-back and released to the back, so a freed color cycles to the next
// joiner once the rest of the pool has been used.
//
// The pool is not safe for concurrent use on its own; the Hub serializes all
// access to it.
type ColorPool struct {
	colors []string
}

// NewColorPool builds a pool from the given palette, shuffled once so the
// assignment order is not predictable across restarts. A nil or empty palette
// falls back to DefaultPalette.
func NewColorPool(palette []string) *ColorPool {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	colors := append([]string(nil), palette...)
	rand.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return &ColorPool{colors: colors}
}

// Claim removes and returns the next available color. The second return value
// is false when the pool is depleted; the caller proceeds without a color.
func (p *ColorPool) Claim() (string, bool) {
	if len(p.colors) == 0 {
		return "", false
	}
	color := p.colors[0]
	p.colors = p.colors[1:]
	return color, true
}

// Release returns a previously claimed color to the pool. Callers must only
// release colors they claimed; the pool does not de-duplicate.
func (p *ColorPool) Release(color string) {
	if color == "" {
		return
	}
	p.colors = append(p.colors, color)
}

// Len reports how many colors are currently claimable.
func (p *ColorPool) Len() int {
	return len(p.colors)
}
