// Package palette holds the cluster color cycle. Colors live entirely
// on the presentation side; the engine only ever sees palette indices.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// defaultHex is the pastel cycle from the published visualization.
var defaultHex = []string{
	"#f4b8c4",
	"#b8d8f4",
	"#c9f4b8",
	"#f4e3b8",
	"#d9b8f4",
	"#b8f4e9",
}

// Default returns the built-in pastel palette as hex strings.
func Default() []string {
	out := make([]string, len(defaultHex))
	copy(out, defaultHex)
	return out
}

// Parse converts hex strings to colors, rejecting anything malformed.
func Parse(hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", h, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Pastel generates n evenly-hued pastel colors for palettes larger than
// the built-in cycle.
func Pastel(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		h := 360.0 * float64(i) / float64(n)
		out = append(out, colorful.Hsv(h, 0.35, 0.95).Hex())
	}
	return out
}
