package descriptor

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// CSS returns the red, green and blue channels as a "#rrggbb" web color.
// The white level has no web equivalent and is dropped.
func (c *Color) CSS() string {
	return colorful.Color{R: c.red / 255, G: c.green / 255, B: c.blue / 255}.Clamped().Hex()
}

// FromCSS parses a "#rgb" or "#rrggbb" web color. With whiteEnabled the
// color drives a white emitter whose level is left undefined.
func FromCSS(hex string, whiteEnabled bool) (Color, error) {
	cc, err := colorful.Hex(strings.ToLower(strings.TrimSpace(hex)))
	if err != nil {
		return Color{}, newParseError(hex, "not a web color", err)
	}

	r, g, b := cc.RGB255()
	return New(Input{
		Red:          Value(float64(r)),
		Green:        Value(float64(g)),
		Blue:         Value(float64(b)),
		WhiteEnabled: whiteEnabled,
	})
}
