package descriptor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nm3210/colordescriptors-go/pkg/hsi"
)

// Descriptor word layout.
const (
	// PrefixRGB starts an RGB[W] word: two hex digits per channel.
	PrefixRGB = 'c'
	// PrefixHSI starts an HSI word: three hex digits per field.
	PrefixHSI = 'h'
	// SuffixWhite ends an HSI word for a color with a white emitter.
	SuffixWhite = 'w'

	// RGBLength is the length of "crrggbb".
	RGBLength = 1 + 3*2
	// RGBWLength is the length of "crrggbbww".
	RGBWLength = 1 + 4*2
	// HSILength is the length of "hhhhsssiii".
	HSILength = 1 + 3*3
	// HSIWLength is the length of "hhhhsssiiiw".
	HSIWLength = HSILength + 1

	// FullCircle is the one hue encoded without reduction, so a gradient can
	// end a full turn away from where it started.
	FullCircle = 360

	// GradientSeparator splits a gradient's nodes from its step count.
	GradientSeparator = ";"
	// NodeSeparator splits gradient nodes.
	NodeSeparator = ","

	maxHSIField = 0xfff
)

// Encode returns the descriptor word of c in its current representation.
func (c *Color) Encode() string {
	return c.EncodeAs(c.Representation())
}

// EncodeAs returns the descriptor word of c in representation rep. Channel
// levels and HSI fields are rounded to the nearest integer, with halves
// rounded down.
func (c *Color) EncodeAs(rep Representation) string {
	switch rep {
	case RepresentationRGBW:
		w, _ := c.White()
		return fmt.Sprintf("%c%02x%02x%02x%02x", PrefixRGB, level(c.red), level(c.green), level(c.blue), level(w))
	case RepresentationHSI:
		hue := c.hue
		if hue != FullCircle {
			hue = hsi.WrapDegrees(hue)
		}
		word := fmt.Sprintf("%c%03x%03x%03x", PrefixHSI,
			field(hue), field(c.saturation*hsi.MaxLevel), field(c.intensity*hsi.MaxLevel))
		if c.whiteEnabled {
			word += string(SuffixWhite)
		}
		return word
	default:
		return fmt.Sprintf("%c%02x%02x%02x", PrefixRGB, level(c.red), level(c.green), level(c.blue))
	}
}

// Decode parses a solid color descriptor word. Prefixes are matched without
// regard to case. Malformed words fail with a *ParseError.
func Decode(word string) (Color, error) {
	if len(word) <= 1 {
		return Color{}, newParseError(word, "descriptor too short", nil)
	}

	switch lower(word[0]) {
	case PrefixRGB:
		if len(word) != RGBLength && len(word) != RGBWLength {
			return Color{}, newParseError(word, fmt.Sprintf("rgb[w] descriptor must be %d or %d characters", RGBLength, RGBWLength), nil)
		}
		values, err := splitHex(word, word[1:], 2)
		if err != nil {
			return Color{}, err
		}
		if len(values) == 3 {
			return NewRGB(values[0], values[1], values[2]), nil
		}
		return NewRGBW(values[0], values[1], values[2], values[3]), nil

	case PrefixHSI:
		whiteEnabled := lower(word[len(word)-1]) == SuffixWhite
		body := word[1:]
		if whiteEnabled {
			if len(word) != HSIWLength {
				return Color{}, newParseError(word, fmt.Sprintf("hsi descriptor with white must be %d characters", HSIWLength), nil)
			}
			body = word[1 : len(word)-1]
		} else if len(word) != HSILength {
			return Color{}, newParseError(word, fmt.Sprintf("hsi descriptor must be %d characters", HSILength), nil)
		}
		values, err := splitHex(word, body, 3)
		if err != nil {
			return Color{}, err
		}
		return NewHSI(values[0], values[1]/hsi.MaxLevel, values[2]/hsi.MaxLevel, whiteEnabled), nil

	default:
		return Color{}, newParseError(word, fmt.Sprintf("unknown prefix %q", word[0]), nil)
	}
}

// MustDecode is like Decode but panics on a malformed word. It is meant for
// descriptor literals in code and tests.
func MustDecode(word string) Color {
	c, err := Decode(word)
	if err != nil {
		panic(err)
	}
	return c
}

// EncodeGradient renders nodes and steps as a gradient descriptor word,
// "node,node,...;steps". No nodes render as the empty string.
func EncodeGradient(nodes []Color, steps int) string {
	if len(nodes) == 0 {
		return ""
	}
	words := make([]string, len(nodes))
	for i := range nodes {
		words[i] = nodes[i].Encode()
	}
	return strings.Join(words, NodeSeparator) + GradientSeparator + strconv.Itoa(steps)
}

// DecodeGradient parses a gradient descriptor word. Surrounding parentheses
// are ignored. An empty mode selects HSI interpolation.
func DecodeGradient(word string, mode InterpolationMode) (*Gradient, error) {
	return DecodeGradientLimit(word, mode, MaxColors)
}

// DecodeGradientLimit is like DecodeGradient but fails with
// ErrTooManyColors, before materializing, above limit colors.
func DecodeGradientLimit(word string, mode InterpolationMode, limit int) (*Gradient, error) {
	stripped := strings.NewReplacer("(", "", ")", "").Replace(word)

	colorsPart, stepsPart, found := strings.Cut(stripped, GradientSeparator)
	if !found {
		return nil, newParseError(word, "gradient descriptor needs a "+GradientSeparator+" before the step count", nil)
	}

	steps, err := strconv.Atoi(strings.TrimSpace(stepsPart))
	if err != nil {
		return nil, newParseError(word, "invalid step count", err)
	}
	if steps < 0 {
		return nil, newParseError(word, "step count must not be negative", nil)
	}

	tokens := strings.Split(colorsPart, NodeSeparator)
	nodes := make([]Color, 0, len(tokens))
	for _, token := range tokens {
		node, err := Decode(strings.TrimSpace(token))
		if err != nil {
			return nil, newParseError(word, "invalid gradient node", err)
		}
		nodes = append(nodes, node)
	}

	if mode == "" {
		mode = InterpolationHSI
	}
	return NewGradientLimit(nodes, steps, mode, limit)
}

// IsGradient reports whether word has the shape of a gradient descriptor.
func IsGradient(word string) bool {
	return strings.Contains(word, GradientSeparator)
}

func splitHex(word, body string, width int) ([]float64, error) {
	values := make([]float64, 0, len(body)/width)
	for i := 0; i < len(body); i += width {
		v, err := strconv.ParseUint(body[i:i+width], 16, 16)
		if err != nil {
			return nil, newParseError(word, fmt.Sprintf("invalid hex field %q", body[i:i+width]), err)
		}
		values = append(values, float64(v))
	}
	return values, nil
}

// roundHalfDown rounds to the nearest integer, resolving halves downwards.
func roundHalfDown(x float64) float64 {
	return math.Ceil(x - 0.5)
}

func level(x float64) int {
	return int(clampTo(roundHalfDown(x), hsi.MaxLevel))
}

func field(x float64) int {
	return int(clampTo(roundHalfDown(x), maxHSIField))
}

func clampTo(x, limit float64) float64 {
	if x > limit {
		return limit
	} else if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
