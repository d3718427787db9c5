package descriptor

import (
	"fmt"
)

// Gradient binds gradient nodes, a step count and an interpolation mode to
// the materialized sequence of colors. The sequence is recomputed whenever
// the nodes, steps or mode change.
type Gradient struct {
	nodes  []Color
	steps  int
	mode   InterpolationMode
	limit  int
	colors []Color
}

// NewGradient builds a gradient of at most MaxColors colors. nodes may be a
// Color, a *Color, a []Color, a []*Color or a []any of those; see SetNodes.
func NewGradient(nodes any, steps int, mode InterpolationMode) (*Gradient, error) {
	return NewGradientLimit(nodes, steps, mode, MaxColors)
}

// NewGradientLimit is like NewGradient but fails with ErrTooManyColors,
// before materializing, when the gradient would exceed limit colors. Later
// SetNodes and SetSteps calls are held to the same limit.
func NewGradientLimit(nodes any, steps int, mode InterpolationMode, limit int) (*Gradient, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: negative step count %d", ErrInvalidInput, steps)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown interpolation mode %q", ErrInvalidInput, mode)
	}
	if limit <= 0 || limit > MaxColors {
		limit = MaxColors
	}

	g := &Gradient{steps: steps, mode: mode, limit: limit}
	if err := g.SetNodes(nodes); err != nil {
		return nil, err
	}
	return g, nil
}

// Nodes returns a copy of the gradient nodes.
func (g *Gradient) Nodes() []Color {
	return append([]Color(nil), g.nodes...)
}

// Steps returns the number of colors generated between adjacent nodes.
func (g *Gradient) Steps() int {
	return g.steps
}

// Mode returns the interpolation mode.
func (g *Gradient) Mode() InterpolationMode {
	return g.mode
}

// Colors returns a copy of the materialized gradient.
func (g *Gradient) Colors() []Color {
	return append([]Color(nil), g.colors...)
}

// Len returns the number of materialized colors.
func (g *Gradient) Len() int {
	return len(g.colors)
}

// SetNodes replaces the nodes and recomputes the gradient. Nodes are copied.
// Anything other than a Color, a *Color, a []Color, a []*Color without nil
// entries or a []any holding only those fails with ErrInvalidNodeType and
// leaves g unchanged. A nil value clears the nodes.
func (g *Gradient) SetNodes(nodes any) error {
	var next []Color

	switch v := nodes.(type) {
	case nil:
	case Color:
		next = []Color{v}
	case *Color:
		if v == nil {
			return fmt.Errorf("%w: nil color", ErrInvalidNodeType)
		}
		next = []Color{*v}
	case []Color:
		next = append([]Color(nil), v...)
	case []*Color:
		next = make([]Color, 0, len(v))
		for i, c := range v {
			if c == nil {
				return fmt.Errorf("%w: nil color at index %d", ErrInvalidNodeType, i)
			}
			next = append(next, *c)
		}
	case []any:
		next = make([]Color, 0, len(v))
		for i, e := range v {
			switch c := e.(type) {
			case Color:
				next = append(next, c)
			case *Color:
				if c == nil {
					return fmt.Errorf("%w: nil color at index %d", ErrInvalidNodeType, i)
				}
				next = append(next, *c)
			default:
				return fmt.Errorf("%w: %T at index %d", ErrInvalidNodeType, e, i)
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidNodeType, nodes)
	}

	if _, err := GradientLen(len(next), g.steps, g.limit); err != nil {
		return err
	}
	g.nodes = next
	g.generate()
	return nil
}

// SetSteps replaces the step count and recomputes the gradient. A negative
// count fails with ErrInvalidInput, and one that would exceed the color
// limit with ErrTooManyColors; both leave g unchanged.
func (g *Gradient) SetSteps(steps int) error {
	if steps < 0 {
		return fmt.Errorf("%w: negative step count %d", ErrInvalidInput, steps)
	}
	if _, err := GradientLen(len(g.nodes), steps, g.limit); err != nil {
		return err
	}
	g.steps = steps
	g.generate()
	return nil
}

// SetMode replaces the interpolation mode and recomputes the gradient.
func (g *Gradient) SetMode(mode InterpolationMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown interpolation mode %q", ErrInvalidInput, mode)
	}
	g.mode = mode
	g.generate()
	return nil
}

// Encode returns the gradient descriptor word, or "" without nodes.
func (g *Gradient) Encode() string {
	return EncodeGradient(g.nodes, g.steps)
}

// String returns the gradient descriptor word.
func (g *Gradient) String() string {
	return g.Encode()
}

// Equal reports whether g and other encode to the same descriptor word.
func (g *Gradient) Equal(other *Gradient) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.Encode() == other.Encode()
}

func (g *Gradient) generate() {
	g.colors = Interpolate(g.nodes, g.steps, g.mode)
}
