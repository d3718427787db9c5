package descriptor

// SpecialFunc builds a named special color pattern with steps colors
// between its nodes.
type SpecialFunc func(steps int, whiteEnabled bool) (*Gradient, error)

// Names of the built-in special patterns.
const (
	SpecialRainbow = "rainbow"
	SpecialOff     = "off"
	SpecialWhite   = "white"
)

// NewSpecialRegistry returns a registry holding the built-in special
// patterns.
func NewSpecialRegistry() *Registry[SpecialFunc] {
	r := NewRegistry[SpecialFunc]()
	_ = r.Register(SpecialRainbow, Rainbow)
	_ = r.Register(SpecialOff, solid(0, 0, 0))
	_ = r.Register(SpecialWhite, solid(0, 0, 3))
	return r
}

// Rainbow is a full turn of the hue circle at full saturation. The last
// node's hue is 360, which the descriptor word keeps unreduced.
func Rainbow(steps int, whiteEnabled bool) (*Gradient, error) {
	return NewGradient([]Color{
		NewHSI(0, 1, 1, whiteEnabled),
		NewHSI(FullCircle, 1, 1, whiteEnabled),
	}, steps, InterpolationHSI)
}

func solid(hue, saturation, intensity float64) SpecialFunc {
	return func(steps int, whiteEnabled bool) (*Gradient, error) {
		return NewGradient(NewHSI(hue, saturation, intensity, whiteEnabled), steps, InterpolationHSI)
	}
}
