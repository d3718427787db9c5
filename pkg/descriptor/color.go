// Package descriptor implements the descriptor words exchanged between a
// transmitting and a receiving LED controller: solid colors ("cff0000",
// "h000ff0ff") and gradients ("cff0000,c0000ff;3").
//
// A Color keeps its RGB[W] and HSI representations in sync. Every setter
// recomputes the other representation immediately, so both are always
// consistent with the conversions in package hsi.
package descriptor

import (
	"github.com/nm3210/colordescriptors-go/pkg/hsi"
)

// Representation records which input last drove a Color.
type Representation string

const (
	// RepresentationRGB is a red/green/blue color without a white emitter.
	RepresentationRGB Representation = "RGB"
	// RepresentationRGBW is a red/green/blue/white color.
	RepresentationRGBW Representation = "RGBW"
	// RepresentationHSI is a hue/saturation/intensity color.
	RepresentationHSI Representation = "HSI"
)

// Valid reports whether r is a known representation.
func (r Representation) Valid() bool {
	switch r {
	case RepresentationRGB, RepresentationRGBW, RepresentationHSI:
		return true
	}
	return false
}

// Color is a solid LED color held as both RGB[W] levels and HSI.
//
// The zero value is black without a white emitter. Colors are plain values;
// copying one never aliases another.
type Color struct {
	red, green, blue float64
	white            float64
	hasWhite         bool

	hue, saturation, intensity float64

	whiteEnabled   bool
	representation Representation
}

// Input selects the fields a Color is built from. Exactly one of the
// RGB[W] group (Red, Green, Blue and optionally White) or the HSI group
// (Hue, Saturation, Intensity) must be complete, and no field of the other
// group may be set.
type Input struct {
	Red, Green, Blue, White    *float64
	Hue, Saturation, Intensity *float64

	// WhiteEnabled marks a fixture with a dedicated white emitter.
	WhiteEnabled bool
}

// Value returns a pointer to v, for filling Input fields.
func Value(v float64) *float64 {
	return &v
}

// New builds a Color from in.
func New(in Input) (Color, error) {
	rgbComplete := in.Red != nil && in.Green != nil && in.Blue != nil
	rgbAny := in.Red != nil || in.Green != nil || in.Blue != nil || in.White != nil
	hsiComplete := in.Hue != nil && in.Saturation != nil && in.Intensity != nil
	hsiAny := in.Hue != nil || in.Saturation != nil || in.Intensity != nil

	switch {
	case rgbComplete && !hsiAny:
		if in.White != nil && !in.WhiteEnabled {
			return Color{}, ErrWhiteNotEnabled
		}
		var white float64
		if in.White != nil {
			white = *in.White
		}
		return fromRGB(*in.Red, *in.Green, *in.Blue, white, in.White != nil, in.WhiteEnabled), nil
	case hsiComplete && !rgbAny:
		return NewHSI(*in.Hue, *in.Saturation, *in.Intensity, in.WhiteEnabled), nil
	default:
		return Color{}, ErrInvalidInput
	}
}

// NewRGB returns a color without a white emitter.
func NewRGB(red, green, blue float64) Color {
	return fromRGB(red, green, blue, 0, false, false)
}

// NewRGBW returns a color with a white emitter set to white.
func NewRGBW(red, green, blue, white float64) Color {
	return fromRGB(red, green, blue, white, true, true)
}

// NewHSI returns a color built from hue (degrees), saturation and intensity.
// With whiteEnabled the RGBW conversion is used and the white level is
// derived from the saturation.
func NewHSI(hue, saturation, intensity float64, whiteEnabled bool) Color {
	c := Color{
		hue:            hue,
		saturation:     saturation,
		intensity:      intensity,
		whiteEnabled:   whiteEnabled,
		representation: RepresentationHSI,
	}
	c.syncRGB()
	return c
}

func fromRGB(red, green, blue, white float64, hasWhite, whiteEnabled bool) Color {
	c := Color{
		red:          red,
		green:        green,
		blue:         blue,
		white:        white,
		hasWhite:     hasWhite && whiteEnabled,
		whiteEnabled: whiteEnabled,
	}
	c.representation = c.rgbRepresentation()
	c.syncHSI()
	return c
}

// Red returns the red level (0-255).
func (c *Color) Red() float64 { return c.red }

// Green returns the green level (0-255).
func (c *Color) Green() float64 { return c.green }

// Blue returns the blue level (0-255).
func (c *Color) Blue() float64 { return c.blue }

// White returns the white level and whether the color defines one. A color
// without a white emitter never defines one.
func (c *Color) White() (float64, bool) {
	if !c.whiteEnabled || !c.hasWhite {
		return 0, false
	}
	return c.white, true
}

// Hue returns the hue in degrees.
func (c *Color) Hue() float64 { return c.hue }

// Saturation returns the saturation (0-1).
func (c *Color) Saturation() float64 { return c.saturation }

// Intensity returns the intensity. See package hsi for its scale.
func (c *Color) Intensity() float64 { return c.intensity }

// WhiteEnabled reports whether the color drives a white emitter.
func (c *Color) WhiteEnabled() bool { return c.whiteEnabled }

// Representation returns the representation that last drove the color.
func (c *Color) Representation() Representation {
	if c.representation == "" {
		return RepresentationRGB
	}
	return c.representation
}

// SetRed sets the red level and recomputes HSI.
func (c *Color) SetRed(v float64) {
	c.red = v
	c.representation = c.rgbRepresentation()
	c.syncHSI()
}

// SetGreen sets the green level and recomputes HSI.
func (c *Color) SetGreen(v float64) {
	c.green = v
	c.representation = c.rgbRepresentation()
	c.syncHSI()
}

// SetBlue sets the blue level and recomputes HSI.
func (c *Color) SetBlue(v float64) {
	c.blue = v
	c.representation = c.rgbRepresentation()
	c.syncHSI()
}

// SetWhite sets the white level and recomputes HSI. It fails with
// ErrWhiteNotEnabled, leaving c untouched, if c has no white emitter.
func (c *Color) SetWhite(v float64) error {
	if !c.whiteEnabled {
		return ErrWhiteNotEnabled
	}
	c.white = v
	c.hasWhite = true
	c.representation = RepresentationRGBW
	c.syncHSI()
	return nil
}

// ClearWhite removes the white level, which then counts as zero.
func (c *Color) ClearWhite() {
	c.white = 0
	c.hasWhite = false
	c.representation = c.rgbRepresentation()
	c.syncHSI()
}

// SetHue sets the hue in degrees and recomputes RGB[W].
func (c *Color) SetHue(v float64) {
	c.hue = v
	c.representation = RepresentationHSI
	c.syncRGB()
}

// SetSaturation sets the saturation and recomputes RGB[W].
func (c *Color) SetSaturation(v float64) {
	c.saturation = v
	c.representation = RepresentationHSI
	c.syncRGB()
}

// SetIntensity sets the intensity and recomputes RGB[W].
func (c *Color) SetIntensity(v float64) {
	c.intensity = v
	c.representation = RepresentationHSI
	c.syncRGB()
}

// Copy rebuilds the color from its current representation.
func (c *Color) Copy() Color {
	return c.CopyAs(c.Representation())
}

// CopyAs rebuilds the color from the fields of rep. The copy goes through
// the conversion again, so the derived fields may differ slightly from c's.
//
// Forcing RepresentationRGB drops the white emitter. An unknown rep copies
// from the current representation.
func (c *Color) CopyAs(rep Representation) Color {
	switch rep {
	case RepresentationRGB:
		return NewRGB(c.red, c.green, c.blue)
	case RepresentationRGBW:
		w, ok := c.White()
		out := fromRGB(c.red, c.green, c.blue, w, ok, c.whiteEnabled)
		out.representation = RepresentationRGBW
		return out
	case RepresentationHSI:
		return NewHSI(c.hue, c.saturation, c.intensity, c.whiteEnabled)
	default:
		return c.Copy()
	}
}

// Equal reports whether c and other encode to the same descriptor word.
func (c *Color) Equal(other Color) bool {
	return c.Encode() == other.Encode()
}

// String returns the descriptor word of c.
func (c Color) String() string {
	return c.Encode()
}

func (c *Color) rgbRepresentation() Representation {
	if c.whiteEnabled {
		return RepresentationRGBW
	}
	return RepresentationRGB
}

func (c *Color) syncHSI() {
	if c.whiteEnabled {
		w, _ := c.White()
		c.hue, c.saturation, c.intensity = hsi.RGBWToHSI(c.red, c.green, c.blue, w)
		return
	}
	c.hue, c.saturation, c.intensity = hsi.RGBToHSI(c.red, c.green, c.blue)
}

func (c *Color) syncRGB() {
	if c.whiteEnabled {
		c.red, c.green, c.blue, c.white = hsi.HSIToRGBW(c.hue, c.saturation, c.intensity)
		c.hasWhite = true
		return
	}
	c.red, c.green, c.blue = hsi.HSIToRGB(c.hue, c.saturation, c.intensity)
	c.white = 0
	c.hasWhite = false
}
