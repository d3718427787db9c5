// Package hsi converts LED channel levels between RGB[W] and the HSI
// (hue, saturation, intensity) color model.
//
// Channel levels are in the range 0-255. Hue is in degrees and saturation is
// in the range 0-1. Intensity is not normalized the same way by every
// function: RGBToHSI returns the sum of the normalized channels (0-3) and
// RGBWToHSI returns the sum of all four channels divided by 255 (0-4). The
// HSIToRGB and HSIToRGBW functions accept intensities in those same ranges,
// so values round-trip without rescaling.
package hsi

import (
	"math"
)

const (
	// MaxLevel is the highest channel level.
	MaxLevel = 255.0
	// MaxRGBIntensity is the intensity clamp used by HSIToRGB.
	MaxRGBIntensity = 3.0
	// MaxRGBWIntensity is the intensity clamp used by HSIToRGBW. The white
	// emitter extends the usable range beyond the RGB-only case.
	MaxRGBWIntensity = 4.0

	// Fixed hues used when only one RGB channel is lit.
	HueRed   = 0.0
	HueGreen = 120.0
	HueBlue  = 240.0
)

const (
	sector      = 2 * math.Pi / 3
	sixtyDegree = math.Pi / 3
)

// RGBToHSI converts red, green and blue levels (0-255) to hue, saturation
// and intensity.
//
// Saturation is derived from the mean of the normalized channels, but the
// returned intensity is their sum (0-3). HSIToRGB expects that scale.
func RGBToHSI(red, green, blue float64) (hue, saturation, intensity float64) {
	r := red / MaxLevel
	g := green / MaxLevel
	b := blue / MaxLevel

	minimum := math.Min(r, math.Min(g, b))
	maximum := math.Max(r, math.Max(g, b))

	intensity = (r + g + b) / 3
	if intensity != 0 {
		saturation = 1 - minimum/intensity
	}

	// Hue is irrelevant when all channels are equal.
	if minimum != maximum {
		hue = acosHue(r, g, b)
		if b > g {
			hue = 2*math.Pi - hue
		}
	}
	hue = WrapDegrees(hue * 180 / math.Pi)

	intensity = r + g + b
	return hue, saturation, intensity
}

// HSIToRGB converts hue (degrees), saturation (0-1) and intensity (0-3) to
// red, green and blue levels clamped to 0-255.
func HSIToRGB(hue, saturation, intensity float64) (red, green, blue float64) {
	h := WrapDegrees(hue) * math.Pi / 180
	s := clamp(saturation, 1)
	i := clamp(intensity, MaxRGBIntensity)

	achromatic := i / 3 * (1 - s) * MaxLevel

	switch {
	case h < sector:
		ratio := math.Cos(h) / math.Cos(sixtyDegree-h)
		red = i / 3 * (1 + s*ratio) * MaxLevel
		green = i / 3 * (1 + s*(1-ratio)) * MaxLevel
		blue = achromatic
	case h < 2*sector:
		h -= sector
		ratio := math.Cos(h) / math.Cos(sixtyDegree-h)
		red = achromatic
		green = i / 3 * (1 + s*ratio) * MaxLevel
		blue = i / 3 * (1 + s*(1-ratio)) * MaxLevel
	default:
		h -= 2 * sector
		ratio := math.Cos(h) / math.Cos(sixtyDegree-h)
		red = i / 3 * (1 + s*(1-ratio)) * MaxLevel
		green = achromatic
		blue = i / 3 * (1 + s*ratio) * MaxLevel
	}

	return clamp(red, MaxLevel), clamp(green, MaxLevel), clamp(blue, MaxLevel)
}

// RGBWToHSI converts red, green, blue and white levels (0-255) to hue,
// saturation and intensity. A zero white level is the RGB case.
//
// Saturation is the share of light coming from the color emitters and the
// intensity is the sum of all four channels divided by 255 (0-4).
func RGBWToHSI(red, green, blue, white float64) (hue, saturation, intensity float64) {
	if white == 0 {
		return RGBToHSI(red, green, blue)
	}

	saturation = (red + green + blue) / (red + green + blue + white)
	intensity = (red + green + blue + white) / MaxLevel

	switch {
	case red == 0 && green == 0 && blue == 0:
		return 0, saturation, intensity
	case red == 0 && green == 0:
		return HueBlue, saturation, intensity
	case green == 0 && blue == 0:
		return HueRed, saturation, intensity
	case blue == 0 && red == 0:
		return HueGreen, saturation, intensity
	case red == 0:
		hue = 2*math.Atan((2*math.Sqrt(blue*blue-blue*green+green*green)-2*green+blue)/(math.Sqrt(3)*blue)) + sector
		return WrapDegrees(hue * 180 / math.Pi), saturation, intensity
	case green == 0:
		hue = 2*math.Atan((2*math.Sqrt(blue*blue-blue*red+red*red)-2*blue+red)/(math.Sqrt(3)*red)) + 2*sector
		return WrapDegrees(hue * 180 / math.Pi), saturation, intensity
	case blue == 0:
		hue = 2 * math.Atan((2*math.Sqrt(green*green-green*red+red*red)-2*red+green)/(math.Sqrt(3)*green))
		return WrapDegrees(hue * 180 / math.Pi), saturation, intensity
	}

	// No channel is zero: the RGB hue applies, with saturation scaled down by
	// the white level.
	r := red / MaxLevel
	g := green / MaxLevel
	b := blue / MaxLevel

	// Equal channels are achromatic, as in RGBToHSI.
	hue = 0
	if r != g || g != b {
		hue = acosHue(r, g, b)
		if b > g {
			hue = 2*math.Pi - hue
		}
	}
	hue = WrapDegrees(hue * 180 / math.Pi)

	intensity = (red + green + blue) / (MaxLevel * 3)
	saturation = 1 - math.Min(r, math.Min(g, b))/intensity
	saturation = saturation * (MaxLevel - white) / MaxLevel

	intensity = (red + green + blue + white) / MaxLevel
	return hue, saturation, intensity
}

// HSIToRGBW converts hue (degrees), saturation (0-1) and intensity (0-4) to
// red, green, blue and white levels clamped to 0-255. Desaturation moves
// light from the color emitters to the white emitter.
func HSIToRGBW(hue, saturation, intensity float64) (red, green, blue, white float64) {
	h := WrapDegrees(hue) * math.Pi / 180
	s := clamp(saturation, 1)
	i := clamp(intensity, MaxRGBWIntensity)

	switch {
	case h < sector:
		ratio := math.Cos(h) / math.Cos(sixtyDegree-h)
		red = s * i / 3 * (1 + ratio) * MaxLevel
		green = s * i / 3 * (1 + (1 - ratio)) * MaxLevel
	case h < 2*sector:
		h -= sector
		ratio := math.Cos(h) / math.Cos(sixtyDegree-h)
		green = s * i / 3 * (1 + ratio) * MaxLevel
		blue = s * i / 3 * (1 + (1 - ratio)) * MaxLevel
	default:
		h -= 2 * sector
		ratio := math.Cos(h) / math.Cos(sixtyDegree-h)
		red = s * i / 3 * (1 + (1 - ratio)) * MaxLevel
		blue = s * i / 3 * (1 + ratio) * MaxLevel
	}
	white = (1 - s) * i * MaxLevel

	return clamp(red, MaxLevel), clamp(green, MaxLevel), clamp(blue, MaxLevel), clamp(white, MaxLevel)
}

// Lerp maps x from the range [x0, x1] onto [y0, y1]. x is clamped into
// [x0, x1] first. An empty input range yields y0.
func Lerp(x, x0, x1, y0, y1 float64) float64 {
	if x > x1 {
		x = x1
	}
	if x < x0 {
		x = x0
	}
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*((x-x0)/(x1-x0))
}

// WrapDegrees reduces an angle in degrees into [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// acosHue returns the hue angle in radians, in [0, pi], for normalized
// channels that are not all equal.
func acosHue(r, g, b float64) float64 {
	num := (r - g) + (r - b)
	den := 2 * math.Sqrt((r-g)*(r-g)+(r-b)*(g-b))
	cos := num / den
	// Rounding can push the ratio just outside acos' domain.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// clamp limits x to [0, limit]. The upper bound is checked first.
func clamp(x, limit float64) float64 {
	if x > limit {
		return limit
	} else if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}
