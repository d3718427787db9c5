package hsi

import (
	"errors"
	"fmt"
)

// ErrBadArguments is returned by Apply for an unknown function name or the
// wrong number of values.
var ErrBadArguments = errors.New("hsi: bad arguments")

// Names accepted by Apply.
const (
	FuncRGBToHSI  = "rgb_to_hsi"
	FuncHSIToRGB  = "hsi_to_rgb"
	FuncRGBWToHSI = "rgbw_to_hsi"
	FuncHSIToRGBW = "hsi_to_rgbw"
)

// Functions lists the names accepted by Apply.
func Functions() []string {
	return []string{FuncRGBToHSI, FuncHSIToRGB, FuncRGBWToHSI, FuncHSIToRGBW}
}

// Apply runs the named conversion on values and returns its results in
// order.
func Apply(name string, values []float64) ([]float64, error) {
	var arity int
	switch name {
	case FuncRGBToHSI, FuncHSIToRGB, FuncHSIToRGBW:
		arity = 3
	case FuncRGBWToHSI:
		arity = 4
	default:
		return nil, fmt.Errorf("%w: unknown function %q", ErrBadArguments, name)
	}
	if len(values) != arity {
		return nil, fmt.Errorf("%w: %s takes %d values, got %d", ErrBadArguments, name, arity, len(values))
	}

	switch name {
	case FuncRGBToHSI:
		h, s, i := RGBToHSI(values[0], values[1], values[2])
		return []float64{h, s, i}, nil
	case FuncHSIToRGB:
		r, g, b := HSIToRGB(values[0], values[1], values[2])
		return []float64{r, g, b}, nil
	case FuncRGBWToHSI:
		h, s, i := RGBWToHSI(values[0], values[1], values[2], values[3])
		return []float64{h, s, i}, nil
	default:
		r, g, b, w := HSIToRGBW(values[0], values[1], values[2])
		return []float64{r, g, b, w}, nil
	}
}
