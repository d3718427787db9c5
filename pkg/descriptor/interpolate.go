package descriptor

import (
	"fmt"

	"github.com/nm3210/colordescriptors-go/pkg/hsi"
)

// MaxColors is the most colors any gradient materializes.
const MaxColors = 1 << 16

// InterpolationMode selects how a gradient fills the steps between nodes.
type InterpolationMode string

const (
	// InterpolationHSI interpolates hue, saturation and intensity linearly.
	// Hue is not taken the short way round the circle: 350 to 10 passes
	// through 180.
	InterpolationHSI InterpolationMode = "HSI"
	// InterpolationRGBW interpolates the channel levels linearly.
	InterpolationRGBW InterpolationMode = "RGBW"
)

// Valid reports whether m is a known interpolation mode.
func (m InterpolationMode) Valid() bool {
	return m == InterpolationHSI || m == InterpolationRGBW
}

// GradientLen returns the number of colors nodes and steps materialize to,
// failing with ErrTooManyColors above limit. A limit outside (0, MaxColors]
// means MaxColors.
func GradientLen(nodes, steps, limit int) (int, error) {
	if limit <= 0 || limit > MaxColors {
		limit = MaxColors
	}
	if nodes < 0 || steps < 0 {
		return 0, fmt.Errorf("%w: negative node or step count", ErrInvalidInput)
	}

	n := nodes
	if nodes > 1 && steps > 0 {
		// (nodes-1)*(steps+1)+1 <= limit, without overflowing steps+1.
		if steps >= (limit-1)/(nodes-1) {
			return 0, fmt.Errorf("%w: %d nodes with %d steps exceed %d colors", ErrTooManyColors, nodes, steps, limit)
		}
		n = (nodes-1)*(steps+1) + 1
	}
	if n > limit {
		return 0, fmt.Errorf("%w: %d nodes exceed %d colors", ErrTooManyColors, nodes, limit)
	}
	return n, nil
}

// Interpolate expands nodes into a gradient with steps colors between each
// pair of adjacent nodes. No nodes yield nil; a single node or zero steps
// yield a copy of nodes. An unknown mode, or a result longer than MaxColors,
// yields nil.
func Interpolate(nodes []Color, steps int, mode InterpolationMode) []Color {
	if len(nodes) == 0 {
		return nil
	}
	if _, err := GradientLen(len(nodes), max(steps, 0), MaxColors); err != nil {
		return nil
	}
	if len(nodes) == 1 || steps <= 0 {
		return append([]Color(nil), nodes...)
	}

	switch mode {
	case InterpolationHSI:
		return interpolateHSI(nodes, steps)
	case InterpolationRGBW:
		return interpolateRGBW(nodes, steps)
	default:
		return nil
	}
}

// interpolateHSI emits, for each pair, the start node's position and steps
// positions towards the next node, all rebuilt from HSI. The last node is
// appended as an HSI copy.
func interpolateHSI(nodes []Color, steps int) []Color {
	whiteEnabled := anyWhiteEnabled(nodes)
	divisions := steps + 1

	out := make([]Color, 0, (len(nodes)-1)*divisions+1)
	for i := 0; i < len(nodes)-1; i++ {
		cur, next := &nodes[i], &nodes[i+1]
		for k := 1; k <= divisions; k++ {
			pos := float64(k-1) / float64(divisions)
			out = append(out, NewHSI(
				hsi.Lerp(pos, 0, 1, cur.hue, next.hue),
				hsi.Lerp(pos, 0, 1, cur.saturation, next.saturation),
				hsi.Lerp(pos, 0, 1, cur.intensity, next.intensity),
				whiteEnabled,
			))
		}
	}

	return append(out, nodes[len(nodes)-1].CopyAs(RepresentationHSI))
}

// interpolateRGBW emits, for each pair, the start node itself followed by
// steps colors with rounded channel levels. A white level missing on one
// side is taken as zero; missing on both sides it stays missing. The last
// node is appended as an RGBW copy.
func interpolateRGBW(nodes []Color, steps int) []Color {
	whiteEnabled := anyWhiteEnabled(nodes)

	out := make([]Color, 0, (len(nodes)-1)*(steps+1)+1)
	for i := 0; i < len(nodes)-1; i++ {
		cur, next := &nodes[i], &nodes[i+1]
		out = append(out, *cur)

		curW, curHasW := cur.White()
		nextW, nextHasW := next.White()

		for k := 1; k <= steps; k++ {
			pos := float64(k) / float64(steps+1)
			r := roundHalfDown(hsi.Lerp(pos, 0, 1, cur.red, next.red))
			g := roundHalfDown(hsi.Lerp(pos, 0, 1, cur.green, next.green))
			b := roundHalfDown(hsi.Lerp(pos, 0, 1, cur.blue, next.blue))

			var w float64
			hasW := curHasW || nextHasW
			if hasW {
				w = roundHalfDown(hsi.Lerp(pos, 0, 1, curW, nextW))
			}

			out = append(out, fromRGB(r, g, b, w, hasW, whiteEnabled))
		}
	}

	return append(out, nodes[len(nodes)-1].CopyAs(RepresentationRGBW))
}

func anyWhiteEnabled(nodes []Color) bool {
	for i := range nodes {
		if nodes[i].whiteEnabled {
			return true
		}
	}
	return false
}
