package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

type colorOutput struct {
	Descriptor     string   `json:"descriptor"`
	Representation string   `json:"representation"`
	Red            float64  `json:"red"`
	Green          float64  `json:"green"`
	Blue           float64  `json:"blue"`
	White          *float64 `json:"white,omitempty"`
	WhiteEnabled   bool     `json:"whiteEnabled"`
	Hue            float64  `json:"hue"`
	Saturation     float64  `json:"saturation"`
	Intensity      float64  `json:"intensity"`
	CSS            string   `json:"css"`
}

func newColorOutput(c descriptor.Color) colorOutput {
	out := colorOutput{
		Descriptor:     c.Encode(),
		Representation: string(c.Representation()),
		Red:            c.Red(),
		Green:          c.Green(),
		Blue:           c.Blue(),
		WhiteEnabled:   c.WhiteEnabled(),
		Hue:            c.Hue(),
		Saturation:     c.Saturation(),
		Intensity:      c.Intensity(),
		CSS:            c.CSS(),
	}
	if w, ok := c.White(); ok {
		out.White = &w
	}
	return out
}

func renderColor(w io.Writer, c descriptor.Color) {
	out := newColorOutput(c)
	white := "-"
	if out.White != nil {
		white = formatFloat(*out.White)
	}

	fmt.Fprintf(w, "Descriptor:     %s\n", out.Descriptor)
	fmt.Fprintf(w, "Representation: %s\n", out.Representation)
	fmt.Fprintf(w, "RGBW:           %s %s %s %s\n", formatFloat(out.Red), formatFloat(out.Green), formatFloat(out.Blue), white)
	fmt.Fprintf(w, "HSI:            %s %s %s\n", formatFloat(out.Hue), formatFloat(out.Saturation), formatFloat(out.Intensity))
	fmt.Fprintf(w, "CSS:            %s\n", out.CSS)
	fmt.Fprintf(w, "White emitter:  %t\n", out.WhiteEnabled)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatFloat prints v with at most four decimals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
