package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
	"github.com/nm3210/colordescriptors-go/pkg/hsi"
)

// ColorResponse describes one color in every representation.
type ColorResponse struct {
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
	RGB            string   `json:"rgb"`
	RGBW           string   `json:"rgbw"`
	HSI            string   `json:"hsi"`
	CSS            string   `json:"css"`
}

func newColorResponse(c descriptor.Color) ColorResponse {
	resp := ColorResponse{
		Descriptor:     c.Encode(),
		Representation: string(c.Representation()),
		Red:            c.Red(),
		Green:          c.Green(),
		Blue:           c.Blue(),
		WhiteEnabled:   c.WhiteEnabled(),
		Hue:            c.Hue(),
		Saturation:     c.Saturation(),
		Intensity:      c.Intensity(),
		RGB:            c.EncodeAs(descriptor.RepresentationRGB),
		RGBW:           c.EncodeAs(descriptor.RepresentationRGBW),
		HSI:            c.EncodeAs(descriptor.RepresentationHSI),
		CSS:            c.CSS(),
	}
	if w, ok := c.White(); ok {
		resp.White = &w
	}
	return resp
}

func (h *Handler) decodeColor(w http.ResponseWriter, r *http.Request) {
	word, err := url.PathUnescape(chi.URLParam(r, "word"))
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	c, err := descriptor.Decode(word)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newColorResponse(c))
}

// EncodeRequest builds a color from either channel group or a web color.
type EncodeRequest struct {
	CSS          string   `json:"css" validate:"omitempty,max=7"`
	Red          *float64 `json:"red" validate:"omitempty,gte=0,lte=255"`
	Green        *float64 `json:"green" validate:"omitempty,gte=0,lte=255"`
	Blue         *float64 `json:"blue" validate:"omitempty,gte=0,lte=255"`
	White        *float64 `json:"white" validate:"omitempty,gte=0,lte=255"`
	Hue          *float64 `json:"hue"`
	Saturation   *float64 `json:"saturation" validate:"omitempty,gte=0,lte=1"`
	Intensity    *float64 `json:"intensity" validate:"omitempty,gte=0,lte=4"`
	WhiteEnabled bool     `json:"whiteEnabled"`
	// As forces the representation of the returned descriptor.
	As string `json:"as" validate:"omitempty,oneof=RGB RGBW HSI rgb rgbw hsi"`
}

func (h *Handler) encodeColor(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := req.color()
	if err != nil {
		h.writeError(w, err)
		return
	}

	if req.As != "" {
		c = c.CopyAs(descriptor.Representation(strings.ToUpper(req.As)))
	}
	h.writeJSON(w, http.StatusOK, newColorResponse(c))
}

func (req EncodeRequest) color() (descriptor.Color, error) {
	in := descriptor.Input{
		Red:          req.Red,
		Green:        req.Green,
		Blue:         req.Blue,
		White:        req.White,
		Hue:          req.Hue,
		Saturation:   req.Saturation,
		Intensity:    req.Intensity,
		WhiteEnabled: req.WhiteEnabled,
	}
	if req.CSS == "" {
		return descriptor.New(in)
	}
	if in.Red != nil || in.Green != nil || in.Blue != nil || in.White != nil ||
		in.Hue != nil || in.Saturation != nil || in.Intensity != nil {
		return descriptor.Color{}, fmt.Errorf("%w: css excludes channel levels", descriptor.ErrInvalidInput)
	}
	return descriptor.FromCSS(req.CSS, req.WhiteEnabled)
}

// ConvertRequest runs one converter function on raw values.
type ConvertRequest struct {
	Function string    `json:"function" validate:"required,oneof=rgb_to_hsi hsi_to_rgb rgbw_to_hsi hsi_to_rgbw"`
	Values   []float64 `json:"values" validate:"required,min=3,max=4"`
}

// ConvertResponse holds the converter output in order.
type ConvertResponse struct {
	Function string    `json:"function"`
	Values   []float64 `json:"values"`
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	out, err := hsi.Apply(req.Function, req.Values)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ConvertResponse{Function: req.Function, Values: out})
}
