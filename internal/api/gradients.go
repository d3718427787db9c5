package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

// GradientRequest resolves a descriptor word, preset name or special pattern.
type GradientRequest struct {
	Descriptor   string `json:"descriptor" validate:"required,max=4096"`
	Mode         string `json:"mode" validate:"omitempty,interpolation_mode"`
	Steps        int    `json:"steps" validate:"gte=0"`
	WhiteEnabled bool   `json:"whiteEnabled"`
}

// GradientResponse lists a gradient's nodes and materialized colors.
type GradientResponse struct {
	Descriptor string          `json:"descriptor"`
	Mode       string          `json:"mode"`
	Steps      int             `json:"steps"`
	Nodes      []string        `json:"nodes"`
	Colors     []ColorResponse `json:"colors"`
}

func newGradientResponse(g *descriptor.Gradient) GradientResponse {
	nodes := g.Nodes()
	colors := g.Colors()

	resp := GradientResponse{
		Descriptor: g.Encode(),
		Mode:       string(g.Mode()),
		Steps:      g.Steps(),
		Nodes:      make([]string, len(nodes)),
		Colors:     make([]ColorResponse, len(colors)),
	}
	for i := range nodes {
		resp.Nodes[i] = nodes[i].Encode()
	}
	for i := range colors {
		resp.Colors[i] = newColorResponse(colors[i])
	}
	return resp
}

func (h *Handler) gradient(w http.ResponseWriter, r *http.Request) {
	var req GradientRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	g, err := h.resolve(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newGradientResponse(g))
}

// resolve turns a request into a gradient within the color limit.
func (h *Handler) resolve(ctx context.Context, req GradientRequest) (*descriptor.Gradient, error) {
	mode := descriptor.InterpolationMode(strings.ToUpper(req.Mode))
	return h.palette.Resolve(ctx, req.Descriptor, req.Steps, req.WhiteEnabled, mode, h.maxColors)
}

type specialsResponse struct {
	Specials []string `json:"specials"`
}

func (h *Handler) specials(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, specialsResponse{Specials: h.palette.Specials()})
}
