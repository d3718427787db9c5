package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/internal/database/models"
	"github.com/nm3210/colordescriptors-go/internal/services/palette"
)

// PresetRequest creates or updates a preset. Name may be omitted on update.
type PresetRequest struct {
	Name        string  `json:"name" validate:"omitempty,max=64"`
	Descriptor  string  `json:"descriptor" validate:"required,descriptor"`
	Mode        string  `json:"mode" validate:"omitempty,interpolation_mode"`
	Description *string `json:"description" validate:"omitempty,max=256"`
}

// PresetResponse is a stored preset.
type PresetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Descriptor  string    `json:"descriptor"`
	Mode        string    `json:"mode"`
	Description *string   `json:"description,omitempty"`
	IsGradient  bool      `json:"isGradient"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newPresetResponse(p *models.Preset) PresetResponse {
	return PresetResponse{
		ID:          p.ID,
		Name:        p.Name,
		Descriptor:  p.Descriptor,
		Mode:        p.Mode,
		Description: p.Description,
		IsGradient:  p.IsGradient,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (req PresetRequest) input() palette.Input {
	return palette.Input{
		Name:        req.Name,
		Descriptor:  req.Descriptor,
		Mode:        req.Mode,
		Description: req.Description,
	}
}

func (h *Handler) listPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.palette.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]PresetResponse, len(presets))
	for i := range presets {
		resp[i] = newPresetResponse(&presets[i])
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := h.palette.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newPresetResponse(preset))
}

func (h *Handler) createPreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	preset, err := h.palette.Create(r.Context(), req.input())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newPresetResponse(preset))
}

func (h *Handler) updatePreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	preset, err := h.palette.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newPresetResponse(preset))
}

func (h *Handler) deletePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.palette.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportResponse counts the presets written by an import.
type ImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

func (h *Handler) exportPresets(w http.ResponseWriter, r *http.Request) {
	file, err := h.palette.Export(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, file)
}

func (h *Handler) importPresets(w http.ResponseWriter, r *http.Request) {
	var file config.PresetFile
	if err := decodeBody(r, &file); err != nil {
		h.writeError(w, err)
		return
	}
	if err := config.ValidatePresets(&file); err != nil {
		h.writeError(w, err)
		return
	}

	created, updated, err := h.palette.Seed(r.Context(), &file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ImportResponse{Created: created, Updated: updated})
}
