package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/internal/services/palette"
	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
	"github.com/nm3210/colordescriptors-go/pkg/hsi"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errBadRequest marks request problems found before any domain call.
var errBadRequest = errors.New("bad request")

// writeJSON marshals data before writing the status, so a value that cannot
// be encoded becomes a 500 instead of a truncated body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error(err, "failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "internal_error", Message: "internal error"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log.With("error", err.Error()).Debug("response write failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(err, "request failed")
		h.writeJSON(w, status, ErrorResponse{Error: code, Message: "internal error"})
		return
	}
	h.writeJSON(w, status, ErrorResponse{Error: code, Message: err.Error()})
}

// classify maps an error to its HTTP status and error code.
func classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	var cfgErr *config.ValidationError
	switch {
	case errors.Is(err, palette.ErrPresetNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, palette.ErrPresetExists):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, descriptor.ErrParse):
		return http.StatusBadRequest, "parse_error"
	case errors.Is(err, descriptor.ErrTooManyColors):
		return http.StatusBadRequest, "too_many_colors"
	case errors.Is(err, descriptor.ErrWhiteNotEnabled):
		return http.StatusBadRequest, "white_not_enabled"
	case errors.Is(err, descriptor.ErrInvalidNodeType), errors.Is(err, descriptor.ErrInvalidInput), errors.Is(err, hsi.ErrBadArguments):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &verrs), errors.As(err, &cfgErr), errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeBody reads a JSON body into dst and validates its struct tags.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return validateStruct(dst)
}

// validateStruct checks the validate tags of a request struct.
func validateStruct(dst interface{}) error {
	if err := config.GetValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed %q check", errBadRequest, verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	return nil
}
