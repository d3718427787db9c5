package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/nm3210/colordescriptors-go/internal/services/preview"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// PreviewRequest starts playback of a resolved gradient.
type PreviewRequest struct {
	GradientRequest
	Loop bool `json:"loop"`
}

// PreviewResponse describes a running preview session.
type PreviewResponse struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	Loop            bool      `json:"loop"`
	Total           int       `json:"total"`
	Position        int       `json:"position"`
	FrameIntervalMS int64     `json:"frameIntervalMs"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (h *Handler) newPreviewResponse(s *preview.Session) PreviewResponse {
	return PreviewResponse{
		ID:              s.ID,
		Source:          s.Source,
		Loop:            s.Loop,
		Total:           s.Total,
		Position:        s.Position,
		FrameIntervalMS: h.preview.FrameInterval().Milliseconds(),
		CreatedAt:       s.CreatedAt,
	}
}

func (h *Handler) startPreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	g, err := h.resolve(r.Context(), req.GradientRequest)
	if err != nil {
		h.writeError(w, err)
		return
	}

	session, _, err := h.preview.StartSession(g, preview.Options{Source: req.Descriptor, Loop: req.Loop})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, h.newPreviewResponse(session))
}

func (h *Handler) getPreview(w http.ResponseWriter, r *http.Request) {
	session := h.preview.GetSession(chi.URLParam(r, "id"))
	if session == nil {
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "preview session not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, h.newPreviewResponse(session))
}

func (h *Handler) stopPreview(w http.ResponseWriter, r *http.Request) {
	if !h.preview.CancelSession(chi.URLParam(r, "id")) {
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "preview session not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// previewSocket streams the frames of a new preview session. The gradient is
// given as query parameters: descriptor, mode, steps, white and loop.
func (h *Handler) previewSocket(w http.ResponseWriter, r *http.Request) {
	req, err := previewQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	g, err := h.resolve(r.Context(), req.GradientRequest)
	if err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(err, "websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	session, sub, err := h.preview.StartSession(g, preview.Options{Source: req.Descriptor, Loop: req.Loop, Subscribe: true})
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()), time.Now().Add(writeWait))
		return
	}
	defer h.preview.PubSub().Unsubscribe(sub)
	defer h.preview.CancelSession(session.ID)

	log := h.log.With("session", session.ID)
	log.Debug("preview socket opened")
	defer func() {
		if dropped := sub.Dropped(); dropped > 0 {
			log.WithFields(map[string]any{"dropped": dropped}).Warn("preview socket fell behind")
		}
	}()

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.Channel:
			if !ok {
				return
			}
			frame, isFrame := msg.(preview.Frame)
			if !isFrame {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				log.Debug("preview socket write failed")
				return
			}
			if frame.Done {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"), time.Now().Add(writeWait))
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			log.Debug("preview socket closed by client")
			return
		}
	}
}

// readPump discards client messages and signals when the connection ends.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func previewQuery(r *http.Request) (PreviewRequest, error) {
	q := r.URL.Query()
	req := PreviewRequest{
		GradientRequest: GradientRequest{
			Descriptor: q.Get("descriptor"),
			Mode:       q.Get("mode"),
		},
	}

	var err error
	if v := q.Get("steps"); v != "" {
		if req.Steps, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("%w: invalid steps %q", errBadRequest, v)
		}
	}
	if v := q.Get("white"); v != "" {
		if req.WhiteEnabled, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("%w: invalid white %q", errBadRequest, v)
		}
	}
	if v := q.Get("loop"); v != "" {
		if req.Loop, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("%w: invalid loop %q", errBadRequest, v)
		}
	}

	if err := validateStruct(&req.GradientRequest); err != nil {
		return req, err
	}
	return req, nil
}
