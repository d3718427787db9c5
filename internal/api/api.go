// Package api serves the color descriptor HTTP API: decoding, encoding and
// converting colors, materializing gradients, managing presets and streaming
// gradient previews over a websocket.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/nm3210/colordescriptors-go/internal/logger"
	"github.com/nm3210/colordescriptors-go/internal/services/palette"
	"github.com/nm3210/colordescriptors-go/internal/services/preview"
)

// Options configures a Handler.
type Options struct {
	Palette *palette.Service
	Preview *preview.Service
	Logger  *logger.Logger

	// MaxGradientColors caps the colors a single request may materialize.
	MaxGradientColors int
	Version           string

	CORSOrigins    []string
	RequestTimeout time.Duration
	Debug          bool
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	palette   *palette.Service
	preview   *preview.Service
	log       *logger.Logger
	maxColors int
	version   string
	started   time.Time
	upgrader  websocket.Upgrader
}

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	maxColors := opts.MaxGradientColors
	if maxColors <= 0 {
		maxColors = 4096
	}
	return &Handler{
		palette:   opts.Palette,
		preview:   opts.Preview,
		log:       opts.Logger.With("component", "api"),
		maxColors: maxColors,
		version:   opts.Version,
		started:   time.Now(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for WebSocket
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// NewRouter builds the full router with middleware.
func NewRouter(opts Options) http.Handler {
	h := NewHandler(opts)

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(h.log))
	router.Use(middleware.Recoverer)

	origins := append([]string{"http://localhost:3000"}, opts.CORSOrigins...)
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		Debug:            opts.Debug,
	})
	router.Use(corsMiddleware.Handler)

	router.Get("/health", h.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))
		r.Use(middleware.AllowContentType("application/json"))

		r.Get("/colors/{word}", h.decodeColor)
		r.Post("/colors", h.encodeColor)
		r.Post("/convert", h.convert)

		r.Post("/gradients", h.gradient)
		r.Get("/specials", h.specials)

		r.Route("/presets", func(r chi.Router) {
			r.Get("/", h.listPresets)
			r.Post("/", h.createPreset)
			r.Get("/export", h.exportPresets)
			r.Post("/import", h.importPresets)
			r.Get("/{id}", h.getPreset)
			r.Put("/{id}", h.updatePreset)
			r.Delete("/{id}", h.deletePreset)
		})

		r.Post("/previews", h.startPreview)
		r.Get("/previews/{id}", h.getPreview)
		r.Delete("/previews/{id}", h.stopPreview)
	})

	// Websocket upgrades must not run under the request timeout
	router.Get("/ws/preview", h.previewSocket)

	return router
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	})
}
