// Package preview plays materialized gradients back one color at a time,
// publishing each frame on pubsub.TopicPreviewFrame.
package preview

import (
	"fmt"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"github.com/nm3210/colordescriptors-go/internal/logger"
	"github.com/nm3210/colordescriptors-go/internal/services/pubsub"
	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

// Frame is one color of a playing gradient.
type Frame struct {
	SessionID  string   `json:"sessionId"`
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Descriptor string   `json:"descriptor"`
	Red        float64  `json:"red"`
	Green      float64  `json:"green"`
	Blue       float64  `json:"blue"`
	White      *float64 `json:"white,omitempty"`
	Hue        float64  `json:"hue"`
	Saturation float64  `json:"saturation"`
	Intensity  float64  `json:"intensity"`
	Done       bool     `json:"done"`
}

// Options controls a preview session.
type Options struct {
	// Source is the word the gradient was resolved from, kept for display.
	Source string
	// Loop restarts from the first color instead of finishing.
	Loop bool
	// Subscribe registers a frame subscriber before playback starts so the
	// first frame cannot be missed.
	Subscribe bool
}

// Session represents an active preview session.
type Session struct {
	ID        string
	Source    string
	Loop      bool
	Total     int
	Position  int
	IsActive  bool
	CreatedAt time.Time
}

type playback struct {
	session  Session
	colors   []descriptor.Color
	stopChan chan struct{}
}

// Service handles preview playback.
type Service struct {
	mu             sync.RWMutex
	sessions       map[string]*playback
	sessionTimers  map[string]*time.Timer
	sessionTimeout time.Duration
	frameInterval  time.Duration
	bufferSize     int
	pubsub         *pubsub.PubSub
	log            *logger.Logger
}

// NewService creates a new preview service.
func NewService(ps *pubsub.PubSub, frameInterval time.Duration, bufferSize int, log *logger.Logger) *Service {
	if frameInterval <= 0 {
		frameInterval = 50 * time.Millisecond
	}
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if ps == nil {
		ps = pubsub.New()
	}
	return &Service{
		sessions:       make(map[string]*playback),
		sessionTimers:  make(map[string]*time.Timer),
		sessionTimeout: 30 * time.Minute,
		frameInterval:  frameInterval,
		bufferSize:     bufferSize,
		pubsub:         ps,
		log:            log.With("component", "preview"),
	}
}

// SetSessionTimeout changes how long a session may run before it is
// cancelled. It applies to sessions started afterwards.
func (s *Service) SetSessionTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionTimeout = d
}

// FrameInterval returns the time between frames.
func (s *Service) FrameInterval() time.Duration {
	return s.frameInterval
}

// StartSession starts playing g. When opts.Subscribe is set, the returned
// subscriber receives the session's frames and must be released with
// PubSub().Unsubscribe.
func (s *Service) StartSession(g *descriptor.Gradient, opts Options) (*Session, *pubsub.Subscriber, error) {
	if g == nil || g.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: nothing to preview", descriptor.ErrInvalidInput)
	}

	pb := &playback{
		session: Session{
			ID:        cuid.New(),
			Source:    opts.Source,
			Loop:      opts.Loop,
			Total:     g.Len(),
			IsActive:  true,
			CreatedAt: time.Now(),
		},
		colors:   g.Colors(),
		stopChan: make(chan struct{}),
	}
	id := pb.session.ID

	var sub *pubsub.Subscriber
	if opts.Subscribe {
		sub = s.pubsub.Subscribe(pubsub.TopicPreviewFrame, id, s.bufferSize)
	}

	s.mu.Lock()
	s.sessions[id] = pb
	if s.sessionTimeout > 0 {
		s.sessionTimers[id] = time.AfterFunc(s.sessionTimeout, func() {
			s.CancelSession(id)
		})
	}
	s.mu.Unlock()

	s.log.WithFields(map[string]any{"session": id, "frames": pb.session.Total, "loop": opts.Loop}).Debug("preview started")

	go s.run(pb)

	snapshot := pb.session
	return &snapshot, sub, nil
}

// CancelSession stops a session. It reports whether the session existed.
func (s *Service) CancelSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(sessionID)
}

// GetSession returns a snapshot of a session, or nil if it is not running.
func (s *Service) GetSession(sessionID string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pb, exists := s.sessions[sessionID]
	if !exists {
		return nil
	}
	snapshot := pb.session
	return &snapshot
}

// SessionCount returns the number of running sessions.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PubSub returns the pubsub frames are published on.
func (s *Service) PubSub() *pubsub.PubSub {
	return s.pubsub
}

// Shutdown cancels every session.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sessions {
		s.cancelLocked(id)
	}
}

func (s *Service) cancelLocked(sessionID string) bool {
	pb, exists := s.sessions[sessionID]
	if !exists {
		return false
	}

	if timer, exists := s.sessionTimers[sessionID]; exists {
		timer.Stop()
		delete(s.sessionTimers, sessionID)
	}

	pb.session.IsActive = false
	close(pb.stopChan)
	delete(s.sessions, sessionID)
	return true
}

// run publishes the first frame at once and one frame per tick after that.
func (s *Service) run(pb *playback) {
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		if finished := s.step(pb); finished {
			s.log.With("session", pb.session.ID).Debug("preview finished")
			s.CancelSession(pb.session.ID)
			return
		}

		select {
		case <-pb.stopChan:
			return
		case <-ticker.C:
		}
	}
}

// step publishes the frame at the current position and advances. It reports
// whether playback reached the end of a non-looping session.
func (s *Service) step(pb *playback) bool {
	s.mu.Lock()
	if !pb.session.IsActive {
		s.mu.Unlock()
		return false
	}
	index := pb.session.Position
	last := index == len(pb.colors)-1
	done := last && !pb.session.Loop
	if last {
		pb.session.Position = 0
	} else {
		pb.session.Position++
	}
	s.mu.Unlock()

	s.pubsub.Publish(pubsub.TopicPreviewFrame, pb.session.ID, NewFrame(pb.session.ID, index, pb.colors, done))
	return done
}

// NewFrame describes colors[index] as a frame of sessionID.
func NewFrame(sessionID string, index int, colors []descriptor.Color, done bool) Frame {
	c := colors[index]
	frame := Frame{
		SessionID:  sessionID,
		Index:      index,
		Total:      len(colors),
		Descriptor: c.Encode(),
		Red:        c.Red(),
		Green:      c.Green(),
		Blue:       c.Blue(),
		Hue:        c.Hue(),
		Saturation: c.Saturation(),
		Intensity:  c.Intensity(),
		Done:       done,
	}
	if w, ok := c.White(); ok {
		frame.White = &w
	}
	return frame
}
