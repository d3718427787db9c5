// Package palette stores named descriptor words and resolves words, gradients
// and special pattern names into materialized gradients.
package palette

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/internal/database/models"
	"github.com/nm3210/colordescriptors-go/internal/database/repositories"
	"github.com/nm3210/colordescriptors-go/internal/logger"
	"github.com/nm3210/colordescriptors-go/internal/services/pubsub"
	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

var (
	// ErrPresetNotFound is returned when no preset matches an id or name.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrPresetExists is returned when a preset name is already taken.
	ErrPresetExists = errors.New("preset already exists")
)

// Event actions published on pubsub.TopicPresetUpdated.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a change to a stored preset.
type Event struct {
	Action string
	Preset models.Preset
}

// Input holds the user-supplied fields of a preset.
type Input struct {
	Name        string
	Descriptor  string
	Mode        string
	Description *string
}

// Service handles preset operations.
type Service struct {
	repo        *repositories.PresetRepository
	specials    *descriptor.Registry[descriptor.SpecialFunc]
	pubsub      *pubsub.PubSub
	log         *logger.Logger
	defaultMode descriptor.InterpolationMode
}

// NewService creates a new palette service. pubsub and log may be nil.
func NewService(
	repo *repositories.PresetRepository,
	ps *pubsub.PubSub,
	log *logger.Logger,
	defaultMode descriptor.InterpolationMode,
) *Service {
	if !defaultMode.Valid() {
		defaultMode = descriptor.InterpolationHSI
	}
	return &Service{
		repo:        repo,
		specials:    descriptor.NewSpecialRegistry(),
		pubsub:      ps,
		log:         log.With("component", "palette"),
		defaultMode: defaultMode,
	}
}

// DefaultMode returns the interpolation mode used when none is given.
func (s *Service) DefaultMode() descriptor.InterpolationMode {
	return s.defaultMode
}

// Specials returns the names of the built-in special patterns.
func (s *Service) Specials() []string {
	return s.specials.Names()
}

// List returns every stored preset ordered by name.
func (s *Service) List(ctx context.Context) ([]models.Preset, error) {
	return s.repo.FindAll(ctx)
}

// Get returns a preset by id or, failing that, by name.
func (s *Service) Get(ctx context.Context, idOrName string) (*models.Preset, error) {
	preset, err := s.repo.FindByID(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if preset == nil {
		preset, err = s.repo.FindByName(ctx, strings.ToLower(idOrName))
		if err != nil {
			return nil, err
		}
	}
	if preset == nil {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, idOrName)
	}
	return preset, nil
}

// Create validates and stores a new preset. The stored descriptor is the
// canonical encoding of the decoded input.
func (s *Service) Create(ctx context.Context, in Input) (*models.Preset, error) {
	preset, err := s.build(in)
	if err != nil {
		return nil, err
	}

	if _, special := s.specials.Lookup(preset.Name); special {
		return nil, fmt.Errorf("%w: %q is a special pattern", ErrPresetExists, preset.Name)
	}
	existing, err := s.repo.FindByName(ctx, preset.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrPresetExists, preset.Name)
	}

	if err := s.repo.Create(ctx, preset); err != nil {
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}

	s.log.With("preset", preset.Name).Info("preset created")
	s.publish(ActionCreated, preset)
	return preset, nil
}

// Update replaces the fields of an existing preset.
func (s *Service) Update(ctx context.Context, idOrName string, in Input) (*models.Preset, error) {
	current, err := s.Get(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	if in.Name == "" {
		in.Name = current.Name
	}
	next, err := s.build(in)
	if err != nil {
		return nil, err
	}

	if next.Name != current.Name {
		if _, special := s.specials.Lookup(next.Name); special {
			return nil, fmt.Errorf("%w: %q is a special pattern", ErrPresetExists, next.Name)
		}
		clash, err := s.repo.FindByName(ctx, next.Name)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, fmt.Errorf("%w: %s", ErrPresetExists, next.Name)
		}
	}

	current.Name = next.Name
	current.Descriptor = next.Descriptor
	current.Mode = next.Mode
	current.Description = next.Description
	current.IsGradient = next.IsGradient
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update preset: %w", err)
	}

	s.log.With("preset", current.Name).Info("preset updated")
	s.publish(ActionUpdated, current)
	return current, nil
}

// Delete removes a preset by id or name.
func (s *Service) Delete(ctx context.Context, idOrName string) error {
	preset, err := s.Get(ctx, idOrName)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, preset.ID); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	s.log.With("preset", preset.Name).Info("preset deleted")
	s.publish(ActionDeleted, preset)
	return nil
}

// Seed upserts every preset of a preset file. It returns how many presets
// were created and how many were updated.
func (s *Service) Seed(ctx context.Context, file *config.PresetFile) (created, updated int, err error) {
	if file == nil {
		return 0, 0, nil
	}

	for _, spec := range file.Presets {
		var description *string
		if spec.Description != "" {
			d := spec.Description
			description = &d
		}

		preset, err := s.build(Input{
			Name:        spec.Name,
			Descriptor:  spec.Descriptor,
			Mode:        spec.Mode,
			Description: description,
		})
		if err != nil {
			return created, updated, fmt.Errorf("preset %q: %w", spec.Name, err)
		}

		stored, isNew, err := s.repo.Upsert(ctx, preset)
		if err != nil {
			return created, updated, fmt.Errorf("preset %q: %w", spec.Name, err)
		}
		if isNew {
			created++
			s.publish(ActionCreated, stored)
		} else {
			updated++
			s.publish(ActionUpdated, stored)
		}
	}

	s.log.WithFields(map[string]any{"created": created, "updated": updated}).Info("presets seeded")
	return created, updated, nil
}

// Export returns every stored preset as a preset document that Seed accepts.
func (s *Service) Export(ctx context.Context) (*config.PresetFile, error) {
	presets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	file := &config.PresetFile{Presets: make([]config.PresetSpec, 0, len(presets))}
	for _, p := range presets {
		spec := config.PresetSpec{
			Name:       p.Name,
			Descriptor: p.Descriptor,
			Mode:       p.Mode,
		}
		if p.Description != nil {
			spec.Description = *p.Description
		}
		file.Presets = append(file.Presets, spec)
	}
	return file, nil
}

// Resolve turns a special pattern name, a preset name, a gradient descriptor
// or a single color descriptor into a gradient. steps and whiteEnabled apply
// to special patterns only; mode applies to descriptor words and falls back to
// the service default when empty. Gradients longer than limit colors fail
// with descriptor.ErrTooManyColors; a limit of 0 means descriptor.MaxColors.
func (s *Service) Resolve(ctx context.Context, word string, steps int, whiteEnabled bool, mode descriptor.InterpolationMode, limit int) (*descriptor.Gradient, error) {
	word = strings.TrimSpace(word)
	if mode == "" {
		mode = s.defaultMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown interpolation mode %q", descriptor.ErrInvalidInput, mode)
	}

	if special, ok := s.specials.Lookup(word); ok {
		g, err := special(steps, whiteEnabled)
		if err != nil {
			return nil, err
		}
		if _, err := descriptor.GradientLen(g.Len(), 0, limit); err != nil {
			return nil, err
		}
		return g, nil
	}

	if looksLikeName(word) {
		preset, err := s.repo.FindByName(ctx, strings.ToLower(word))
		if err != nil {
			return nil, err
		}
		if preset != nil {
			return decodeWord(preset.Descriptor, descriptor.InterpolationMode(preset.Mode), limit)
		}
	}

	return decodeWord(word, mode, limit)
}

func (s *Service) build(in Input) (*models.Preset, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if err := config.GetValidator().Var(name, "required,preset_name"); err != nil {
		return nil, fmt.Errorf("%w: invalid preset name %q", descriptor.ErrInvalidInput, in.Name)
	}
	if _, err := descriptor.Decode(name); err == nil {
		return nil, fmt.Errorf("%w: preset name %q is a color descriptor", descriptor.ErrInvalidInput, in.Name)
	}

	mode := descriptor.InterpolationMode(strings.ToUpper(strings.TrimSpace(in.Mode)))
	if mode == "" {
		mode = s.defaultMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown interpolation mode %q", descriptor.ErrInvalidInput, in.Mode)
	}

	word := strings.TrimSpace(in.Descriptor)
	g, err := decodeWord(word, mode, descriptor.MaxColors)
	if err != nil {
		return nil, err
	}

	canonical := g.Encode()
	if !descriptor.IsGradient(word) {
		canonical = g.Nodes()[0].Encode()
	}

	return &models.Preset{
		Name:        name,
		Descriptor:  canonical,
		Mode:        string(mode),
		Description: in.Description,
		IsGradient:  descriptor.IsGradient(word),
	}, nil
}

func (s *Service) publish(action string, preset *models.Preset) {
	if s.pubsub == nil {
		return
	}
	s.pubsub.PublishAll(pubsub.TopicPresetUpdated, Event{Action: action, Preset: *preset})
}

// decodeWord decodes a gradient descriptor, or a single color as a gradient
// of one node.
func decodeWord(word string, mode descriptor.InterpolationMode, limit int) (*descriptor.Gradient, error) {
	if descriptor.IsGradient(word) {
		return descriptor.DecodeGradientLimit(word, mode, limit)
	}
	c, err := descriptor.Decode(word)
	if err != nil {
		return nil, err
	}
	return descriptor.NewGradient(c, 0, mode)
}

// looksLikeName reports whether word could be a preset name. Names never
// decode as colors, so a miss falls through to decoding.
func looksLikeName(word string) bool {
	return word != "" && !descriptor.IsGradient(word) && !strings.ContainsAny(word, "(),")
}
