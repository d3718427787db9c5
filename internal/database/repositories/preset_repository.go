// Package repositories provides data access for stored presets.
package repositories

import (
	"context"
	"errors"

	"github.com/lucsky/cuid"
	"gorm.io/gorm"

	"github.com/nm3210/colordescriptors-go/internal/database/models"
)

// PresetRepository handles preset data access.
type PresetRepository struct {
	db *gorm.DB
}

// NewPresetRepository creates a new PresetRepository.
func NewPresetRepository(db *gorm.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

// FindAll returns all presets ordered by name.
func (r *PresetRepository) FindAll(ctx context.Context) ([]models.Preset, error) {
	var presets []models.Preset
	result := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&presets)
	return presets, result.Error
}

// FindByID returns a preset by ID, or nil if there is none.
func (r *PresetRepository) FindByID(ctx context.Context, id string) (*models.Preset, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByName returns a preset by name, or nil if there is none.
func (r *PresetRepository) FindByName(ctx context.Context, name string) (*models.Preset, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *PresetRepository) first(ctx context.Context, query string, arg string) (*models.Preset, error) {
	var preset models.Preset
	result := r.db.WithContext(ctx).First(&preset, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &preset, nil
}

// Create inserts a new preset, assigning an ID when it has none.
func (r *PresetRepository) Create(ctx context.Context, preset *models.Preset) error {
	if preset.ID == "" {
		preset.ID = cuid.New()
	}
	return r.db.WithContext(ctx).Create(preset).Error
}

// Update saves every field of an existing preset.
func (r *PresetRepository) Update(ctx context.Context, preset *models.Preset) error {
	return r.db.WithContext(ctx).Save(preset).Error
}

// Upsert creates or updates a preset by name.
func (r *PresetRepository) Upsert(ctx context.Context, preset *models.Preset) (*models.Preset, bool, error) {
	existing, err := r.FindByName(ctx, preset.Name)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		if err := r.Create(ctx, preset); err != nil {
			return nil, false, err
		}
		return preset, true, nil
	}

	existing.Descriptor = preset.Descriptor
	existing.Mode = preset.Mode
	existing.Description = preset.Description
	existing.IsGradient = preset.IsGradient
	if err := r.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Delete deletes a preset by ID.
func (r *PresetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Preset{}, "id = ?", id).Error
}

// Count returns the number of stored presets.
func (r *PresetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Preset{}).Count(&count).Error
	return count, err
}
