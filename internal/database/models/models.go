// Package models contains the database model definitions.
package models

import (
	"time"
)

// Preset is a named descriptor word, either a single color or a gradient.
// Table: presets
type Preset struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Descriptor  string    `gorm:"column:descriptor"`
	Mode        string    `gorm:"column:mode;default:HSI"`
	Description *string   `gorm:"column:description"`
	IsGradient  bool      `gorm:"column:is_gradient;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Preset) TableName() string { return "presets" }
