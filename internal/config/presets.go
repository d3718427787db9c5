package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

// PresetFile is the YAML document listing named descriptor words.
//
//	presets:
//	  - name: sunrise
//	    descriptor: "cff0000,cffa500;10"
//	    mode: RGBW
type PresetFile struct {
	Presets []PresetSpec `yaml:"presets" json:"presets" validate:"dive"`
}

// PresetSpec declares one named descriptor.
type PresetSpec struct {
	Name        string `yaml:"name" json:"name" validate:"required,preset_name"`
	Descriptor  string `yaml:"descriptor" json:"descriptor" validate:"required,descriptor"`
	Mode        string `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,interpolation_mode"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" validate:"max=256"`
}

// ValidationError reports an invalid field in a preset file.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	presetNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
)

// GetValidator returns the shared validator, with the descriptor-specific
// tags registered.
func GetValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("preset_name", func(fl validator.FieldLevel) bool {
			return presetNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("descriptor", func(fl validator.FieldLevel) bool {
			return ValidDescriptor(fl.Field().String())
		})

		_ = v.RegisterValidation("interpolation_mode", func(fl validator.FieldLevel) bool {
			return descriptor.InterpolationMode(strings.ToUpper(fl.Field().String())).Valid()
		})

		validateInst = v
	})

	return validateInst
}

// ValidDescriptor reports whether word decodes as a color or a gradient.
func ValidDescriptor(word string) bool {
	if descriptor.IsGradient(word) {
		_, err := descriptor.DecodeGradient(word, "")
		return err == nil
	}
	_, err := descriptor.Decode(word)
	return err == nil
}

// LoadPresetFile reads, parses and validates a preset file.
func LoadPresetFile(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets parses and validates a preset document.
func ParsePresets(data []byte) (*PresetFile, error) {
	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}

	if err := ValidatePresets(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ValidatePresets checks every preset in file and rejects duplicate names.
func ValidatePresets(file *PresetFile) error {
	if err := GetValidator().Struct(file); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return &ValidationError{
				Field:   first.Namespace(),
				Message: fmt.Sprintf("failed %q check", first.Tag()),
			}
		}
		return err
	}

	seen := make(map[string]struct{}, len(file.Presets))
	for i, p := range file.Presets {
		if _, dup := seen[p.Name]; dup {
			return &ValidationError{
				Field:   fmt.Sprintf("PresetFile.Presets[%d].Name", i),
				Message: fmt.Sprintf("duplicate preset %q", p.Name),
			}
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// MarshalPresets renders file as a YAML preset document.
func MarshalPresets(file *PresetFile) ([]byte, error) {
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal presets: %w", err)
	}
	return data, nil
}

// WritePresetFile writes file to path as YAML.
func WritePresetFile(path string, file *PresetFile) error {
	data, err := MarshalPresets(file)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}
