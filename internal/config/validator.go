package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iburimskiy/circle-selector/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "circle.radius_dp")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateWindow()...)
	errors = append(errors, c.validateCircle()...)
	errors = append(errors, c.validateItems()...)
	errors = append(errors, c.validateSound()...)

	if c.Icons.CacheSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "icons.cache_size",
			Value:   c.Icons.CacheSize,
			Message: "must be non-negative",
		})
	}

	if !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.ToLower(strings.Join(logging.ValidLevels(), ", "))),
		})
	}

	return errors
}

func (c *Config) validateWindow() []ValidationError {
	var errors []ValidationError

	if c.Window.Width <= 0 {
		errors = append(errors, ValidationError{
			Field:   "window.width",
			Value:   c.Window.Width,
			Message: "must be positive",
		})
	}
	if c.Window.Height <= 0 {
		errors = append(errors, ValidationError{
			Field:   "window.height",
			Value:   c.Window.Height,
			Message: "must be positive",
		})
	}

	return errors
}

// validateCircle rejects negative lengths. scale_on_click is never
// rejected; the widget clamps it.
func (c *Config) validateCircle() []ValidationError {
	var errors []ValidationError

	lengths := []struct {
		field string
		value float64
	}{
		{"circle.radius_dp", c.Circle.RadiusDp},
		{"circle.shadow_radius_dp", c.Circle.ShadowRadiusDp},
		{"circle.border_width_dp", c.Circle.BorderWidthDp},
		{"circle.icon_size_dp", c.Circle.IconSizeDp},
		{"circle.padding_dp", c.Circle.PaddingDp},
	}
	for _, l := range lengths {
		if l.value < 0 {
			errors = append(errors, ValidationError{
				Field:   l.field,
				Value:   l.value,
				Message: "must be non-negative",
			})
		}
	}

	if c.Circle.AnimationMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "circle.animation_ms",
			Value:   c.Circle.AnimationMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateItems() []ValidationError {
	var errors []ValidationError

	for i, it := range c.Items {
		if strings.TrimSpace(it.Icon) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("items[%d].icon", i),
				Value:   it.Icon,
				Message: "must not be empty",
			})
		}
	}

	return errors
}

func (c *Config) validateSound() []ValidationError {
	var errors []ValidationError

	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errors = append(errors, ValidationError{
			Field:   "sound.volume",
			Value:   c.Sound.Volume,
			Message: "must be between 0 and 1",
		})
	}

	return errors
}
