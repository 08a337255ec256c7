// Package rconfig validates the store's construction settings using
// go-playground/validator, the same library and call shape as the
// teacher's internal/config.Config.Validate().
package rconfig

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Settings holds the store's validated construction parameters. Fields
// that are funcs or pointers (discovery hook, logger, metrics collector)
// live alongside this struct in the facade's option set instead of here,
// since struct-tag validation has nothing useful to say about them.
type Settings struct {
	Root       string `validate:"required"`
	DebounceMS int64  `validate:"required,min=1"`
}

// Defaults returns the settings the store uses absent any Option: root
// "." and a 50ms debounce window, per spec.md §6.
func Defaults() Settings {
	return Settings{Root: ".", DebounceMS: 50}
}

// Debounce returns the configured debounce window as a time.Duration.
func (s Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Validate checks the settings via struct tags, failing fast the way the
// teacher's configuration loader does on startup.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid store settings: %w", err)
	}
	return nil
}
