package rconfig_test

import (
	"testing"
	"time"

	"github.com/arqlane/rehoard/rconfig"
	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreValid(t *testing.T) {
	s := rconfig.Defaults()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 50*time.Millisecond, s.Debounce())
}

func TestValidateRejectsEmptyRoot(t *testing.T) {
	s := rconfig.Settings{Root: "", DebounceMS: 50}
	assert.Error(t, s.Validate())
}

func TestValidateRejectsNonPositiveDebounce(t *testing.T) {
	s := rconfig.Settings{Root: ".", DebounceMS: 0}
	assert.Error(t, s.Validate())
}
