package rerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/arqlane/rehoard/rerr"
	"github.com/stretchr/testify/assert"
)

func TestAlreadyRegisteredKeyPredicates(t *testing.T) {
	err := rerr.NewAlreadyRegisteredKey("path:/srv/a.txt")

	assert.True(t, rerr.IsAlreadyRegisteredKey(err))
	assert.False(t, rerr.IsRootDoesNotExist(err))
}

func TestRootDoesNotExistWrapsCause(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := rerr.NewRootDoesNotExist("/does/not/exist", cause)

	assert.True(t, rerr.IsRootDoesNotExist(err))
	assert.ErrorIs(t, err, cause)
}

func TestStoreErrorSurvivesWrapping(t *testing.T) {
	err := rerr.NewAlreadyRegisteredKey("logical:mem/uid/1")
	wrapped := fmt.Errorf("get failed: %w", err)

	assert.True(t, rerr.IsAlreadyRegisteredKey(wrapped))
}
