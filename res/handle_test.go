package res_test

import (
	"testing"

	"github.com/arqlane/rehoard/res"
	"github.com/stretchr/testify/assert"
)

func TestHandleCloneAliasesSameCell(t *testing.T) {
	h := res.New(42)
	clone := h

	clone.Replace(99)

	assert.True(t, h.SameCell(clone))
	assert.Equal(t, 99, h.View())
}

func TestHandleBorrowSeesCurrentContents(t *testing.T) {
	h := res.New("hello")

	var seen string
	h.Borrow(func(v string) { seen = v })
	assert.Equal(t, "hello", seen)

	h.Replace("bye")
	h.Borrow(func(v string) { seen = v })
	assert.Equal(t, "bye", seen)
}

func TestHandleSameCellDistinguishesIndependentHandles(t *testing.T) {
	a := res.New(1)
	b := res.New(1)
	assert.False(t, a.SameCell(b))
}
