package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorScrolling(t *testing.T) {
	n := NewNavigator()
	n.SetViewportHeight(3)
	n.SetTotal(10)

	n.Down()
	n.Down()
	assert.Equal(t, 2, n.Selected())
	assert.Equal(t, 0, n.Offset())

	n.Down()
	assert.Equal(t, 3, n.Selected())
	assert.Equal(t, 1, n.Offset())

	n.Bottom()
	assert.Equal(t, 9, n.Selected())
	assert.Equal(t, 7, n.Offset())
	start, end := n.Visible()
	assert.Equal(t, 7, start)
	assert.Equal(t, 10, end)

	n.PageUp()
	assert.Equal(t, 6, n.Selected())
	assert.Equal(t, 6, n.Offset())

	n.Top()
	assert.Equal(t, 0, n.Selected())
	assert.Equal(t, 0, n.Offset())

	n.Up()
	assert.Equal(t, 0, n.Selected())
}

func TestNavigatorShrinkingList(t *testing.T) {
	n := NewNavigator()
	n.SetViewportHeight(4)
	n.SetTotal(20)
	n.Select(15)

	n.SetTotal(2)
	assert.Equal(t, 1, n.Selected())
	assert.Equal(t, 0, n.Offset())

	n.SetTotal(0)
	assert.Equal(t, 0, n.Selected())
	start, end := n.Visible()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestNavigatorRowAt(t *testing.T) {
	n := NewNavigator()
	n.SetViewportHeight(3)
	n.SetTotal(5)
	n.Bottom()

	assert.Equal(t, 2, n.RowAt(0))
	assert.Equal(t, 4, n.RowAt(2))
	assert.Equal(t, -1, n.RowAt(3))
	assert.Equal(t, -1, n.RowAt(-1))
}
