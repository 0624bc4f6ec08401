package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	require.Equal(t, 80, s.Width())
	require.Equal(t, 24, s.Height())
	for y := range s.Height() {
		require.Equal(t, strings.Repeat(" ", 80), s.Row(y))
	}

	empty := NewScreen(-3, -1)
	require.Zero(t, empty.Width())
	require.Empty(t, empty.String())
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	require.Equal(t, 'X', s.Get(5, 5))

	s.SetColored(1, 2, '8', ColorYellow)
	require.Equal(t, Cell{Rune: '8', Color: ColorYellow}, s.GetCell(1, 2))

	// out of bounds is ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')
	require.Equal(t, ' ', s.Get(-1, 0))
	require.Equal(t, ' ', s.Get(100, 0))
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawRect(NewRect(0, 0, 4, 2), '#', ColorRed)
	require.Equal(t, "####\n####", s.String())

	s.Clear()
	require.Equal(t, "    \n    ", s.String())
	require.Equal(t, ColorDefault, s.GetCell(0, 0).Color)
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawText(2, 0, "2048")
	require.Equal(t, "  2048    ", s.Row(0))

	s.DrawTextColored(8, 1, "clip", ColorGreen)
	require.Equal(t, "        cl", s.Row(1))
	require.Equal(t, ColorGreen, s.GetCell(9, 1).Color)

	s.DrawTextCentered(2, "ab")
	require.Equal(t, "    ab    ", s.Row(2))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3))

	require.Equal(t, "┌───┐", s.Row(0))
	require.Equal(t, "│   │", s.Row(1))
	require.Equal(t, "└───┘", s.Row(2))
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(0, 0, 'X')

	s.Resize(4, 4)
	require.Equal(t, 'X', s.Get(0, 0), "same size keeps content")

	s.Resize(6, 2)
	require.Equal(t, 6, s.Width())
	require.Equal(t, 2, s.Height())
	require.Equal(t, ' ', s.Get(0, 0))
	require.Equal(t, strings.Repeat(" ", 6), s.Row(5), "rows past the bottom are blank")
}

func TestRect(t *testing.T) {
	r := NewRect(2, 3, 10, 4)

	require.Equal(t, 12, r.Right())
	require.Equal(t, 7, r.Bottom())

	x, y := r.Center()
	require.Equal(t, 7, x)
	require.Equal(t, 5, y)

	require.Equal(t, NewRect(5, 4, 4, 2), r.Centered(4, 2))
}

func TestTileColor(t *testing.T) {
	require.Equal(t, ColorGray, TileColor(0))
	require.Equal(t, ColorWhite, TileColor(2))
	require.Equal(t, ColorYellow, TileColor(8))
	require.Equal(t, ColorGreen, TileColor(2048))
	require.Equal(t, ColorBrightGreen, TileColor(8192))
}
