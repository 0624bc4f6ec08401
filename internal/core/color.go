package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. Tile colors run from cool to hot as values grow.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorMagenta
	ColorBrightMagenta
	ColorCyan
	ColorBrightCyan
	ColorGreen
	ColorBrightGreen
)

// tileColors is indexed by log2 of the tile value.
var tileColors = []Color{
	ColorGray,          // empty
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorRed,           // 32
	ColorBrightRed,     // 64
	ColorMagenta,       // 128
	ColorBrightMagenta, // 256
	ColorCyan,          // 512
	ColorBrightCyan,    // 1024
	ColorGreen,         // 2048
}

// TileColor returns the display color of a tile value. Tiles past 2048 share
// one color.
func TileColor(value int) Color {
	exp := 0
	for v := value; v > 1; v >>= 1 {
		exp++
	}
	if exp >= len(tileColors) {
		return ColorBrightGreen
	}
	return tileColors[exp]
}
