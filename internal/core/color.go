package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tileColors walks through the palette as tiles double: 2, 4, 8, ...
var tileColors = []Color{
	ColorWhite,
	ColorBrightWhite,
	ColorYellow,
	ColorOrange,
	ColorBrightRed,
	ColorRed,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorGreen,
	ColorBrightCyan,
	ColorBrightBlue,
	ColorBrightMagenta,
}

// TileColor returns the display color for a tile value.
// Empty cells are gray; values past the palette reuse the last color.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	idx := -1
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if idx < 0 {
		return tileColors[0]
	}
	if idx >= len(tileColors) {
		return tileColors[len(tileColors)-1]
	}
	return tileColors[idx]
}
