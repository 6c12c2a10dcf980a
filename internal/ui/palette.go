package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme colors.
var (
	colorBlood  = MustParseHexColor("#b11e2f")
	colorWine   = MustParseHexColor("#6b0f1a")
	colorBruise = MustParseHexColor("#3a1d5d")
	colorBone   = MustParseHexColor("#e8e0d0")
	colorAsh    = MustParseHexColor("#8a8a8a")
	colorHealth = MustParseHexColor("#16a34a")
	colorAmber  = MustParseHexColor("#f59e0b")
	colorDanger = MustParseHexColor("#dc2626")
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewHexColor(int32(rgb)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// barColor shades a fill ratio: green above half, amber above a quarter,
// red below.
func barColor(pct int) tcell.Color {
	switch {
	case pct > 50:
		return colorHealth
	case pct > 25:
		return colorAmber
	default:
		return colorDanger
	}
}
