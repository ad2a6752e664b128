package formatter

import (
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders value relative to peak as a bar of the given width.
// A zero value renders only empty blocks; any positive value gets at least
// one filled block so short days stay visible.
func RenderBar(value, peak int64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if peak > 0 && value > 0 {
		if value > peak {
			value = peak
		}
		filled = int(value * int64(width) / peak)
		if filled == 0 {
			filled = 1
		}
	}
	empty := width - filled

	style := StyleGreen
	if filled == 0 {
		style = StyleDim
	}
	return style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, empty))
}
