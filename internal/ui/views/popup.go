package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[0m"

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderCentered draws popupContent with popupStyle in the middle of the
// screen, on top of mainContent
func (pr *PopupRenderer) RenderCentered(mainContent, popupContent string, width, height int, popupStyle lipgloss.Style) string {
	popup := popupStyle.Render(popupContent)
	x := (width - lipgloss.Width(popup)) / 2
	y := (height - lipgloss.Height(popup)) / 2
	return PlaceOverlay(max(x, 0), max(y, 0), popup, mainContent)
}

// RenderAt draws popup next to a pointer position. The popup is offset by
// one cell right and down and flipped to the other side of the pointer
// when it would leave the screen.
func (pr *PopupRenderer) RenderAt(mainContent, popup string, pointerX, pointerY, width, height int) string {
	x, y := PopupPosition(pointerX, pointerY, lipgloss.Width(popup), lipgloss.Height(popup), width, height)
	return PlaceOverlay(x, y, popup, mainContent)
}

// PopupPosition computes the top-left cell of a w×h popup shown next to
// the pointer on a width×height screen
func PopupPosition(pointerX, pointerY, w, h, width, height int) (int, int) {
	x, y := pointerX+1, pointerY+1
	if x+w > width {
		x = pointerX - w
	}
	if x < 0 {
		x = max(width-w, 0)
	}
	if y+h > height {
		y = pointerY - h
	}
	if y < 0 {
		y = max(height-h, 0)
	}
	return x, y
}

// PlaceOverlay writes fg over bg with its top-left corner at (x, y).
// Cells of bg outside fg's bounding box are kept, ANSI styling included.
func PlaceOverlay(x, y int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}

		line := bgLines[row]
		if w := ansi.StringWidth(line); w < x {
			line += strings.Repeat(" ", x-w)
		}

		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(fgLine), "")
		bgLines[row] = left + resetStyle + fgLine + resetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
