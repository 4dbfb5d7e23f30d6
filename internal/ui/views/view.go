package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"userdir/internal/domain"
)

// Screen geometry. The table body starts at BodyTop; everything above it
// is the title, filter and header block.
const (
	marginLeft   = 2
	BodyTop      = 7
	footerHeight = 3
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// BodyHeight returns how many table rows fit on a screen of the given height
func BodyHeight(height int) int {
	return max(height-BodyTop-footerHeight, 1)
}

// Preview is a photo popup anchored at a screen cell
type Preview struct {
	Content string
	X, Y    int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Users         []domain.User // rows to show (already filtered)
	TotalUsers    int
	Offset        int
	SelectedIndex int
	HoveredRow    int

	Loading       bool
	SpinnerFrame  int
	Source        string
	FilterQuery   string // applied filter
	FilterPending bool   // a keystroke is waiting for the debounce delay
	Filtering     bool   // the filter input has focus
	FilterInput   string // rendered text input
	StatusMessage string
	StatusIsError bool
	HelpLine      string

	Preview     *Preview
	ShowInfo    bool
	InfoContent string
	ShowHelp    bool
	HelpContent string
	ShowError   bool
	ErrorText   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	table       *TableRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles, dateFormat string, loc *time.Location) *Renderer {
	return &Renderer{
		styles:      styles,
		table:       NewTableRenderer(styles, dateFormat, loc),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	lines := make([]string, 0, state.Height)
	margin := strings.Repeat(" ", marginLeft)

	lines = append(lines, "")
	lines = append(lines, r.titleLine(state))
	lines = append(lines, "")
	lines = append(lines, r.filterLine(state))
	lines = append(lines, "")

	bodyHeight := BodyHeight(state.Height)
	switch {
	case state.Loading && state.TotalUsers == 0:
		lines = append(lines, margin+r.styles.StatusLoading.Render(spinnerFrames[state.SpinnerFrame%len(spinnerFrames)]+" Loading..."))
	default:
		for _, h := range r.table.Header() {
			lines = append(lines, margin+h)
		}
		if len(state.Users) == 0 {
			lines = append(lines, margin+r.table.Empty())
		}
		end := min(state.Offset+bodyHeight, len(state.Users))
		for i := state.Offset; i < end; i++ {
			cursor := "  "
			if i == state.SelectedIndex {
				cursor = r.styles.Filter.Render("› ")
			}
			lines = append(lines, cursor+r.table.Row(state.Users[i], i == state.SelectedIndex, i == state.HoveredRow))
		}
	}

	for len(lines) < BodyTop+bodyHeight {
		lines = append(lines, "")
	}
	lines = append(lines, "")
	lines = append(lines, margin+r.statusLine(state, bodyHeight))
	lines = append(lines, margin+state.HelpLine)

	width := state.Width
	if width <= 0 {
		width = 80
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	content := strings.Join(lines, "\n")

	if state.Preview != nil {
		content = r.popupRender.RenderAt(content, r.styles.PreviewBox.Render(state.Preview.Content), state.Preview.X, state.Preview.Y, width, state.Height)
	}
	if state.ShowInfo {
		content = r.popupRender.RenderCentered(content, state.InfoContent, width, state.Height, r.styles.InfoBox)
	}
	if state.ShowHelp {
		content = r.popupRender.RenderCentered(content, state.HelpContent, width, state.Height, r.styles.HelpBox)
	}
	if state.ShowError {
		body := r.styles.StatusError.Bold(true).Render("Error fetching users") + "\n\n" +
			state.ErrorText + "\n\n" + r.styles.Dim.Render("Press enter to dismiss")
		content = r.popupRender.RenderCentered(content, body, width, state.Height, r.styles.ErrorBox)
	}
	return content
}

func (r *Renderer) titleLine(state ViewState) string {
	logo := strings.Repeat(" ", marginLeft) + r.styles.Title.Render("userdir")

	var right []string
	if state.Loading {
		frame := spinnerFrames[state.SpinnerFrame%len(spinnerFrames)]
		right = append(right, r.styles.Dim.Render(frame+" Loading users"))
	}
	if state.TotalUsers > 0 {
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("%d/%d users", len(state.Users), state.TotalUsers)))
	}
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - marginLeft - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) filterLine(state ViewState) string {
	prompt := strings.Repeat(" ", marginLeft) + r.styles.FilterPrompt.Render("Filter: ")
	if state.Filtering {
		line := prompt + state.FilterInput
		if state.FilterPending {
			line += "  " + r.styles.Dim.Render("…")
		}
		return line
	}
	if state.FilterInput != "" {
		return prompt + state.FilterInput
	}
	return prompt + r.styles.Dim.Render("Filter by name... (press /)")
}

func (r *Renderer) statusLine(state ViewState, bodyHeight int) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.Status.Render(state.StatusMessage)
	}

	parts := []string{}
	if n := len(state.Users); n > bodyHeight {
		end := min(state.Offset+bodyHeight, n)
		parts = append(parts, r.styles.Scroll.Render(fmt.Sprintf("rows %d–%d of %d", state.Offset+1, end, n)))
	}
	if state.Source != "" {
		parts = append(parts, r.styles.Status.Render("source: "+state.Source))
	}
	return strings.Join(parts, "  ")
}
