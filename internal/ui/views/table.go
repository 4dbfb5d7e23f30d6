package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"userdir/internal/domain"
)

// NoResultsText replaces the table body when the filter matches nobody
const NoResultsText = "No users found matching your criteria"

// PhotoLabel stands in for the thumbnail; hovering it opens the preview
const PhotoLabel = "▣ photo"

// Column is one table column
type Column struct {
	Title string
	Width int
}

// Columns of the user table, in display order
var Columns = []Column{
	{"Name", 22},
	{"Picture", 9},
	{"Location", 26},
	{"Email", 30},
	{"Phone", 16},
	{"Registered", 10},
}

// PictureColumn is the index of the picture column in Columns
const PictureColumn = 1

const columnGap = 2

// ColumnX returns the first screen column of Columns[i]
func ColumnX(i int) int {
	x := marginLeft
	for j := 0; j < i && j < len(Columns); j++ {
		x += Columns[j].Width + columnGap
	}
	return x
}

// InPictureColumn reports whether screen column x lies on the picture cell
func InPictureColumn(x int) bool {
	start := ColumnX(PictureColumn)
	return x >= start && x < start+ansi.StringWidth(PhotoLabel)
}

// TableRenderer renders the user table
type TableRenderer struct {
	styles     *Styles
	dateFormat string
	loc        *time.Location
}

// NewTableRenderer creates a table renderer
func NewTableRenderer(styles *Styles, dateFormat string, loc *time.Location) *TableRenderer {
	return &TableRenderer{styles: styles, dateFormat: dateFormat, loc: loc}
}

// Header renders the column titles and the rule below them
func (tr *TableRenderer) Header() []string {
	titles := make([]string, len(Columns))
	var rule strings.Builder
	for i, c := range Columns {
		titles[i] = tr.styles.Header.Render(fit(strings.ToUpper(c.Title), c.Width))
		if i > 0 {
			rule.WriteString(strings.Repeat(" ", columnGap))
		}
		rule.WriteString(strings.Repeat("─", c.Width))
	}
	return []string{
		strings.Join(titles, strings.Repeat(" ", columnGap)),
		tr.styles.Rule.Render(rule.String()),
	}
}

// Row renders one user
func (tr *TableRenderer) Row(u domain.User, selected, hovered bool) string {
	photo := tr.styles.Photo
	if hovered {
		photo = tr.styles.PhotoHover
	}
	cells := []string{
		tr.styles.Name.Render(fit(u.FullName(), Columns[0].Width)),
		photo.Render(PhotoLabel) + strings.Repeat(" ", max(Columns[1].Width-ansi.StringWidth(PhotoLabel), 0)),
		tr.styles.Cell.Render(fit(u.Place(), Columns[2].Width)),
		tr.styles.Cell.Render(fit(u.Email, Columns[3].Width)),
		tr.styles.Cell.Render(fit(u.Phone, Columns[4].Width)),
		tr.styles.Cell.Render(fit(FormatDate(u.Registered.Date, tr.dateFormat, tr.loc), Columns[5].Width)),
	}
	line := strings.Join(cells, strings.Repeat(" ", columnGap))
	if selected {
		return tr.styles.SelectionBg.Render(line)
	}
	return line
}

// Empty renders the explicit no-results row
func (tr *TableRenderer) Empty() string {
	width := ColumnX(len(Columns)) - marginLeft - columnGap
	return tr.styles.Empty.Render(lipgloss.PlaceHorizontal(width, lipgloss.Center, NoResultsText))
}

// fit truncates s to width cells (with an ellipsis) and pads it to width
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
