package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"userdir/internal/domain"
)

// DetailsRenderer renders the full record of a user for the info popup
// and the pager
type DetailsRenderer struct {
	styles     *Styles
	dateFormat string
	loc        *time.Location
}

// NewDetailsRenderer creates a details renderer. Dates are shown in loc.
func NewDetailsRenderer(styles *Styles, dateFormat string, loc *time.Location) *DetailsRenderer {
	return &DetailsRenderer{styles: styles, dateFormat: dateFormat, loc: loc}
}

// Render lists every field of u; relative ages are computed against now
func (d *DetailsRenderer) Render(u domain.User, now time.Time) string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render(strings.TrimSpace(u.Name.Title + " " + u.FullName())))
	b.WriteString("\n")

	d.section(&b, "Contact")
	d.field(&b, "Email", u.Email)
	d.field(&b, "Phone", u.Phone)
	d.field(&b, "Cell", u.Cell)

	d.section(&b, "Location")
	l := u.Location
	d.field(&b, "Street", strings.TrimSpace(fmt.Sprintf("%d %s", l.Street.Number, l.Street.Name)))
	d.field(&b, "City", u.Place())
	d.field(&b, "Postcode", string(l.Postcode))
	d.field(&b, "Country", l.Country)
	if l.Coordinates.Latitude != "" {
		d.field(&b, "Coordinates", l.Coordinates.Latitude+", "+l.Coordinates.Longitude)
	}
	if l.Timezone.Offset != "" {
		d.field(&b, "Timezone", fmt.Sprintf("UTC%s (%s)", l.Timezone.Offset, l.Timezone.Description))
	}

	d.section(&b, "Account")
	d.field(&b, "Username", u.Login.Username)
	d.field(&b, "UUID", u.Login.UUID)
	d.field(&b, "Registered", d.dated(u.Registered, now))
	d.field(&b, "Born", d.dated(u.Dob, now))
	if u.ID.Value != nil {
		d.field(&b, u.ID.Name, *u.ID.Value)
	}
	d.field(&b, "Gender", u.Gender)
	d.field(&b, "Nationality", u.Nat)

	d.section(&b, "Picture")
	d.field(&b, "Large", u.Picture.Large)
	d.field(&b, "Thumbnail", u.Picture.Thumbnail)

	return strings.TrimRight(b.String(), "\n")
}

// FormatDate renders a date the way the table shows it
func (d *DetailsRenderer) FormatDate(t time.Time) string {
	return FormatDate(t, d.dateFormat, d.loc)
}

// FormatDate renders t in loc with a Go layout; zero times render empty
func FormatDate(t time.Time, layout string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

func (d *DetailsRenderer) dated(da domain.DatedAge, now time.Time) string {
	if da.Date.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", d.FormatDate(da.Date), humanize.RelTime(da.Date, now, "ago", "from now"))
}

func (d *DetailsRenderer) section(b *strings.Builder, name string) {
	b.WriteString("\n")
	b.WriteString(d.styles.Section.Render(name))
	b.WriteString("\n")
}

func (d *DetailsRenderer) field(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s %s\n", d.styles.Key.Render(fmt.Sprintf("%-12s", key)), d.styles.Value.Render(value))
}
