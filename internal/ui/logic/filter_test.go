package logic

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/domain"
)

func user(first, last string) domain.User {
	return domain.User{Name: domain.Name{First: first, Last: last}}
}

func names(users []domain.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.FullName()
	}
	return out
}

var directory = []domain.User{
	user("John", "Smith"),
	user("Jane", "Doe"),
	user("Johanna", "Berg"),
	user("Elijah", "Johnson"),
	user("Ólafur", "Þórsson"),
}

func TestFilterByNameEmptyQueryReturnsInput(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n  "} {
		got := FilterByName(directory, q)
		require.Len(t, got, len(directory))
		// same backing array, no copy
		assert.Same(t, &directory[0], &got[0], "query %q", q)
	}
}

func TestFilterByName(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive first name", "john", []string{"John Smith", "Elijah Johnson"}},
		{"prefix shared by several", "joh", []string{"John Smith", "Johanna Berg", "Elijah Johnson"}},
		{"surrounding whitespace trimmed", "  JANE ", []string{"Jane Doe"}},
		{"spans first and last", "n s", []string{"John Smith"}},
		{"last name", "doe", []string{"Jane Doe"}},
		{"non-ascii", "ólafur þ", []string{"Ólafur Þórsson"}},
		{"inner whitespace kept", "john  smith", []string{}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByName(directory, tt.query)
			require.NotNil(t, got)
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("FilterByName(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilterByNameProperties(t *testing.T) {
	queries := []string{"j", "o", "an", "SON", " e ", "x", "h j"}
	for _, q := range queries {
		got := FilterByName(directory, q)
		norm := NormalizeQuery(q)

		// every result matches
		for _, u := range got {
			assert.Contains(t, strings.ToLower(u.FullName()), norm)
		}

		// nothing that matches is dropped, and order is preserved
		var want []string
		for _, u := range directory {
			if strings.Contains(strings.ToLower(u.FullName()), norm) {
				want = append(want, u.FullName())
			}
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, names(got), "query %q", q)
	}
}

func TestFilterByNameEndToEndExample(t *testing.T) {
	list := []domain.User{user("John", "Smith"), user("Jane", "Doe")}
	got := FilterByName(list, "john")
	assert.Equal(t, []string{"John Smith"}, names(got))
}

func TestFilterByNameNilInput(t *testing.T) {
	assert.Nil(t, FilterByName(nil, ""))
	assert.Empty(t, FilterByName(nil, "a"))
}
