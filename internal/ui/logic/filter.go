package logic

import (
	"strings"

	"userdir/internal/domain"
)

// NormalizeQuery trims surrounding whitespace and lower-cases a filter query.
// An empty result means "no filter".
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// MatchesName reports whether the user's "first last" name contains an
// already normalized query, ignoring case.
func MatchesName(user domain.User, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(user.FullName()), normalizedQuery)
}

// FilterByName returns the users whose full name contains query.
// An empty or whitespace-only query returns users itself. Matches keep
// their relative order; no match yields an empty, non-nil slice.
func FilterByName(users []domain.User, query string) []domain.User {
	q := NormalizeQuery(query)
	if q == "" {
		return users
	}

	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if MatchesName(u, q) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
