package domain

import (
	"fmt"
	"strings"
)

// Category identifies which source list a search result belongs to.
type Category string

// Available categories.
const (
	// CategoryProfile is a hit representing a user account.
	CategoryProfile Category = "profile"

	// CategoryContent is a hit representing a post or note.
	CategoryContent Category = "content"
)

// Categories lists every category in merge order.
func Categories() []Category {
	return []Category{CategoryProfile, CategoryContent}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryProfile, CategoryContent:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts user input into a Category.
// Plural forms and "notes"/"people" aliases are accepted.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "profile", "profiles", "people":
		return CategoryProfile, nil
	case "content", "contents", "note", "notes":
		return CategoryContent, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
}

// CategorySet is a subset of categories chosen by the user.
// The zero value is the empty set.
type CategorySet struct {
	profile bool
	content bool
}

// NewCategorySet builds a set from the given categories.
// Unknown categories are ignored.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s = s.With(c)
	}
	return s
}

// DefaultCategories returns the initial selection, {profile}.
func DefaultCategories() CategorySet {
	return NewCategorySet(CategoryProfile)
}

// AllCategories returns {profile, content}.
func AllCategories() CategorySet {
	return NewCategorySet(CategoryProfile, CategoryContent)
}

// ParseCategorySet parses a list of category names.
func ParseCategorySet(names []string) (CategorySet, error) {
	var s CategorySet
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return CategorySet{}, err
		}
		s = s.With(c)
	}
	return s, nil
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	switch c {
	case CategoryProfile:
		return s.profile
	case CategoryContent:
		return s.content
	default:
		return false
	}
}

// With returns a copy of the set including c.
func (s CategorySet) With(c Category) CategorySet {
	switch c {
	case CategoryProfile:
		s.profile = true
	case CategoryContent:
		s.content = true
	}
	return s
}

// Without returns a copy of the set excluding c.
func (s CategorySet) Without(c Category) CategorySet {
	switch c {
	case CategoryProfile:
		s.profile = false
	case CategoryContent:
		s.content = false
	}
	return s
}

// Toggle flips membership of c. The last remaining category cannot be
// removed, so a user-driven selection never becomes empty.
func (s CategorySet) Toggle(c Category) CategorySet {
	if !s.Has(c) {
		return s.With(c)
	}
	next := s.Without(c)
	if next.IsEmpty() {
		return s
	}
	return next
}

// IsEmpty reports whether no category is selected.
func (s CategorySet) IsEmpty() bool {
	return !s.profile && !s.content
}

// List returns the selected categories in merge order.
func (s CategorySet) List() []Category {
	out := make([]Category, 0, 2)
	for _, c := range Categories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the selected category names in merge order.
func (s CategorySet) Strings() []string {
	cats := s.List()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.String()
	}
	return out
}

// String returns a comma separated list, e.g. "profile,content".
func (s CategorySet) String() string {
	return strings.Join(s.Strings(), ",")
}
