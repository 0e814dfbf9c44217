package notice

import (
	"net/url"
	"strings"
)

// Selection holds the current filter token of every dimension. An empty
// token leaves the dimension unconstrained.
type Selection struct {
	values [dimensionCount]string
}

func (s Selection) Get(d Dimension) string {
	return s.values[d]
}

// With returns a copy of s with d set to value.
func (s Selection) With(d Dimension, value string) Selection {
	s.values[d] = value
	return s
}

func (s Selection) IsZero() bool {
	return s == Selection{}
}

// Matches reports whether every set dimension equals the item's
// normalized attribute.
func (s Selection) Matches(item Item) bool {
	for _, d := range Dimensions {
		want := s.values[d]
		if want == "" {
			continue
		}
		if !strings.EqualFold(Normalize(item.Attr(d.Attribute())), want) {
			return false
		}
	}
	return true
}

// Query encodes the set dimensions in dimension order. Unset dimensions
// are omitted.
func (s Selection) Query() string {
	var b strings.Builder
	for _, d := range Dimensions {
		v := s.values[d]
		if v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(d.Key()))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String()
}

// SelectionFromQuery reads the five dimension keys from a raw query
// string. Malformed pairs are skipped and missing keys stay unset.
func SelectionFromQuery(rawQuery string) Selection {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))

	var s Selection
	for _, d := range Dimensions {
		s.values[d] = values.Get(d.Key())
	}
	return s
}
