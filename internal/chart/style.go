package chart

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Well-known style keys.
const (
	StyleWidth         = "width"
	StyleHeight        = "height"
	StyleOpacity       = "opacity"
	StylePointerEvents = "pointer-events"
	StyleOverflow      = "overflow"
	StyleBackground    = "background"
	StyleColor         = "color"
	StyleBold          = "bold"
)

// Style is a key/value presentation map, e.g. {"width": "100px"}.
type Style map[string]string

// Clone returns a copy of s. A nil style clones to an empty one.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	maps.Copy(out, s)
	return out
}

// Merge returns a new style with the keys of over applied on top of s.
// Keys present in both take the value from over.
func (s Style) Merge(over Style) Style {
	out := s.Clone()
	maps.Copy(out, over)
	return out
}

// Cascade folds the overrides onto base in order. Later overrides win on
// key collision. Nil or empty overrides are skipped.
func Cascade(base Style, overrides ...Style) Style {
	out := base.Clone()
	for _, o := range overrides {
		if len(o) == 0 {
			continue
		}
		maps.Copy(out, o)
	}
	return out
}

// Equal reports whether both styles hold the same keys and values.
func (s Style) Equal(other Style) bool {
	return maps.Equal(s, other)
}

// Keys returns the style keys in sorted order.
func (s Style) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// String renders the style as a sorted "key:value;" list.
func (s Style) String() string {
	var b strings.Builder
	for _, k := range s.Keys() {
		fmt.Fprintf(&b, "%s:%s;", k, s[k])
	}
	return b.String()
}

// Px formats n as a pixel value.
func Px(n int) string {
	return strconv.Itoa(n) + "px"
}

// ParsePx parses "40px" (or a bare "40") into 40.
func ParsePx(v string) (int, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
