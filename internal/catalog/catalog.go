// Package catalog holds the fixed table of course categories, their badge
// colors, and the text color that reads best on each badge.
package catalog

import (
	"strconv"
	"strings"
)

// Catalog is an immutable, ordered list of categories.
type Catalog struct {
	entries []Category
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(builtin)
}

// New builds a catalog from entries. Later entries with a name that already
// exists (case-insensitive) replace the earlier one in place.
func New(entries []Category) *Catalog {
	c := &Catalog{}
	for _, e := range entries {
		c.add(e)
	}
	return c
}

func (c *Catalog) add(e Category) {
	for i, cur := range c.entries {
		if strings.EqualFold(cur.Name, e.Name) {
			c.entries[i] = e
			return
		}
	}
	c.entries = append(c.entries, e)
}

// All returns a copy of every entry in catalog order.
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds a category by name, ignoring case.
func (c *Catalog) Lookup(name string) (Category, bool) {
	for _, e := range c.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Category{}, false
}

// Groups returns the distinct group labels in first-seen order.
func (c *Catalog) Groups() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range c.entries {
		if !seen[e.Group] {
			seen[e.Group] = true
			out = append(out, e.Group)
		}
	}
	return out
}

const (
	darkNavy  = "#0F3D6E"
	darkSlate = "#1f2937"
	white     = "#ffffff"
)

// Brand colors whose readable text color is fixed instead of computed.
var contrastOverrides = map[string]string{
	"#c1ff72": darkNavy,
	"#facc15": darkNavy,
	"#e4bed2": darkNavy,
	"#fefefe": darkNavy,
	"#ffde59": darkNavy,
	"#ff751f": white,
}

// ContrastTextColor picks a text color for a badge filled with hex.
// Input that is not a #rrggbb color yields white.
func ContrastTextColor(hex string) string {
	if v, ok := contrastOverrides[strings.ToLower(hex)]; ok {
		return v
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return white
	}
	yiq := (r*299 + g*587 + b*114) / 1000
	if yiq >= 128 {
		return darkSlate
	}
	return white
}

func parseHex(hex string) (r, g, b int, ok bool) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
