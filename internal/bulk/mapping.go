package bulk

import (
	"strings"

	"github.com/youruser/coverapp/internal/assets"
	"github.com/youruser/coverapp/internal/catalog"
	"github.com/youruser/coverapp/internal/cover"
)

// Record is one spreadsheet row keyed by header text.
type Record map[string]string

// Column aliases in precedence order. The first alias holding a non-blank
// value wins.
var (
	TitleColumns    = []string{"Title", "Judul", "title"}
	CategoryColumns = []string{"Category", "Kategori", "category"}
	LevelColumns    = []string{"Level", "level", "SubCategory"}
	SpeakerColumns  = []string{"Speaker", "Pembicara", "speaker"}
	LogoColumns     = []string{"LogoFile", "Logo"}
	SideColumns     = []string{
		"Filename",
		"Side Image",
		"SideImage",
		"Left Side Image",
		"Left Image",
		"Gambar Kiri",
		"SideImageFile",
	}
)

// Resolver looks up uploaded assets by filename.
type Resolver interface {
	Resolve(filename string) (assets.Asset, bool)
}

// Mapper turns records into configuration deltas.
type Mapper struct {
	Assets   Resolver
	Catalog  *catalog.Catalog
	Defaults cover.Config
}

// Get returns the first non-blank value among keys, trimmed.
func (r Record) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v, true
		}
	}
	return "", false
}

func (r Record) getOr(def string, keys ...string) string {
	if v, ok := r.Get(keys...); ok {
		return v
	}
	return def
}

// Map builds the delta for one record. missing is the side image filename
// the record names but the registry does not hold, or "".
func (m Mapper) Map(rec Record) (d cover.Delta, missing string) {
	def := m.Defaults

	category := rec.getOr(def.Category, CategoryColumns...)
	d.Title = cover.String(rec.getOr(def.Title, TitleColumns...))
	d.Category = cover.String(category)
	d.Level = cover.String(rec.getOr(def.Level, LevelColumns...))
	d.SpeakerName = cover.String(rec.getOr(def.SpeakerName, SpeakerColumns...))

	d.LogoRef = cover.String(def.LogoRef)
	if name, ok := rec.Get(LogoColumns...); ok {
		if a, ok := m.Assets.Resolve(name); ok {
			d.LogoRef = cover.String(a.Ref)
		}
	}

	// A side image that cannot be found clears the field instead of
	// inheriting whatever the previous row showed.
	d.SideImageRef = cover.String("")
	if name, ok := rec.Get(SideColumns...); ok {
		if a, ok := m.Assets.Resolve(name); ok {
			d.SideImageRef = cover.String(a.Ref)
		} else {
			missing = name
		}
	}

	d.PrimaryColor = cover.String(cover.PrimaryPalette[0])
	accent, bg, text := def.AccentColor, def.CategoryBgColor, def.CategoryTextColor
	if m.Catalog != nil {
		if c, ok := m.Catalog.Lookup(category); ok {
			accent, bg, text = c.Color, c.Color, catalog.ContrastTextColor(c.Color)
		}
	}
	d.AccentColor = cover.String(accent)
	d.CategoryBgColor = cover.String(bg)
	d.CategoryTextColor = cover.String(text)
	return d, missing
}
