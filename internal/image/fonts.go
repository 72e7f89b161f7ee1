package imagepkg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// FontBook loads and caches font sources. Fonts are looked up as
// {Dir}/{Family}-{weight}.ttf with spaces removed from the family name,
// e.g. fonts/OpenSans-700.ttf. Missing files fall back to the Go fonts.
type FontBook struct {
	Dir string

	mu      sync.Mutex
	sources map[string]*text.FontSource
}

func NewFontBook(dir string) *FontBook {
	return &FontBook{Dir: dir, sources: make(map[string]*text.FontSource)}
}

// Face returns a face of the given pixel size.
func (b *FontBook) Face(family, weight string, size float64) (text.Face, error) {
	src, err := b.source(family, weight)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

func (b *FontBook) source(family, weight string) (*text.FontSource, error) {
	w := normalizeWeight(weight)
	key := strings.ReplaceAll(family, " ", "") + "-" + strconv.Itoa(w)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sources == nil {
		b.sources = make(map[string]*text.FontSource)
	}
	if src, ok := b.sources[key]; ok {
		return src, nil
	}

	data := b.readFile(key)
	if data == nil {
		data = fallbackFont(w)
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", key, err)
	}
	b.sources[key] = src
	return src, nil
}

func (b *FontBook) readFile(key string) []byte {
	if b.Dir == "" {
		return nil
	}
	path := filepath.Join(b.Dir, key+".ttf")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Font file unreadable, using fallback", "path", path, "err", err)
		}
		return nil
	}
	return data
}

// Close releases every cached source.
func (b *FontBook) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var first error
	for k, src := range b.sources {
		if err := src.Close(); err != nil && first == nil {
			first = err
		}
		delete(b.sources, k)
	}
	return first
}

// normalizeWeight parses CSS-style weights ("700", "bold") and rounds to
// the nearest hundred in [100, 900].
func normalizeWeight(w string) int {
	switch strings.ToLower(strings.TrimSpace(w)) {
	case "normal", "regular", "":
		return 400
	case "bold":
		return 700
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return 400
	}
	n = (n + 50) / 100 * 100
	if n < 100 {
		n = 100
	}
	if n > 900 {
		n = 900
	}
	return n
}

func fallbackFont(weight int) []byte {
	switch {
	case weight >= 700:
		return gobold.TTF
	case weight >= 500:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}
