package export

import (
	"fmt"
	"strings"

	"github.com/youruser/coverapp/internal/cover"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

const (
	MaxTitleLen    = 50
	MaxCategoryLen = 30

	fallbackTitle    = "cover"
	fallbackCategory = "uncategorized"
)

// ArchiveName is the filename of a batch download.
const ArchiveName = "batch_covers.zip"

// Sanitize keeps only ASCII letters and digits of s, truncated to max
// characters. An empty result becomes fallback.
func Sanitize(s string, max int, fallback string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= max {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

func titlePart(cfg cover.Config) string {
	return Sanitize(cfg.Title, MaxTitleLen, fallbackTitle)
}

func categoryPart(cfg cover.Config) string {
	return Sanitize(cfg.Category, MaxCategoryLen, fallbackCategory)
}

// BatchFileName names the i-th (0-based) cover of a batch.
func BatchFileName(i int, cfg cover.Config) string {
	return fmt.Sprintf("%d_%s_%s.png", i+1, titlePart(cfg), categoryPart(cfg))
}

// SingleFileName names a single export in the given format.
func SingleFileName(cfg cover.Config, format string) string {
	return fmt.Sprintf("%s_%s.%s", titlePart(cfg), categoryPart(cfg), imagepkg.Ext(format))
}
