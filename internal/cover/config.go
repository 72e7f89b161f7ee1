package cover

import (
	"encoding/json"
	"fmt"
)

// Layout variants understood by the renderer.
const (
	LayoutModern  = "modern"
	LayoutSplit   = "split"
	LayoutClassic = "classic"
)

// Category badge shapes.
const (
	ShapeRounded   = "rounded"
	ShapePill      = "pill"
	ShapeTagLeft   = "tag-left"
	ShapeTagRight  = "tag-right"
	ShapeRectangle = "rectangle"
)

// PrimaryPalette holds the selectable background colors for the main panel.
// Batch items always use the first entry.
var PrimaryPalette = []string{"#307FE2", "#71C5E8", "#097BF3", "#0857C3"}

// DefaultLogo is the logo reference used when nothing else is configured.
// It is a path relative to the working directory; a missing file falls back
// to the text wordmark at render time.
var DefaultLogo = "static/images/logo.png"

// Config describes everything needed to render one cover.
type Config struct {
	Layout      string `json:"layout" yaml:"layout"`
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Level       string `json:"level" yaml:"level"`
	SpeakerName string `json:"speaker_name" yaml:"speaker_name"`

	PrimaryColor      string `json:"primary_color" yaml:"primary_color"`
	AccentColor       string `json:"accent_color" yaml:"accent_color"`
	CategoryBgColor   string `json:"category_bg_color" yaml:"category_bg_color"`
	CategoryTextColor string `json:"category_text_color" yaml:"category_text_color"`
	TitleColor        string `json:"title_color" yaml:"title_color"`
	LevelColor        string `json:"level_color" yaml:"level_color"`
	SpeakerColor      string `json:"speaker_color" yaml:"speaker_color"`

	// Asset references: "asset:<id>" for uploads, a URL, or a local path.
	// Empty means no image.
	LogoRef      string `json:"logo_ref" yaml:"logo_ref"`
	SideImageRef string `json:"side_image_ref" yaml:"side_image_ref"`

	FontFamily    string  `json:"font_family" yaml:"font_family"`
	LogoWidth     float64 `json:"logo_width" yaml:"logo_width"`
	LogoPositionX float64 `json:"logo_position_x" yaml:"logo_position_x"`
	LogoPositionY float64 `json:"logo_position_y" yaml:"logo_position_y"`

	CategoryShape         string  `json:"category_shape" yaml:"category_shape"`
	CategoryRounded       float64 `json:"category_rounded" yaml:"category_rounded"`
	CategoryFontSize      float64 `json:"category_font_size" yaml:"category_font_size"`
	CategoryLetterSpacing float64 `json:"category_letter_spacing" yaml:"category_letter_spacing"`
	CategoryFontWeight    string  `json:"category_font_weight" yaml:"category_font_weight"`
	CategoryPositionY     float64 `json:"category_position_y" yaml:"category_position_y"`

	TitleFontSize      float64 `json:"title_font_size" yaml:"title_font_size"`
	TitleFontWeight    string  `json:"title_font_weight" yaml:"title_font_weight"`
	TitleLetterSpacing float64 `json:"title_letter_spacing" yaml:"title_letter_spacing"`
	TitleLineHeight    float64 `json:"title_line_height" yaml:"title_line_height"`

	LevelFontSize      float64 `json:"level_font_size" yaml:"level_font_size"`
	LevelLetterSpacing float64 `json:"level_letter_spacing" yaml:"level_letter_spacing"`
	LevelFontWeight    string  `json:"level_font_weight" yaml:"level_font_weight"`

	ContentPositionY float64 `json:"content_position_y" yaml:"content_position_y"`

	SeparatorLineCount   int     `json:"separator_line_count" yaml:"separator_line_count"`
	SeparatorLineHeight  float64 `json:"separator_line_height" yaml:"separator_line_height"`
	SeparatorLineSpacing float64 `json:"separator_line_spacing" yaml:"separator_line_spacing"`
	SeparatorPositionY   float64 `json:"separator_position_y" yaml:"separator_position_y"`

	SideRectWidth    float64 `json:"side_rect_width" yaml:"side_rect_width"`
	SideImageOffsetX float64 `json:"side_image_offset_x" yaml:"side_image_offset_x"`

	ShowWatermark      bool    `json:"show_watermark" yaml:"show_watermark"`
	WatermarkWidth     float64 `json:"watermark_width" yaml:"watermark_width"`
	WatermarkPositionX float64 `json:"watermark_position_x" yaml:"watermark_position_x"`
	WatermarkPositionY float64 `json:"watermark_position_y" yaml:"watermark_position_y"`
	WatermarkOpacity   float64 `json:"watermark_opacity" yaml:"watermark_opacity"`

	QRText string  `json:"qr_text" yaml:"qr_text"`
	QRSize float64 `json:"qr_size" yaml:"qr_size"`
}

// Default returns the configuration every session starts from.
func Default() Config {
	return Config{
		Layout:      LayoutModern,
		Title:       "Strategi Transformasi Digital untuk UMKM Masa Kini",
		Category:    "KATEGORI",
		Level:       "LEVEL: INTERMEDIATE",
		SpeakerName: "Dr. Budi Santoso, M.B.A",

		PrimaryColor:      PrimaryPalette[0],
		AccentColor:       "#FFD700",
		CategoryBgColor:   "#FFD700",
		CategoryTextColor: "#0F3D6E",
		TitleColor:        "#ffffff",
		LevelColor:        "#e0f2fe",
		SpeakerColor:      "#ffffff",

		LogoRef:      DefaultLogo,
		SideImageRef: "",

		FontFamily:    "Inter",
		LogoWidth:     120,
		LogoPositionX: 0,
		LogoPositionY: 0,

		CategoryShape:         ShapePill,
		CategoryRounded:       99,
		CategoryFontSize:      11,
		CategoryLetterSpacing: 0.2,
		CategoryFontWeight:    "700",
		CategoryPositionY:     0,

		TitleFontSize:      32,
		TitleFontWeight:    "800",
		TitleLineHeight:    1.1,
		TitleLetterSpacing: -0.02,

		LevelFontSize:      12,
		LevelLetterSpacing: 0.1,
		LevelFontWeight:    "500",

		ContentPositionY: 32,

		SeparatorLineCount:   1,
		SeparatorLineHeight:  4,
		SeparatorLineSpacing: 6,
		SeparatorPositionY:   0,

		SideRectWidth:    310,
		SideImageOffsetX: 0,

		ShowWatermark:      true,
		WatermarkWidth:     400,
		WatermarkPositionX: -50,
		WatermarkPositionY: 50,
		WatermarkOpacity:   0.1,

		QRText: "",
		QRSize: 72,
	}
}

// Patch merges a JSON object over a copy of c. Keys absent from the object
// keep their current values.
func (c Config) Patch(raw []byte) (Config, error) {
	out := c
	if err := json.Unmarshal(raw, &out); err != nil {
		return c, fmt.Errorf("invalid config patch: %w", err)
	}
	out = out.Clamp()
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// Validate reports enum fields that the renderer does not understand.
func (c Config) Validate() error {
	switch c.Layout {
	case LayoutModern, LayoutSplit, LayoutClassic:
	default:
		return fmt.Errorf("unknown layout %q", c.Layout)
	}
	switch c.CategoryShape {
	case ShapeRounded, ShapePill, ShapeTagLeft, ShapeTagRight, ShapeRectangle:
	default:
		return fmt.Errorf("unknown category shape %q", c.CategoryShape)
	}
	return nil
}
