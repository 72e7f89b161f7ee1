// Package imagepkg rasterizes cover configurations into PNG or JPEG images.
package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/youruser/coverapp/internal/cover"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// DefaultJPEGQuality is used when RenderOptions.Quality is zero.
const DefaultJPEGQuality = 92

// RenderOptions controls rasterization and encoding.
type RenderOptions struct {
	Scale      float64 // pixel ratio, clamped to cover.ScaleRange
	Format     string  // FormatPNG or FormatJPEG
	Background string  // JPEG flattening color, default #ffffff
	Quality    int     // JPEG quality 1-100
}

// Renderer draws covers. It is safe for concurrent use.
type Renderer struct {
	Assets       AssetSource
	Fonts        *FontBook
	ImageTimeout time.Duration
}

func NewRenderer(src AssetSource, fonts *FontBook, timeout time.Duration) *Renderer {
	if fonts == nil {
		fonts = NewFontBook("")
	}
	return &Renderer{Assets: src, Fonts: fonts, ImageTimeout: timeout}
}

// ParseFormat maps user input to a format constant.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Ext returns the file extension for a format.
func Ext(format string) string {
	if format == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	if format == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Render draws cfg and encodes it. Images referenced by cfg are loaded first;
// an image that fails or misses its deadline is left out of the drawing.
func (r *Renderer) Render(ctx context.Context, cfg cover.Config, opts RenderOptions) ([]byte, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	img, err := r.RenderImage(ctx, cfg, opts.Scale)
	if err != nil {
		return nil, err
	}
	return Encode(img, format, opts.Background, opts.Quality)
}

// RenderImage draws cfg at the given scale without encoding.
func (r *Renderer) RenderImage(ctx context.Context, cfg cover.Config, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scale = cover.ClampScale(scale)

	imgs := loadImages(ctx, r.Assets, r.ImageTimeout, map[string]string{
		slotLogo: cfg.LogoRef,
		slotSide: cfg.SideImageRef,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := int(math.Round(cover.CanvasWidth * scale))
	h := int(math.Round(cover.CanvasHeight * scale))
	dc := gg.NewContext(w, h)
	defer dc.Close()

	s := &scene{dc: dc, s: scale, cfg: cfg, fonts: r.Fonts, logo: imgs[slotLogo], side: imgs[slotSide]}
	if err := s.draw(); err != nil {
		return nil, fmt.Errorf("drawing cover: %w", err)
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	// The context owns its pixels; copy them out before Close.
	return imaging.Clone(dc.Image()), nil
}

// Encode writes img as PNG or JPEG. JPEG output is flattened over bg first.
func Encode(img image.Image, format, bg string, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	switch format {
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := imaging.Encode(buf, Flatten(img, bg), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, err
		}
	default:
		if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Flatten composites img over an opaque background color.
func Flatten(img image.Image, bg string) *image.NRGBA {
	if bg == "" {
		bg = "#ffffff"
	}
	b := img.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), hexColor(bg))
	return imaging.Overlay(base, img, image.Pt(0, 0), 1.0)
}

func hexColor(hex string) color.NRGBA {
	c := gg.Hex(hex)
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: 255,
	}
}
