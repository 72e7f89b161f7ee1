package imagepkg

import (
	"image"
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/youruser/coverapp/internal/cover"
)

const (
	slotLogo = "logo"
	slotSide = "side"

	padding        = 40.0
	contentTop     = padding + 16
	footerRule     = 338.0
	avatarRadius   = 20.0
	avatarCenterY  = 390.0
	panelFill      = "#e2e8f0"
	iconColor      = "#94a3b8"
	labelColor     = "#dbeafe"
	wordmark       = "LINKUMKM"
	speakerLabel   = "PEMBICARA"
	speakerMissing = "Nama Pembicara"
)

// panel is a horizontal band of the logical canvas.
type panel struct {
	X, W float64
}

func (p panel) right() float64 { return p.X + p.W }

// scene draws one cover in logical 800x450 coordinates onto a context that
// is s times larger. gg does not transform text, so every coordinate and
// font size is scaled by hand.
type scene struct {
	dc    *gg.Context
	s     float64
	cfg   cover.Config
	fonts *FontBook
	logo  image.Image
	side  image.Image
	err   error
}

func (sc *scene) px(v float64) float64 { return v * sc.s }

func (sc *scene) check(err error) {
	if err != nil && sc.err == nil {
		sc.err = err
	}
}

func (sc *scene) face(weight string, size float64) text.Face {
	f, err := sc.fonts.Face(sc.cfg.FontFamily, weight, size*sc.s)
	sc.check(err)
	return f
}

func (sc *scene) fillRect(x, y, w, h float64) {
	sc.dc.DrawRectangle(sc.px(x), sc.px(y), sc.px(w), sc.px(h))
	sc.check(sc.dc.Fill())
}

// ascent returns the face ascent in logical units.
func (sc *scene) ascent(f text.Face) float64 { return f.Metrics().Ascent / sc.s }

func (sc *scene) lineBox(f text.Face) float64 {
	m := f.Metrics()
	return (m.Ascent + m.Descent) / sc.s
}

// measure returns the logical width of str with tracking (logical px) added
// between characters.
func (sc *scene) measure(f text.Face, str string, tracking float64) float64 {
	w := f.Advance(str) / sc.s
	if n := utf8.RuneCountInString(str); n > 1 {
		w += tracking * float64(n-1)
	}
	return w
}

func (sc *scene) text(f text.Face, str string, x, baseline, tracking float64) {
	sc.dc.SetFont(f)
	if tracking == 0 {
		sc.dc.DrawString(str, sc.px(x), sc.px(baseline))
		return
	}
	cx := sc.px(x)
	for _, r := range str {
		ch := string(r)
		sc.dc.DrawString(ch, cx, sc.px(baseline))
		cx += f.Advance(ch) + sc.px(tracking)
	}
}

func (sc *scene) draw() error {
	cfg := sc.cfg
	sideW := math.Min(cfg.SideRectWidth, cover.CanvasWidth)

	main := panel{0, cover.CanvasWidth}
	var side panel
	switch cfg.Layout {
	case cover.LayoutModern:
		side = panel{0, sideW}
		main = panel{sideW, cover.CanvasWidth - sideW}
	case cover.LayoutSplit:
		main = panel{0, cover.CanvasWidth - sideW}
		side = panel{main.W, sideW}
	}

	sc.dc.SetHexColor(cfg.PrimaryColor)
	sc.fillRect(main.X, 0, main.W, cover.CanvasHeight)
	sc.drawWatermark(main)
	if side.W > 0 {
		sc.drawSide(side)
	}
	sc.drawLogo(main)
	sc.drawContent(main, cfg.Layout == cover.LayoutClassic)
	sc.drawFooter(main)
	sc.drawQR(main)
	return sc.err
}

func (sc *scene) drawSide(p panel) {
	pw := int(math.Round(sc.px(p.W)))
	ph := int(math.Round(sc.px(cover.CanvasHeight)))
	if pw <= 0 || ph <= 0 {
		return
	}
	bg := imaging.New(pw, ph, hexColor(panelFill))
	if sc.side != nil {
		fw, fh := int(float64(pw)*1.1), int(float64(ph)*1.1)
		filled := imaging.Fill(sc.side, fw, fh, imaging.Center, imaging.Lanczos)
		off := image.Pt((pw-fw)/2+int(math.Round(sc.px(sc.cfg.SideImageOffsetX))), (ph-fh)/2)
		bg = imaging.Paste(bg, filled, off)
	}
	sc.dc.DrawImage(gg.ImageBufFromImage(bg), sc.px(p.X), 0)
	if sc.side == nil {
		sc.drawBookIcon(p.X+p.W/2, cover.CanvasHeight/2, 96)
	}
}

// drawBookIcon draws the empty-panel placeholder centered on (cx, cy).
func (sc *scene) drawBookIcon(cx, cy, size float64) {
	k := size / 200
	ox, oy := cx-size/2, cy-size/2
	at := func(x, y float64) (float64, float64) { return sc.px(ox + x*k), sc.px(oy + y*k) }
	c := gg.Hex(iconColor)

	sc.dc.SetRGBA(c.R, c.G, c.B, 0.05)
	x, y := at(20, 20)
	sc.dc.DrawRoundedRectangle(x, y, sc.px(160*k), sc.px(160*k), sc.px(20*k))
	sc.check(sc.dc.Fill())

	sc.dc.SetRGBA(c.R, c.G, c.B, 0.1)
	sc.dc.MoveTo(at(130, 20))
	sc.dc.LineTo(at(130, 100))
	sc.dc.LineTo(at(155, 80))
	sc.dc.LineTo(at(180, 100))
	sc.dc.LineTo(at(180, 20))
	sc.dc.ClosePath()
	sc.check(sc.dc.Fill())

	sc.dc.SetRGBA(c.R, c.G, c.B, 0.075)
	sc.dc.SetLineWidth(sc.px(4 * k))
	x, y = at(35, 40)
	sc.dc.DrawRoundedRectangle(x, y, sc.px(130*k), sc.px(120*k), sc.px(5*k))
	sc.check(sc.dc.Stroke())
}

// silhouette turns every visible pixel white, keeping alpha.
func silhouette(img image.Image, width float64) *image.NRGBA {
	white := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
	})
	w := int(math.Round(width))
	if w < 1 {
		w = 1
	}
	return imaging.Resize(white, w, 0, imaging.Lanczos)
}

func (sc *scene) drawWatermark(main panel) {
	cfg := sc.cfg
	if !cfg.ShowWatermark || sc.logo == nil || cfg.WatermarkOpacity <= 0 {
		return
	}
	mark := silhouette(sc.logo, sc.px(cfg.WatermarkWidth))
	h := float64(mark.Bounds().Dy()) / sc.s
	x := main.right() - cfg.WatermarkWidth + cfg.WatermarkPositionX
	y := cover.CanvasHeight - h + cfg.WatermarkPositionY
	sc.dc.DrawImageEx(gg.ImageBufFromImage(mark), gg.DrawImageOptions{
		X:             sc.px(x),
		Y:             sc.px(y),
		Interpolation: gg.InterpBilinear,
		Opacity:       cfg.WatermarkOpacity,
		BlendMode:     gg.BlendNormal,
	})
}

func (sc *scene) drawLogo(main panel) {
	cfg := sc.cfg
	classic := cfg.Layout == cover.LayoutClassic

	if sc.logo == nil {
		f := sc.face("700", 24)
		if f == nil {
			return
		}
		tracking := -0.025 * 24
		w := sc.measure(f, wordmark, tracking)
		x := main.right() - padding - w
		if classic {
			x = main.X + (main.W-w)/2
		}
		sc.dc.SetHexColor("#ffffff")
		sc.text(f, wordmark, x+cfg.LogoPositionX, padding+sc.ascent(f)+cfg.LogoPositionY, tracking)
		return
	}

	mark := silhouette(sc.logo, sc.px(cfg.LogoWidth))
	x := main.right() - padding - cfg.LogoWidth
	if classic {
		x = main.X + (main.W-cfg.LogoWidth)/2
	}
	sc.dc.DrawImage(gg.ImageBufFromImage(mark), sc.px(x+cfg.LogoPositionX), sc.px(padding+cfg.LogoPositionY))
}

func (sc *scene) drawContent(main panel, centered bool) {
	cfg := sc.cfg
	left := main.X + padding
	width := main.W - 2*padding
	if width <= 0 {
		return
	}
	alignX := func(w float64) float64 {
		if centered {
			return left + (width-w)/2
		}
		return left
	}

	y := contentTop + cfg.ContentPositionY

	// Category badge. Its Y offset moves only the badge, not the flow.
	if f := sc.face(cfg.CategoryFontWeight, cfg.CategoryFontSize); f != nil {
		label := strings.ToUpper(cfg.Category)
		tracking := cfg.CategoryLetterSpacing * cfg.CategoryFontSize
		tw := sc.measure(f, label, tracking)
		bh := sc.lineBox(f) + 8
		bw := tw + 24
		tip := 0.0
		if cfg.CategoryShape == cover.ShapeTagLeft || cfg.CategoryShape == cover.ShapeTagRight {
			tip = bh / 2
		}
		bx := alignX(bw + tip)
		by := y + cfg.CategoryPositionY

		sc.dc.SetHexColor(cfg.CategoryBgColor)
		sc.badgePath(bx, by, bw, bh, tip)
		sc.check(sc.dc.Fill())

		tx := bx + 12
		if cfg.CategoryShape == cover.ShapeTagLeft {
			tx += tip
		}
		sc.dc.SetHexColor(cfg.CategoryTextColor)
		sc.text(f, label, tx, by+4+sc.ascent(f), tracking)
		y += bh + 20
	}

	// Title, wrapped to 90% of the content width.
	if f := sc.face(cfg.TitleFontWeight, cfg.TitleFontSize); f != nil && cfg.Title != "" {
		tracking := cfg.TitleLetterSpacing * cfg.TitleFontSize
		lineH := cfg.TitleFontSize * cfg.TitleLineHeight
		lead := (lineH - sc.lineBox(f)) / 2
		sc.dc.SetHexColor(cfg.TitleColor)
		lines := text.WrapText(cfg.Title, f, sc.px(width*0.9), text.WrapWordChar)
		for i, ln := range lines {
			line := strings.TrimSpace(ln.Text)
			top := y + float64(i)*lineH
			sc.text(f, line, alignX(sc.measure(f, line, tracking)), top+lead+sc.ascent(f), tracking)
		}
		y += float64(len(lines))*lineH + 12
	}

	// Separators grow 20px per line.
	sy := y + cfg.SeparatorPositionY
	sc.dc.SetHexColor(cfg.AccentColor)
	for i := 0; i < cfg.SeparatorLineCount; i++ {
		w := 80 + float64(i)*20
		sc.fillRect(alignX(w), sy, w, cfg.SeparatorLineHeight)
		sy += cfg.SeparatorLineHeight + cfg.SeparatorLineSpacing
	}
	y += float64(cfg.SeparatorLineCount) * (cfg.SeparatorLineHeight + cfg.SeparatorLineSpacing)

	if f := sc.face(cfg.LevelFontWeight, cfg.LevelFontSize); f != nil && cfg.Level != "" {
		tracking := cfg.LevelLetterSpacing * cfg.LevelFontSize
		sc.dc.SetHexColor(cfg.LevelColor)
		sc.text(f, cfg.Level, alignX(sc.measure(f, cfg.Level, tracking)), y+8+sc.ascent(f), tracking)
	}
}

// badgePath traces the category badge outline. tip is the width of the
// arrow point for tag shapes and zero otherwise.
func (sc *scene) badgePath(x, y, w, h, tip float64) {
	dc := sc.dc
	switch sc.cfg.CategoryShape {
	case cover.ShapeRectangle:
		dc.DrawRectangle(sc.px(x), sc.px(y), sc.px(w), sc.px(h))
	case cover.ShapePill:
		dc.DrawRoundedRectangle(sc.px(x), sc.px(y), sc.px(w), sc.px(h), sc.px(h/2))
	case cover.ShapeTagLeft:
		dc.MoveTo(sc.px(x), sc.px(y+h/2))
		dc.LineTo(sc.px(x+tip), sc.px(y))
		dc.LineTo(sc.px(x+tip+w), sc.px(y))
		dc.LineTo(sc.px(x+tip+w), sc.px(y+h))
		dc.LineTo(sc.px(x+tip), sc.px(y+h))
		dc.ClosePath()
	case cover.ShapeTagRight:
		dc.MoveTo(sc.px(x), sc.px(y))
		dc.LineTo(sc.px(x+w), sc.px(y))
		dc.LineTo(sc.px(x+w+tip), sc.px(y+h/2))
		dc.LineTo(sc.px(x+w), sc.px(y+h))
		dc.LineTo(sc.px(x), sc.px(y+h))
		dc.ClosePath()
	default:
		r := math.Min(sc.cfg.CategoryRounded, h/2)
		dc.DrawRoundedRectangle(sc.px(x), sc.px(y), sc.px(w), sc.px(h), sc.px(r))
	}
}

func (sc *scene) drawFooter(main panel) {
	left := main.X + padding
	width := main.W - 2*padding
	if width <= 0 {
		return
	}

	sc.dc.SetRGBA(1, 1, 1, 0.2)
	sc.fillRect(left, footerRule, width, 1)

	cx, cy := left+avatarRadius, avatarCenterY
	sc.dc.SetRGBA(1, 1, 1, 0.1)
	sc.dc.DrawCircle(sc.px(cx), sc.px(cy), sc.px(avatarRadius))
	sc.check(sc.dc.Fill())
	sc.dc.SetRGBA(1, 1, 1, 0.2)
	sc.dc.SetLineWidth(sc.px(1))
	sc.dc.DrawCircle(sc.px(cx), sc.px(cy), sc.px(avatarRadius-0.5))
	sc.check(sc.dc.Stroke())
	sc.drawPersonIcon(cx, cy, 20)

	name := sc.cfg.SpeakerName
	if strings.TrimSpace(name) == "" {
		name = speakerMissing
	}
	tx := left + 2*avatarRadius + 12
	top := cy - 16.5

	if f := sc.face("600", 10); f != nil {
		sc.dc.SetHexColor(labelColor)
		sc.text(f, speakerLabel, tx, top+sc.ascent(f), 1)
	}
	if f := sc.face("700", 16); f != nil {
		sc.dc.SetHexColor(sc.cfg.SpeakerColor)
		sc.text(f, name, tx, top+17+sc.ascent(f)*0.9, 0)
	}
}

// drawPersonIcon strokes a head and shoulders glyph of the given size.
func (sc *scene) drawPersonIcon(cx, cy, size float64) {
	k := size / 24
	ox, oy := cx-size/2, cy-size/2
	at := func(x, y float64) (float64, float64) { return sc.px(ox + x*k), sc.px(oy + y*k) }

	sc.dc.SetHexColor("#ffffff")
	sc.dc.SetLineWidth(sc.px(2 * k))
	hx, hy := at(12, 7)
	sc.dc.DrawCircle(hx, hy, sc.px(4*k))
	sc.check(sc.dc.Stroke())

	sc.dc.MoveTo(at(20, 21))
	sc.dc.LineTo(at(20, 19))
	c1x, c1y := at(20, 15)
	e1x, e1y := at(16, 15)
	sc.dc.QuadraticTo(c1x, c1y, e1x, e1y)
	sc.dc.LineTo(at(8, 15))
	c2x, c2y := at(4, 15)
	e2x, e2y := at(4, 19)
	sc.dc.QuadraticTo(c2x, c2y, e2x, e2y)
	sc.dc.LineTo(at(4, 21))
	sc.check(sc.dc.Stroke())
}

func (sc *scene) drawQR(main panel) {
	cfg := sc.cfg
	if cfg.QRText == "" {
		return
	}
	size := cfg.QRSize
	x := main.right() - padding - size
	y := cover.CanvasHeight - padding - size

	sc.dc.SetHexColor("#ffffff")
	sc.dc.DrawRoundedRectangle(sc.px(x-4), sc.px(y-4), sc.px(size+8), sc.px(size+8), sc.px(4))
	sc.check(sc.dc.Fill())

	q, err := GenerateQRImage(cfg.QRText, int(math.Round(sc.px(size))))
	if err != nil {
		sc.check(err)
		return
	}
	sc.dc.DrawImage(gg.ImageBufFromImage(q), sc.px(x), sc.px(y))
}
