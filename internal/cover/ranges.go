package cover

// Range is the editor's allowed interval for a numeric field.
type Range struct {
	Min, Max float64
}

func (r Range) clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Editor ranges. These are policy: the defaults sit inside every range.
var (
	LogoWidthRange     = Range{20, 400}
	OffsetRange        = Range{-400, 400}
	FontSizeRange      = Range{6, 120}
	LetterSpacingRange = Range{-0.2, 1}
	LineHeightRange    = Range{0.8, 3}
	SeparatorRange     = Range{0, 10}
	SeparatorSizeRange = Range{0, 40}
	SideWidthRange     = Range{0, CanvasWidth}
	WatermarkRange     = Range{20, 1200}
	OpacityRange       = Range{0, 1}
	RoundedRange       = Range{0, 99}
	QRSizeRange        = Range{40, 200}
	ScaleRange         = Range{1, 4}
)

// Logical canvas size, before export scaling.
const (
	CanvasWidth  = 800
	CanvasHeight = 450
)

// Clamp returns a copy of c with every numeric field forced into its range.
func (c Config) Clamp() Config {
	c.LogoWidth = LogoWidthRange.clamp(c.LogoWidth)
	c.LogoPositionX = OffsetRange.clamp(c.LogoPositionX)
	c.LogoPositionY = OffsetRange.clamp(c.LogoPositionY)

	c.CategoryRounded = RoundedRange.clamp(c.CategoryRounded)
	c.CategoryFontSize = FontSizeRange.clamp(c.CategoryFontSize)
	c.CategoryLetterSpacing = LetterSpacingRange.clamp(c.CategoryLetterSpacing)
	c.CategoryPositionY = OffsetRange.clamp(c.CategoryPositionY)

	c.TitleFontSize = FontSizeRange.clamp(c.TitleFontSize)
	c.TitleLetterSpacing = LetterSpacingRange.clamp(c.TitleLetterSpacing)
	c.TitleLineHeight = LineHeightRange.clamp(c.TitleLineHeight)

	c.LevelFontSize = FontSizeRange.clamp(c.LevelFontSize)
	c.LevelLetterSpacing = LetterSpacingRange.clamp(c.LevelLetterSpacing)

	c.ContentPositionY = OffsetRange.clamp(c.ContentPositionY)

	c.SeparatorLineCount = int(SeparatorRange.clamp(float64(c.SeparatorLineCount)))
	c.SeparatorLineHeight = SeparatorSizeRange.clamp(c.SeparatorLineHeight)
	c.SeparatorLineSpacing = SeparatorSizeRange.clamp(c.SeparatorLineSpacing)
	c.SeparatorPositionY = OffsetRange.clamp(c.SeparatorPositionY)

	c.SideRectWidth = SideWidthRange.clamp(c.SideRectWidth)
	c.SideImageOffsetX = OffsetRange.clamp(c.SideImageOffsetX)

	c.WatermarkWidth = WatermarkRange.clamp(c.WatermarkWidth)
	c.WatermarkPositionX = OffsetRange.clamp(c.WatermarkPositionX)
	c.WatermarkPositionY = OffsetRange.clamp(c.WatermarkPositionY)
	c.WatermarkOpacity = OpacityRange.clamp(c.WatermarkOpacity)

	c.QRSize = QRSizeRange.clamp(c.QRSize)
	return c
}

// ClampScale forces an export scale into ScaleRange; zero means 1.
func ClampScale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return ScaleRange.clamp(s)
}
