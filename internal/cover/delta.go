package cover

// Delta is a partial Config. A nil field keeps the current value; a non-nil
// field overwrites it, so a pointer to "" explicitly clears an asset ref.
type Delta struct {
	Title             *string `json:"title,omitempty" yaml:"title,omitempty"`
	Category          *string `json:"category,omitempty" yaml:"category,omitempty"`
	Level             *string `json:"level,omitempty" yaml:"level,omitempty"`
	SpeakerName       *string `json:"speaker_name,omitempty" yaml:"speaker_name,omitempty"`
	PrimaryColor      *string `json:"primary_color,omitempty" yaml:"primary_color,omitempty"`
	AccentColor       *string `json:"accent_color,omitempty" yaml:"accent_color,omitempty"`
	CategoryBgColor   *string `json:"category_bg_color,omitempty" yaml:"category_bg_color,omitempty"`
	CategoryTextColor *string `json:"category_text_color,omitempty" yaml:"category_text_color,omitempty"`
	LogoRef           *string `json:"logo_ref,omitempty" yaml:"logo_ref,omitempty"`
	SideImageRef      *string `json:"side_image_ref,omitempty" yaml:"side_image_ref,omitempty"`
}

// String returns a pointer to s, for building deltas.
func String(s string) *string {
	return &s
}

// Apply merges d over a copy of c and returns the copy.
func (c Config) Apply(d Delta) Config {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Title, d.Title)
	set(&c.Category, d.Category)
	set(&c.Level, d.Level)
	set(&c.SpeakerName, d.SpeakerName)
	set(&c.PrimaryColor, d.PrimaryColor)
	set(&c.AccentColor, d.AccentColor)
	set(&c.CategoryBgColor, d.CategoryBgColor)
	set(&c.CategoryTextColor, d.CategoryTextColor)
	set(&c.LogoRef, d.LogoRef)
	set(&c.SideImageRef, d.SideImageRef)
	return c
}

// Value returns the string behind p, or "" when p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
