package drawing

// Point is a single anchor of a drawing object. Screen coordinates are
// always present; Time and Price are chart-space annotations attached
// opportunistically by the caller and never derived by the engine.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Time  int64   `json:"time,omitempty"`
	Price float64 `json:"price,omitempty"`
}

// LineStyle selects the stroke pattern of line-like objects.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// Style describes how an object is rendered. Updates replace the whole
// value; partial changes go through StylePatch so unrelated fields are
// never clobbered.
type Style struct {
	Color       string    `json:"color"`
	LineWidth   int       `json:"line_width"`
	LineStyle   LineStyle `json:"line_style"`
	FillColor   string    `json:"fill_color,omitempty"`
	FillOpacity float64   `json:"fill_opacity,omitempty"`
	FontSize    int       `json:"font_size,omitempty"`
	Text        string    `json:"text,omitempty"`
}

// DefaultStyle is the style assigned to a drawing started without an
// explicit one.
func DefaultStyle() Style {
	return Style{
		Color:     "#2962ff",
		LineWidth: 2,
		LineStyle: LineSolid,
	}
}

// StylePatch is a partial style update. Nil fields are left untouched.
type StylePatch struct {
	Color       *string    `json:"color,omitempty"`
	LineWidth   *int       `json:"line_width,omitempty"`
	LineStyle   *LineStyle `json:"line_style,omitempty"`
	FillColor   *string    `json:"fill_color,omitempty"`
	FillOpacity *float64   `json:"fill_opacity,omitempty"`
	FontSize    *int       `json:"font_size,omitempty"`
	Text        *string    `json:"text,omitempty"`
}

// Apply merges the patch over s and returns the merged value.
func (p StylePatch) Apply(s Style) Style {
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.LineWidth != nil {
		s.LineWidth = *p.LineWidth
	}
	if p.LineStyle != nil {
		s.LineStyle = *p.LineStyle
	}
	if p.FillColor != nil {
		s.FillColor = *p.FillColor
	}
	if p.FillOpacity != nil {
		s.FillOpacity = *p.FillOpacity
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Text != nil {
		s.Text = *p.Text
	}
	return s
}

// Rect is a pane-scoped selection rectangle in screen coordinates.
type Rect struct {
	PaneID string  `json:"pane_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies inside the rectangle bounds.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}
