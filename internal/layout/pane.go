package layout

// PaneType distinguishes the primary price pane from stacked indicator
// panes.
type PaneType string

const (
	PanePrice     PaneType = "price"
	PaneIndicator PaneType = "indicator"
)

// Default and clamp bounds for pane heights, in pixels. The store itself
// does not clamp on resize; callers (the engine's resize path) clamp
// before writing. See ClampHeight.
const (
	DefaultPriceHeight     = 400
	DefaultIndicatorHeight = 150
	MinPriceHeight         = 100
	MinIndicatorHeight     = 50
	MaxPaneHeight          = 2000
)

// DefaultPriceIndicators is the indicator set attached to the price pane
// at initialization and after a reset.
var DefaultPriceIndicators = []string{"volume"}

// Pane is a horizontal strip of the chart workspace hosting either the
// primary price series or one or more stacked indicators. Indicator
// order is display order, and duplicates are permitted.
type Pane struct {
	ID         string   `json:"id"`
	Type       PaneType `json:"type"`
	Height     int      `json:"height"`
	Indicators []string `json:"indicators"`
	Visible    bool     `json:"visible"`
	Locked     bool     `json:"locked"`
}

// DefaultHeight returns the initial height for a pane type.
func DefaultHeight(t PaneType) int {
	if t == PanePrice {
		return DefaultPriceHeight
	}
	return DefaultIndicatorHeight
}

// ClampHeight clamps h to the legal range for a pane type.
func ClampHeight(t PaneType, h int) int {
	min := MinIndicatorHeight
	if t == PanePrice {
		min = MinPriceHeight
	}
	if h < min {
		return min
	}
	if h > MaxPaneHeight {
		return MaxPaneHeight
	}
	return h
}

func clonePane(p Pane) Pane {
	c := p
	c.Indicators = make([]string, len(p.Indicators))
	copy(c.Indicators, p.Indicators)
	return c
}
