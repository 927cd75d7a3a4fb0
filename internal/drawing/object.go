package drawing

import "time"

// Tool identifies a drawing tool. ToolCursor is the null tool: selecting
// it means "no drawing" and it is never a valid object type.
type Tool string

const (
	ToolCursor          Tool = "cursor"
	ToolTrendLine       Tool = "trend_line"
	ToolHorizontalLine  Tool = "horizontal_line"
	ToolVerticalLine    Tool = "vertical_line"
	ToolRay             Tool = "ray"
	ToolArrow           Tool = "arrow"
	ToolRectangle       Tool = "rectangle"
	ToolEllipse         Tool = "ellipse"
	ToolTriangle        Tool = "triangle"
	ToolParallelChannel Tool = "parallel_channel"
	ToolPitchfork       Tool = "pitchfork"
	ToolFibRetracement  Tool = "fib_retracement"
	ToolFibExtension    Tool = "fib_extension"
	ToolText            Tool = "text"
	ToolBrush           Tool = "brush"
)

// ToolGroup is a display category of drawing tools.
type ToolGroup struct {
	Name  string `json:"name"`
	Tools []Tool `json:"tools"`
}

// ToolGroups lists every drawing tool grouped by category. ToolCursor is
// deliberately absent: it produces no object.
var ToolGroups = []ToolGroup{
	{Name: "Lines", Tools: []Tool{ToolTrendLine, ToolHorizontalLine, ToolVerticalLine, ToolRay, ToolArrow}},
	{Name: "Shapes", Tools: []Tool{ToolRectangle, ToolEllipse, ToolTriangle}},
	{Name: "Channels", Tools: []Tool{ToolParallelChannel, ToolPitchfork}},
	{Name: "Fibonacci", Tools: []Tool{ToolFibRetracement, ToolFibExtension}},
	{Name: "Annotation", Tools: []Tool{ToolText, ToolBrush}},
}

// ValidTool reports whether t names a known drawing tool (not the cursor).
func ValidTool(t Tool) bool {
	for _, g := range ToolGroups {
		for _, tool := range g.Tools {
			if tool == t {
				return true
			}
		}
	}
	return false
}

// Properties holds the mutable bookkeeping fields of a drawing object.
// ZIndex is stamped once at creation and never recalculated; draw order
// is a pure descending sort over it.
type Properties struct {
	Name      string    `json:"name"`
	Locked    bool      `json:"locked"`
	Visible   bool      `json:"visible"`
	ZIndex    int64     `json:"z_index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PropertiesPatch is a partial properties update. Nil fields are left
// untouched. UpdatedAt is stamped by the store, never by callers.
type PropertiesPatch struct {
	Name    *string `json:"name,omitempty"`
	Locked  *bool   `json:"locked,omitempty"`
	Visible *bool   `json:"visible,omitempty"`
	ZIndex  *int64  `json:"z_index,omitempty"`
}

func (p PropertiesPatch) apply(props Properties) Properties {
	if p.Name != nil {
		props.Name = *p.Name
	}
	if p.Locked != nil {
		props.Locked = *p.Locked
	}
	if p.Visible != nil {
		props.Visible = *p.Visible
	}
	if p.ZIndex != nil {
		props.ZIndex = *p.ZIndex
	}
	return props
}

// Object is a persisted, pane-scoped annotation produced by a drawing
// tool. Point order is semantically meaningful (segment direction,
// Fibonacci anchor order) and is preserved as given.
type Object struct {
	ID         string         `json:"id"`
	Type       Tool           `json:"type"`
	PaneID     string         `json:"pane_id"`
	Points     []Point        `json:"points"`
	Style      Style          `json:"style"`
	Properties Properties     `json:"properties"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ObjectPatch is a partial object update. Points and Metadata replace the
// whole field when non-nil; Properties merges field-by-field.
type ObjectPatch struct {
	PaneID     *string          `json:"pane_id,omitempty"`
	Points     []Point          `json:"points,omitempty"`
	Style      *Style           `json:"style,omitempty"`
	Properties *PropertiesPatch `json:"properties,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
}

func cloneObject(o Object) Object {
	c := o
	c.Points = make([]Point, len(o.Points))
	copy(c.Points, o.Points)
	if o.Metadata != nil {
		c.Metadata = make(map[string]any, len(o.Metadata))
		for k, v := range o.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
