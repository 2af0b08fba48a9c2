// Package chart defines render-ready chart configurations produced by the
// analysis tools. The structs serialize directly to the JSON consumed by the
// frontend charting layer; no drawing happens server-side.
package chart

// Chart types emitted by the analysis tools.
const (
	TypeBar   = "bar"
	TypeLine  = "line"
	TypeDonut = "donut"
)

// Dash styles for line series.
const (
	DashSolid  = "solid"
	DashDashed = "dash"
	DashDotted = "dot"
)

// Config is a complete, render-ready chart description.
type Config struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	XAxis   string   `json:"x_axis,omitempty"`
	YAxis   string   `json:"y_axis,omitempty"`
	Series  []Series `json:"series"`
	Colors  []string `json:"colors,omitempty"`
	Hole    float64  `json:"hole,omitempty"`
	RefLine *RefLine `json:"ref_line,omitempty"`
}

// Series is a named sequence of points with presentation hints.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Dash   string  `json:"dash,omitempty"`
	Fill   bool    `json:"fill,omitempty"`
	Points []Point `json:"points"`
}

// Point is a single labeled value. Text carries an optional display label
// such as a formatted amount shown on hover.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text,omitempty"`
}

// RefLine is a horizontal reference line, typically an average.
type RefLine struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Theme accent colors shared with the dashboard frontend.
const (
	ColorPrimary   = "#818cf8"
	ColorSecondary = "#c084fc"
)

// MajorCategoryColors assigns each broad spending group a stable color so the
// same group looks the same across charts.
var MajorCategoryColors = map[string]string{
	"Housing and Utilities":     "#818cf8",
	"Food":                      "#a78bfa",
	"Transportation":            "#6366f1",
	"Fitness":                   "#c084fc",
	"Souvenirs/Gifts/Treats":    "#4f46e5",
	"Household and Clothing":    "#8b5cf6",
	"Entertainment":             "#7c3aed",
	"Miscellaneous":             "#94a3b8",
	"Education":                 "#4338ca",
	"Electronics and Furniture": "#6d28d9",
}

// palette cycles for subcategory and remarks groupings, chosen to stay
// distinguishable next to the indigo theme colors.
var palette = []string{
	"#818cf8", "#f472b6", "#fb923c", "#34d399",
	"#60a5fa", "#a78bfa", "#fbbf24", "#2dd4bf",
	"#c084fc", "#f87171", "#4ade80", "#38bdf8",
}

// MajorColors returns the fixed color for each major category, falling back
// to the primary accent for unknown names.
func MajorColors(names []string) []string {
	colors := make([]string, len(names))
	for i, name := range names {
		if c, ok := MajorCategoryColors[name]; ok {
			colors[i] = c
		} else {
			colors[i] = ColorPrimary
		}
	}
	return colors
}

// SubcategoryColors returns n visually distinct colors, cycling the palette.
func SubcategoryColors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
