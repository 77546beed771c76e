package domain

// ChartSpec is a Vega-Lite specification for the indicator trend chart.
// One line per country; forecast segments are drawn with a dashed stroke.
type ChartSpec struct {
	Schema      string                   `json:"$schema"`
	Description string                   `json:"description,omitempty"`
	Width       string                   `json:"width,omitempty"`
	Height      int                      `json:"height,omitempty"`
	Data        ChartData                `json:"data"`
	Mark        ChartMark                `json:"mark"`
	Encoding    ChartEncoding            `json:"encoding"`
	Params      []map[string]interface{} `json:"params,omitempty"`
}

// ChartData holds the inline values backing the chart.
type ChartData struct {
	Values []ChartPoint `json:"values"`
}

// ChartPoint is one plotted observation.
type ChartPoint struct {
	Country   string  `json:"country"`
	Indicator string  `json:"indicator"`
	Year      int     `json:"year"`
	Value     float64 `json:"value"`
	Type      string  `json:"type"`
}

// ChartMark configures the line mark.
type ChartMark struct {
	Type  string `json:"type"`
	Point bool   `json:"point"`
}

// ChartEncoding maps record fields to visual channels.
type ChartEncoding struct {
	X          PositionChannel  `json:"x"`
	Y          PositionChannel  `json:"y"`
	Color      ColorChannel     `json:"color"`
	StrokeDash StrokeDash       `json:"strokeDash"`
	Tooltip    []TooltipChannel `json:"tooltip"`
}

// PositionChannel encodes a quantitative axis.
type PositionChannel struct {
	Field string     `json:"field"`
	Type  string     `json:"type"`
	Title string     `json:"title,omitempty"`
	Axis  *ChartAxis `json:"axis,omitempty"`
}

// ChartAxis customizes axis label formatting.
type ChartAxis struct {
	Format string `json:"format,omitempty"`
}

// ColorChannel encodes the per-country line color.
type ColorChannel struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// StrokeDash encodes the conditional solid/dashed stroke.
type StrokeDash struct {
	Condition DashCondition `json:"condition"`
	Value     []int         `json:"value"`
}

// DashCondition applies a dash pattern when the test expression holds.
type DashCondition struct {
	Test  string `json:"test"`
	Value []int  `json:"value"`
}

// TooltipChannel declares one tooltip field.
type TooltipChannel struct {
	Field  string `json:"field"`
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format,omitempty"`
}

// TableView is the tabular rendering of the filtered rows, sorted by
// (country ascending, year ascending).
type TableView struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// DashboardView bundles the chart and table produced for one filter state.
type DashboardView struct {
	Chart ChartSpec `json:"chart"`
	Table TableView `json:"table"`
	Count int       `json:"count"`
}

// DashboardOptions describes the selectable filter controls and their
// defaults, derived from the loaded dataset.
type DashboardOptions struct {
	Countries        []string   `json:"countries"`
	Indicators       []string   `json:"indicators"`
	Modes            []DataMode `json:"modes"`
	DefaultMode      DataMode   `json:"default_mode"`
	DefaultCountries []string   `json:"default_countries"`
	YearMin          int        `json:"year_min"`
	YearMax          int        `json:"year_max"`
}
