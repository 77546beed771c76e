package domain

import (
	"fmt"
	"strings"
)

// Canonical type labels carried by source rows.
const (
	TypeActual   = "Actual"
	TypeForecast = "Forecast"
)

// IndicatorRecord represents one row of the unified, canonicalized dataset
// covering all three country sources.
type IndicatorRecord struct {
	Country    string   `json:"country" validate:"required"`
	Indicator  string   `json:"indicator"`
	Year       *int     `json:"year"`
	Value      *float64 `json:"value"`
	Type       string   `json:"type"`
	IsForecast bool     `json:"is_forecast"`
}

// HasYear reports whether the record carries a parseable year.
// Records without one are excluded by every numeric range test.
func (r IndicatorRecord) HasYear() bool {
	return r.Year != nil
}

// YearIn reports whether the record's year falls within [from, to] inclusive.
// A nil year never matches.
func (r IndicatorRecord) YearIn(from, to int) bool {
	return r.Year != nil && *r.Year >= from && *r.Year <= to
}

// FormattedValue returns the value rendered with two decimals, or an empty
// string when the value was unparseable.
func (r IndicatorRecord) FormattedValue() string {
	if r.Value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *r.Value)
}

// DataMode selects which row types a view keeps.
type DataMode string

const (
	ModeActualOnly     DataMode = "Actual only"
	ModeForecastOnly   DataMode = "Forecast only"
	ModeActualForecast DataMode = "Actual + Forecast"
)

// Modes lists the selectable data modes in display order.
// ModeActualForecast is the default.
func Modes() []DataMode {
	return []DataMode{ModeActualOnly, ModeForecastOnly, ModeActualForecast}
}

// Valid reports whether m is one of the three known modes.
func (m DataMode) Valid() bool {
	switch m {
	case ModeActualOnly, ModeForecastOnly, ModeActualForecast:
		return true
	}
	return false
}

// Keeps reports whether a record with the given type label survives the mode
// filter. Type comparison is case-insensitive.
func (m DataMode) Keeps(recordType string) bool {
	switch m {
	case ModeActualOnly:
		return strings.EqualFold(recordType, TypeActual)
	case ModeForecastOnly:
		return strings.EqualFold(recordType, TypeForecast)
	default:
		return true
	}
}
