package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearIn(t *testing.T) {
	year := 2020
	record := IndicatorRecord{Year: &year}

	assert.True(t, record.YearIn(2020, 2020))
	assert.True(t, record.YearIn(2019, 2021))
	assert.False(t, record.YearIn(2021, 2030))
	assert.False(t, record.YearIn(2010, 2019))

	// A nil year never matches, whatever the range
	assert.False(t, IndicatorRecord{}.YearIn(1900, 2100))
}

func TestFormattedValue(t *testing.T) {
	value := 5.025
	assert.Equal(t, "5.03", IndicatorRecord{Value: &value}.FormattedValue())

	negative := -4.1
	assert.Equal(t, "-4.10", IndicatorRecord{Value: &negative}.FormattedValue())

	assert.Equal(t, "", IndicatorRecord{}.FormattedValue())
}

func TestDataModeValid(t *testing.T) {
	for _, mode := range Modes() {
		assert.True(t, mode.Valid())
	}
	assert.False(t, DataMode("").Valid())
	assert.False(t, DataMode("Actual").Valid())
	assert.False(t, DataMode("actual only").Valid())
}

func TestDataModeKeeps(t *testing.T) {
	tests := []struct {
		name       string
		mode       DataMode
		recordType string
		kept       bool
	}{
		{name: "actual only keeps actual", mode: ModeActualOnly, recordType: "Actual", kept: true},
		{name: "actual only ignores case", mode: ModeActualOnly, recordType: "ACTUAL", kept: true},
		{name: "actual only drops forecast", mode: ModeActualOnly, recordType: "Forecast", kept: false},
		{name: "forecast only keeps forecast", mode: ModeForecastOnly, recordType: "forecast", kept: true},
		{name: "forecast only drops actual", mode: ModeForecastOnly, recordType: "Actual", kept: false},
		{name: "combined keeps actual", mode: ModeActualForecast, recordType: "Actual", kept: true},
		{name: "combined keeps forecast", mode: ModeActualForecast, recordType: "Forecast", kept: true},
		{name: "combined keeps unlabeled", mode: ModeActualForecast, recordType: "", kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kept, tt.mode.Keeps(tt.recordType))
		})
	}
}
