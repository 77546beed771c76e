package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcdash/pkg/contracts/domain"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildChartSpec_SkipsRowsWithoutPlottableValues(t *testing.T) {
	records := []domain.IndicatorRecord{
		{Country: "Indonesia", Indicator: "GDP", Year: intPtr(2020), Value: floatPtr(5.0), Type: "Actual"},
		{Country: "Indonesia", Indicator: "GDP", Year: intPtr(2021), Value: nil, Type: "Actual"},
		{Country: "Indonesia", Indicator: "GDP", Year: nil, Value: floatPtr(5.2), Type: "Actual"},
	}

	spec := buildChartSpec(records)

	require.Len(t, spec.Data.Values, 1)
	assert.Equal(t, 2020, spec.Data.Values[0].Year)
	assert.Equal(t, 5.0, spec.Data.Values[0].Value)
}

func TestBuildChartSpec_Encoding(t *testing.T) {
	spec := buildChartSpec(nil)

	assert.Equal(t, "https://vega.github.io/schema/vega-lite/v5.json", spec.Schema)
	assert.Equal(t, "line", spec.Mark.Type)
	assert.True(t, spec.Mark.Point)
	assert.Equal(t, "year", spec.Encoding.X.Field)
	require.NotNil(t, spec.Encoding.X.Axis)
	assert.Equal(t, ".0f", spec.Encoding.X.Axis.Format)
	assert.Equal(t, "value", spec.Encoding.Y.Field)
	assert.Equal(t, "country", spec.Encoding.Color.Field)

	// Value tooltip carries the two-decimal format
	var valueFormat string
	for _, tooltip := range spec.Encoding.Tooltip {
		if tooltip.Field == "value" {
			valueFormat = tooltip.Format
		}
	}
	assert.Equal(t, ".2f", valueFormat)
}

func TestBuildTableView_RendersNullableCells(t *testing.T) {
	records := []domain.IndicatorRecord{
		{Country: "Indonesia", Indicator: "GDP", Year: intPtr(2020), Value: floatPtr(5.025), Type: "Actual"},
		{Country: "Indonesia", Indicator: "GDP", Year: nil, Value: nil, Type: "Actual"},
	}

	table := buildTableView(records)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Indonesia", "GDP", "2020", "5.03", "Actual"}, table.Rows[0])
	assert.Equal(t, []string{"Indonesia", "GDP", "", "", "Actual"}, table.Rows[1])
}
