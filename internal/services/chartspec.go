package services

import (
	"strconv"

	"fcdash/pkg/contracts/domain"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// buildChartSpec produces the Vega-Lite line spec for the filtered rows:
// one line per country, x = year, y = value, dashed stroke for forecast
// segments, tooltip with two-decimal values.
func buildChartSpec(records []domain.IndicatorRecord) domain.ChartSpec {
	points := make([]domain.ChartPoint, 0, len(records))
	for _, record := range records {
		// Filtered rows always carry a year; a nil value still plots at 0
		// in the table but is skipped on the chart
		if record.Year == nil || record.Value == nil {
			continue
		}
		points = append(points, domain.ChartPoint{
			Country:   record.Country,
			Indicator: record.Indicator,
			Year:      *record.Year,
			Value:     *record.Value,
			Type:      record.Type,
		})
	}

	return domain.ChartSpec{
		Schema:      vegaLiteSchema,
		Description: "Indicator trend per country",
		Width:       "container",
		Height:      450,
		Data:        domain.ChartData{Values: points},
		Mark: domain.ChartMark{
			Type:  "line",
			Point: true,
		},
		Encoding: domain.ChartEncoding{
			X: domain.PositionChannel{
				Field: "year",
				Type:  "quantitative",
				Title: "Year",
				Axis:  &domain.ChartAxis{Format: ".0f"},
			},
			Y: domain.PositionChannel{
				Field: "value",
				Type:  "quantitative",
				Title: "Value",
			},
			Color: domain.ColorChannel{
				Field: "country",
				Type:  "nominal",
				Title: "Country",
			},
			StrokeDash: domain.StrokeDash{
				Condition: domain.DashCondition{
					Test:  "datum.type === 'Forecast'",
					Value: []int{4, 4}, // dashed = forecast
				},
				Value: []int{1, 0}, // solid = actual
			},
			Tooltip: []domain.TooltipChannel{
				{Field: "country", Title: "Country"},
				{Field: "indicator", Title: "Indicator"},
				{Field: "year", Type: "quantitative", Title: "Year"},
				{Field: "value", Type: "quantitative", Title: "Value", Format: ".2f"},
				{Field: "type", Title: "Type"},
			},
		},
	}
}

// buildTableView renders the filtered rows (already sorted by country, year)
// into the expandable raw-data table.
func buildTableView(records []domain.IndicatorRecord) domain.TableView {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		year := ""
		if record.Year != nil {
			year = strconv.Itoa(*record.Year)
		}
		rows = append(rows, []string{
			record.Country,
			record.Indicator,
			year,
			record.FormattedValue(),
			record.Type,
		})
	}

	return domain.TableView{
		Headers: []string{"Country", "Indicator", "Year", "Value", "Type"},
		Rows:    rows,
	}
}
