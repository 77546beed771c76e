package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcdash/pkg/contracts/domain"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func record(country, indicator string, year int, value float64, typ string) domain.IndicatorRecord {
	return domain.IndicatorRecord{
		Country:    country,
		Indicator:  indicator,
		Year:       intPtr(year),
		Value:      floatPtr(value),
		Type:       typ,
		IsForecast: typ == domain.TypeForecast,
	}
}

func sampleTable() []domain.IndicatorRecord {
	return []domain.IndicatorRecord{
		record("Indonesia", "GDP", 2020, 5.0, "Actual"),
		record("Indonesia", "GDP", 2021, 5.1, "Actual"),
		record("Indonesia", "GDP", 2025, 5.3, "Forecast"),
		record("Indonesia", "Inflation", 2020, 1.7, "Actual"),
		record("Japan", "GDP", 2020, -4.1, "Actual"),
		record("Japan", "GDP", 2025, 1.1, "Forecast"),
		record("Singapore", "GDP", 2020, -3.8, "Actual"),
	}
}

func TestFilter_CountryAndIndicator(t *testing.T) {
	records := sampleTable()

	filtered := Filter(records, FilterOptions{
		Countries: []string{"Indonesia", "Japan"},
		Indicator: "GDP",
		Mode:      domain.ModeActualForecast,
		YearFrom:  2019,
		YearTo:    2030,
	})

	require.Len(t, filtered, 5)
	for _, r := range filtered {
		assert.Contains(t, []string{"Indonesia", "Japan"}, r.Country)
		assert.Equal(t, "GDP", r.Indicator)
	}
}

func TestFilter_ModeSelectsRowTypes(t *testing.T) {
	records := sampleTable()
	base := FilterOptions{
		Countries: []string{"Indonesia"},
		Indicator: "GDP",
		YearFrom:  2019,
		YearTo:    2030,
	}

	t.Run("actual only", func(t *testing.T) {
		opts := base
		opts.Mode = domain.ModeActualOnly
		filtered := Filter(records, opts)
		require.Len(t, filtered, 2)
		for _, r := range filtered {
			assert.False(t, r.IsForecast)
		}
	})

	t.Run("forecast only", func(t *testing.T) {
		opts := base
		opts.Mode = domain.ModeForecastOnly
		filtered := Filter(records, opts)
		require.Len(t, filtered, 1)
		assert.True(t, filtered[0].IsForecast)
	})

	t.Run("combined", func(t *testing.T) {
		opts := base
		opts.Mode = domain.ModeActualForecast
		assert.Len(t, Filter(records, opts), 3)
	})
}

func TestFilter_YearRangeIsInclusive(t *testing.T) {
	records := sampleTable()

	filtered := Filter(records, FilterOptions{
		Countries: []string{"Indonesia"},
		Indicator: "GDP",
		Mode:      domain.ModeActualForecast,
		YearFrom:  2020,
		YearTo:    2021,
	})

	require.Len(t, filtered, 2)
	assert.Equal(t, 2020, *filtered[0].Year)
	assert.Equal(t, 2021, *filtered[1].Year)
}

func TestFilter_ExcludesNilYears(t *testing.T) {
	records := sampleTable()
	records = append(records, domain.IndicatorRecord{
		Country:   "Indonesia",
		Indicator: "GDP",
		Year:      nil,
		Value:     floatPtr(9.9),
		Type:      "Actual",
	})

	filtered := Filter(records, FilterOptions{
		Countries: []string{"Indonesia"},
		Indicator: "GDP",
		Mode:      domain.ModeActualForecast,
		YearFrom:  1900,
		YearTo:    2100,
	})

	for _, r := range filtered {
		require.NotNil(t, r.Year, "rows without a year never survive the range test")
	}
}

func TestFilter_IndicatorComparisonIsExact(t *testing.T) {
	records := sampleTable()

	filtered := Filter(records, FilterOptions{
		Countries: []string{"Indonesia"},
		Indicator: "gdp",
		Mode:      domain.ModeActualForecast,
		YearFrom:  2019,
		YearTo:    2030,
	})

	assert.Empty(t, filtered)
}

func TestFilter_SortsByCountryThenYear(t *testing.T) {
	records := []domain.IndicatorRecord{
		record("Japan", "GDP", 2021, 1.0, "Actual"),
		record("Indonesia", "GDP", 2022, 2.0, "Actual"),
		record("Japan", "GDP", 2020, 3.0, "Actual"),
		record("Indonesia", "GDP", 2020, 4.0, "Actual"),
	}

	filtered := Filter(records, FilterOptions{
		Countries: []string{"Indonesia", "Japan"},
		Indicator: "GDP",
		Mode:      domain.ModeActualForecast,
		YearFrom:  2019,
		YearTo:    2030,
	})

	require.Len(t, filtered, 4)
	assert.Equal(t, "Indonesia", filtered[0].Country)
	assert.Equal(t, 2020, *filtered[0].Year)
	assert.Equal(t, "Indonesia", filtered[1].Country)
	assert.Equal(t, 2022, *filtered[1].Year)
	assert.Equal(t, "Japan", filtered[2].Country)
	assert.Equal(t, 2020, *filtered[2].Year)
	assert.Equal(t, "Japan", filtered[3].Country)
	assert.Equal(t, 2021, *filtered[3].Year)
}

func TestFilter_IsPure(t *testing.T) {
	records := sampleTable()
	opts := FilterOptions{
		Countries: []string{"Indonesia"},
		Indicator: "GDP",
		Mode:      domain.ModeActualForecast,
		YearFrom:  2019,
		YearTo:    2030,
	}

	before := make([]domain.IndicatorRecord, len(records))
	copy(before, records)

	first := Filter(records, opts)
	second := Filter(records, opts)

	assert.Equal(t, before, records, "input table must not be modified")
	assert.Equal(t, first, second, "same options must yield the same result")
}

func TestCountries(t *testing.T) {
	records := sampleTable()
	records = append(records, domain.IndicatorRecord{Country: "", Indicator: "GDP"})

	countries := Countries(records)
	assert.Equal(t, []string{"Indonesia", "Japan", "Singapore"}, countries)
}

func TestIndicators(t *testing.T) {
	indicators := Indicators(sampleTable())
	assert.Equal(t, []string{"GDP", "Inflation"}, indicators)
}

func TestYearBounds(t *testing.T) {
	t.Run("observed bounds", func(t *testing.T) {
		min, max, ok := YearBounds(sampleTable())
		require.True(t, ok)
		assert.Equal(t, 2020, min)
		assert.Equal(t, 2025, max)
	})

	t.Run("nil years are ignored", func(t *testing.T) {
		records := []domain.IndicatorRecord{
			{Country: "Indonesia", Year: nil},
			record("Indonesia", "GDP", 2021, 1.0, "Actual"),
		}
		min, max, ok := YearBounds(records)
		require.True(t, ok)
		assert.Equal(t, 2021, min)
		assert.Equal(t, 2021, max)
	})

	t.Run("no parseable years", func(t *testing.T) {
		_, _, ok := YearBounds([]domain.IndicatorRecord{{Country: "Indonesia"}})
		assert.False(t, ok)
	})
}
