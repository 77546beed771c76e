package dataset

import (
	"sort"

	"fcdash/pkg/contracts/domain"
)

// FilterOptions narrows the unified table for one view.
type FilterOptions struct {
	Countries []string
	Indicator string
	Mode      domain.DataMode
	YearFrom  int
	YearTo    int
}

// Filter applies the country, indicator, mode and year-range filters and
// returns a fresh slice sorted by (country ascending, year ascending).
// It is pure: the input table is never modified, and applying the same
// options twice yields the same result.
func Filter(records []domain.IndicatorRecord, opts FilterOptions) []domain.IndicatorRecord {
	selected := make(map[string]bool, len(opts.Countries))
	for _, country := range opts.Countries {
		selected[country] = true
	}

	var filtered []domain.IndicatorRecord
	for _, record := range records {
		if !selected[record.Country] {
			continue
		}
		// Indicator comparison is exact and case-sensitive
		if record.Indicator != opts.Indicator {
			continue
		}
		if !opts.Mode.Keeps(record.Type) {
			continue
		}
		// Rows without a parseable year are excluded by the range test
		if !record.YearIn(opts.YearFrom, opts.YearTo) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Country != filtered[j].Country {
			return filtered[i].Country < filtered[j].Country
		}
		return *filtered[i].Year < *filtered[j].Year
	})

	return filtered
}

// Countries returns the sorted distinct non-empty country labels.
func Countries(records []domain.IndicatorRecord) []string {
	return distinct(records, func(r domain.IndicatorRecord) string { return r.Country })
}

// Indicators returns the sorted distinct non-empty indicator names.
func Indicators(records []domain.IndicatorRecord) []string {
	return distinct(records, func(r domain.IndicatorRecord) string { return r.Indicator })
}

// YearBounds returns the observed min and max year across the table.
// Records without a parseable year are ignored; ok is false when no record
// carries one.
func YearBounds(records []domain.IndicatorRecord) (min, max int, ok bool) {
	for _, record := range records {
		if record.Year == nil {
			continue
		}
		year := *record.Year
		if !ok {
			min, max, ok = year, year, true
			continue
		}
		if year < min {
			min = year
		}
		if year > max {
			max = year
		}
	}
	return min, max, ok
}

func distinct(records []domain.IndicatorRecord, field func(domain.IndicatorRecord) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, record := range records {
		v := field(record)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
