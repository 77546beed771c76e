package dataset

import "strings"

// Canonical column names of the unified schema. TAHUN is the year column;
// the sources use Indonesian and English spellings interchangeably.
const (
	ColCountry   = "COUNTRY"
	ColIndicator = "INDICATOR"
	ColYear      = "TAHUN"
	ColValue     = "VALUE"
	ColType      = "TYPE"
)

// renameMap maps lowercased header spellings to their canonical column name.
// Case variants (all-lower, Title, all-upper) collapse to the same key, so a
// single lowercased lookup covers all of them. Headers without an entry are
// left untouched and ignored downstream.
var renameMap = map[string]string{
	"country":   ColCountry,
	"indicator": ColIndicator,
	"tahun":     ColYear,
	"year":      ColYear,
	"value":     ColValue,
	"type":      ColType,
}

// CanonicalColumn resolves a raw header to its canonical column name.
// The second return reports whether the header is part of the unified schema.
func CanonicalColumn(header string) (string, bool) {
	canonical, ok := renameMap[strings.ToLower(strings.TrimSpace(header))]
	return canonical, ok
}

// columnIndex maps canonical column names to their position in a source
// table. Missing columns are simply absent from the map.
func columnIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		canonical, ok := CanonicalColumn(header)
		if !ok {
			continue
		}
		// First occurrence wins when a source repeats a column
		if _, exists := index[canonical]; !exists {
			index[canonical] = i
		}
	}
	return index
}
