package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		known    bool
	}{
		{name: "lowercase country", header: "country", expected: ColCountry, known: true},
		{name: "title case country", header: "Country", expected: ColCountry, known: true},
		{name: "uppercase country", header: "COUNTRY", expected: ColCountry, known: true},
		{name: "indonesian year spelling", header: "Tahun", expected: ColYear, known: true},
		{name: "english year spelling", header: "Year", expected: ColYear, known: true},
		{name: "padded header", header: "  Value  ", expected: ColValue, known: true},
		{name: "type column", header: "TYPE", expected: ColType, known: true},
		{name: "indicator column", header: "Indicator", expected: ColIndicator, known: true},
		{name: "unknown header", header: "Notes", expected: "", known: false},
		{name: "empty header", header: "", expected: "", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, ok := CanonicalColumn(tt.header)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.expected, canonical)
		})
	}
}

func TestColumnIndex(t *testing.T) {
	t.Run("maps mixed case headers", func(t *testing.T) {
		index := columnIndex([]string{"Country", "INDICATOR", "tahun", "Value", "type"})

		assert.Equal(t, 0, index[ColCountry])
		assert.Equal(t, 1, index[ColIndicator])
		assert.Equal(t, 2, index[ColYear])
		assert.Equal(t, 3, index[ColValue])
		assert.Equal(t, 4, index[ColType])
	})

	t.Run("first occurrence wins on duplicates", func(t *testing.T) {
		index := columnIndex([]string{"Year", "Tahun", "Value"})

		assert.Equal(t, 0, index[ColYear])
		assert.Equal(t, 2, index[ColValue])
	})

	t.Run("unknown headers are absent", func(t *testing.T) {
		index := columnIndex([]string{"Notes", "Country"})

		_, hasNotes := index["Notes"]
		assert.False(t, hasNotes)
		assert.Equal(t, 1, index[ColCountry])
	})

	t.Run("missing columns stay missing", func(t *testing.T) {
		index := columnIndex([]string{"Indicator", "Tahun", "Value"})

		_, hasCountry := index[ColCountry]
		_, hasType := index[ColType]
		assert.False(t, hasCountry)
		assert.False(t, hasType)
	})
}
