// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package region

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"US", NorthAmerica},
		{"us", NorthAmerica},
		{" gb ", Europe},
		{"UK", Europe},
		{"TR", Europe},
		{"RU", Europe},
		{"AZ", Asia},
		{"KZ", Asia},
		{"CN", Asia},
		{"EG", Africa},
		{"ZA", Africa},
		{"AU", Oceania},
		{"BR", SouthAmerica},
		{"JM", NorthAmerica},
		{"", Other},
		{"XX", Other},
		{"USA", Other},
		{"?", Other},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code))
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Every two-letter combination, plus odd inputs, lands in a known region.
	inputs := []string{"", " ", "a", "abc", "日本", "\x00\x01"}
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			inputs = append(inputs, string([]rune{a, b}))
		}
	}
	for _, in := range inputs {
		got := Classify(in)
		assert.True(t, slices.Contains(All, got), "Classify(%q) = %q", in, got)
	}
}

func TestTableUsesKnownRegions(t *testing.T) {
	for code, r := range countryRegion {
		assert.Len(t, code, 2)
		assert.True(t, slices.Contains(All, r), "%s -> %s", code, r)
		assert.NotEqual(t, Other, r)
	}
}
