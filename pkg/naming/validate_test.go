package naming_test

import (
	"testing"

	"github.com/gnames/papersdb/pkg/naming"
	"github.com/stretchr/testify/assert"
)

func TestIsLegacyKey(t *testing.T) {
	tests := []struct {
		msg string
		key string
		res bool
	}{
		{"valid", "2023-PRKE-SMITH-NATURE-45502", true},
		{"empty", "", false},
		{"four parts", "2023-PRKE-BRNG-SYEL", false},
		{"six parts", "2023-PRKE-A-B-C-D", false},
		{"short year", "202-PRKE-A-B-C", false},
		{"letters in year", "20x3-PRKE-A-B-C", false},
		{"lowercase title", "2023-Prke-A-B-C", false},
		{"short title", "2023-PRK-A-B-C", false},
		{"digit in title", "2023-PR1E-A-B-C", false},
		{"empty authors", "2023-PRKE--B-C", false},
		{"empty doi", "2023-PRKE-A-B-", false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, naming.IsLegacyKey(v.key), v.msg)
	}
}

func TestIsLegacyKeyRejectsGenerated(t *testing.T) {
	f := naming.Fields{
		Title:    "Predicting recovery following stroke",
		Category: "BRNG",
		Project:  "SYEL",
		Year:     2023,
	}
	for _, ex := range naming.Preview(f, 1) {
		assert.False(t, naming.IsLegacyKey(ex.Key), ex.Scheme.String())
	}
}

func TestMatchesScheme(t *testing.T) {
	f := naming.Fields{
		Title:    "Predicting recovery following stroke",
		Category: "BRNG",
		Project:  "SYEL",
		Year:     2023,
	}
	for _, sc := range naming.Schemes() {
		key := naming.Generate(f, 12, sc)
		assert.True(t, naming.MatchesScheme(key, sc), sc.String())
	}

	tests := []struct {
		msg    string
		key    string
		scheme naming.Scheme
		res    bool
	}{
		{"simple as hierarchical", "BRNG-SYEL-001", naming.Hierarchical, false},
		{"hierarchical as simple", "BRNG-SYEL-001-PRKE", naming.Simple, false},
		{"sequential as hierarchical", "0001-PRKE-BRNG-SYEL", naming.Hierarchical, false},
		{"large sequence", "12345-PRKE-BRNG-SYEL", naming.Sequential, true},
		{"year too long", "12345-PRKE-BRNG-SYEL", naming.YearBased, false},
		{"empty part", "0001-PRKE--SYEL", naming.Sequential, false},
		{"empty key", "", naming.Simple, false},
		{"lowercase tag", "BRNG-SYEL-001-prke", naming.Hierarchical, false},
		{"project first sequence", "SYEL-BRNG-0003-PRKE", naming.ProjectFirst, true},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, naming.MatchesScheme(v.key, v.scheme), v.msg)
	}
}
