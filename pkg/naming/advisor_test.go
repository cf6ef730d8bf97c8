package naming_test

import (
	"fmt"
	"testing"

	"github.com/gnames/papersdb/pkg/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	f := naming.Fields{
		Title:    "Predicting recovery following stroke",
		Category: "BRNG",
		Project:  "SYEL",
	}
	res := naming.Preview(f, 2)
	require.Len(t, res, 5)

	exp := []string{
		"0002-PRKE-BRNG-SYEL",
		"",
		"BRNG-SYEL-002-PRKE",
		"SYEL-BRNG-0002-PRKE",
		"BRNG-SYEL-002",
	}
	for i, v := range res {
		assert.Equal(t, naming.Schemes()[i], v.Scheme)
		assert.Equal(t, exp[i], v.Key, v.Scheme.String())
	}
}

func sample(n int, cats, projs []string, year int) []naming.Fields {
	res := make([]naming.Fields, n)
	for i := range res {
		res[i] = naming.Fields{
			Title:    fmt.Sprintf("Paper number %d", i),
			Category: cats[i%len(cats)],
			Project:  projs[i%len(projs)],
			Year:     year,
		}
	}
	return res
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		msg    string
		sample []naming.Fields
		scheme naming.Scheme
	}{
		{
			"empty sample",
			nil,
			naming.Sequential,
		},
		{
			"many projects per category",
			sample(10, []string{"BRNG"}, []string{"SYEL", "CANG", "IBON"}, 2020),
			naming.ProjectFirst,
		},
		{
			"project rule wins over year rule",
			sample(60, []string{"BRNG"}, []string{"SYEL", "CANG", "IBON"}, 2020),
			naming.ProjectFirst,
		},
		{
			"large sample with years",
			sample(60, []string{"BRNG", "PHHD"}, []string{"SYEL", "CANG"}, 2020),
			naming.YearBased,
		},
		{
			"large sample without years",
			sample(60, []string{"BRNG", "PHHD"}, []string{"SYEL", "CANG"}, 0),
			naming.Hierarchical,
		},
		{
			"small mixed sample",
			sample(10, []string{"BRNG", "PHHD"}, []string{"SYEL", "CANG"}, 2020),
			naming.Hierarchical,
		},
		{
			"single category and project",
			sample(10, []string{"BRNG"}, []string{"SYEL"}, 2020),
			naming.Sequential,
		},
		{
			"exactly twice as many projects",
			sample(10, []string{"BRNG"}, []string{"SYEL", "CANG"}, 0),
			naming.Sequential,
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.scheme, naming.Suggest(v.sample), v.msg)
	}
}
