package cmd

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func year(y int) *int {
	return &y
}

func TestPaperFlagsChanges(t *testing.T) {
	var pf paperFlags
	cmd := &cobra.Command{Use: "test"}
	pf.bind(cmd)

	err := cmd.ParseFlags([]string{
		"--title", "Deep Learning", "-c", "brng", "--year", "", "--notes", "",
	})
	require.NoError(t, err)

	changes := pf.changes(cmd)
	assert.Equal(t, map[string]any{
		"title":      "Deep Learning",
		"relates_to": "brng",
		"year":       nil,
		"notes":      "",
	}, changes)
	assert.True(t, touchesKey(changes))
	assert.False(t, touchesKey(map[string]any{"notes": "x"}))
}

func TestPaperFlagsPaper(t *testing.T) {
	var pf paperFlags
	cmd := &cobra.Command{Use: "test"}
	pf.bind(cmd)

	err := cmd.ParseFlags([]string{
		"-t", "Deep Learning", "-c", "BRNG", "-p", "SYEL", "-y", "2023",
	})
	require.NoError(t, err)

	p := pf.paper()
	assert.Equal(t, "Deep Learning", p.Title)
	assert.Equal(t, 2023, p.YearValue())
	assert.Equal(t, "0001-DENG-BRNG-SYEL", naming.Generate(p.Fields(), 1, naming.Sequential))

	pf.year = "unknown"
	assert.Nil(t, pf.paper().Year)
	pf.year = "c. 2023"
	assert.Nil(t, pf.paper().Year)
}

func TestFilterValue(t *testing.T) {
	tests := []struct {
		msg, column, input string
		expected           any
	}{
		{"year", "year", "2023", 2023},
		{"bad year", "year", "soon", nil},
		{"code", "relates_to", " brng ", "BRNG"},
		{"text", "journal", " Nature ", "Nature"},
	}
	for _, v := range tests {
		assert.Equal(t, v.expected, filterValue(v.column, v.input), v.msg)
	}
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "1, 2, 3", joinIDs([]uint{1, 2, 3}, 0))
	assert.Equal(t, "1, 2, ... 2 more", joinIDs([]uint{1, 2, 3, 4}, 2))
	assert.Empty(t, joinIDs(nil, 5))
}

func TestCheckKeys(t *testing.T) {
	papers := []schema.Paper{
		{ID: 1, UniqueName: "0001-DENG-BRNG-SYEL"},
		{ID: 2, UniqueName: "2024-AIAI-SMITH-NATURE-DOI1"},
		{ID: 3, UniqueName: "BRNG-SYEL-003"},
		{ID: 4},
	}

	res := checkKeys(papers, naming.Sequential)
	assert.Equal(t, naming.Sequential, res.Scheme)
	require.Len(t, res.Mismatched, 2)
	assert.Equal(t, uint(2), res.Mismatched[0].ID)
	assert.Equal(t, uint(3), res.Mismatched[1].ID)
	assert.Equal(t, 1, res.Legacy)
}

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	papers := []schema.Paper{
		{
			ID: 1, Title: "Deep, learning", Year: year(2023),
			RelatesTo: "BRNG", ProjectID: "SYEL",
			UniqueName: "0001-DENG-BRNG-SYEL", CreatedAt: ts, UpdatedAt: ts,
		},
		{ID: 2, Title: "No year", CreatedAt: ts, UpdatedAt: ts},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, papers))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Len(t, rows[1], len(csvHeader))

	rec := make(map[string]string)
	for i, v := range rows[0] {
		rec[v] = rows[1][i]
	}
	assert.Equal(t, "1", rec["id"])
	assert.Equal(t, "Deep, learning", rec["title"])
	assert.Equal(t, "2023", rec["year"])
	assert.Equal(t, "BRNG", rec["relates_to"])
	assert.Equal(t, "0001-DENG-BRNG-SYEL", rec["unique_name"])
	assert.Equal(t, "2024-05-01 10:30:00", rec["created_at"])
	assert.Equal(t, "", rows[2][3])
}

func TestRenderTable(t *testing.T) {
	res := renderTable(
		[]string{"Scheme", "Key"},
		exampleRows(naming.Preview(naming.Fields{
			Title: "Deep Learning", Category: "BRNG", Project: "SYEL",
		}, 1)),
	)
	assert.Contains(t, res, "Scheme")
	assert.Contains(t, res, "0001-DENG-BRNG-SYEL")
	assert.Contains(t, res, "BRNG-SYEL-001")
	// year_based needs a year
	assert.Contains(t, res, "(cannot generate)")
}

func TestRunKey(t *testing.T) {
	f := naming.Fields{Title: "Deep Learning", Category: "BRNG", Project: "SYEL"}

	tests := []struct {
		msg  string
		args []string
		res  string
		code gn.ErrorCode
	}{
		{"default scheme", nil, "0001-DENG-BRNG-SYEL\n", 0},
		{"simple", []string{"--scheme", "simple"}, "BRNG-SYEL-001\n", 0},
		{"hierarchical", []string{"--scheme", "Hierarchical"}, "BRNG-SYEL-001-DENG\n", 0},
		{"unknown", []string{"--scheme", "random"}, "", errcode.NamingSchemeError},
		{"no year", []string{"--scheme", "year_based"}, "", errcode.NamingKeyError},
	}

	for _, v := range tests {
		cmd := getKeyCmd()
		require.NoError(t, cmd.ParseFlags(v.args), v.msg)
		scheme, _ := cmd.Flags().GetString("scheme")

		var buf bytes.Buffer
		err := runKey(&buf, cmd, f, 1, scheme, false)
		if v.code != 0 {
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr, v.msg)
			assert.Equal(t, v.code, gnErr.Code, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, buf.String(), v.msg)
	}
}
