package cmd

import (
	"strings"

	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/spf13/cobra"
)

// paperFlags are flags that set fields of a paper.
type paperFlags struct {
	title, authors, year, journal, doi, url string
	abstract, keywords, tags, notes         string
	category, project                       string
}

// flagColumns connects flag names to columns of papers.
var flagColumns = []struct{ flag, column string }{
	{"title", "title"},
	{"authors", "authors"},
	{"year", "year"},
	{"journal", "journal"},
	{"doi", "doi"},
	{"url", "url"},
	{"abstract", "abstract"},
	{"keywords", "keywords"},
	{"tags", "tags"},
	{"notes", "notes"},
	{"category", "relates_to"},
	{"project", "project_id"},
}

// keyColumns are columns that take part in the derived key.
var keyColumns = map[string]struct{}{
	"title": {}, "year": {}, "relates_to": {}, "project_id": {},
}

func (pf *paperFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&pf.title, "title", "t", "", "title of the paper")
	f.StringVarP(&pf.authors, "authors", "a", "", "authors of the paper")
	f.StringVarP(&pf.year, "year", "y", "", "publication year")
	f.StringVarP(&pf.journal, "journal", "j", "", "journal of the paper")
	f.StringVar(&pf.doi, "doi", "", "DOI of the paper")
	f.StringVar(&pf.url, "url", "", "URL of the paper")
	f.StringVar(&pf.abstract, "abstract", "", "abstract of the paper")
	f.StringVarP(&pf.keywords, "keywords", "k", "", "keywords")
	f.StringVar(&pf.tags, "tags", "", "tags")
	f.StringVarP(&pf.notes, "notes", "n", "", "notes")
	f.StringVarP(&pf.category, "category", "c", "", "category code, e.g. BRNG")
	f.StringVarP(&pf.project, "project", "p", "", "project code, e.g. SYEL")
}

func (pf *paperFlags) value(flag string) string {
	switch flag {
	case "title":
		return pf.title
	case "authors":
		return pf.authors
	case "year":
		return pf.year
	case "journal":
		return pf.journal
	case "doi":
		return pf.doi
	case "url":
		return pf.url
	case "abstract":
		return pf.abstract
	case "keywords":
		return pf.keywords
	case "tags":
		return pf.tags
	case "notes":
		return pf.notes
	case "category":
		return pf.category
	case "project":
		return pf.project
	}
	return ""
}

// paper builds a new paper from flags.
func (pf *paperFlags) paper() schema.Paper {
	res := schema.Paper{
		Title:     pf.title,
		Authors:   pf.authors,
		Journal:   pf.journal,
		DOI:       pf.doi,
		URL:       pf.url,
		Abstract:  pf.abstract,
		Keywords:  pf.keywords,
		Tags:      pf.tags,
		Notes:     pf.notes,
		RelatesTo: pf.category,
		ProjectID: pf.project,
	}
	if y := naming.ParseYear(pf.year); y > 0 {
		res.Year = &y
	}
	return res
}

// changes returns columns of flags set on the command line. An empty
// year clears the year.
func (pf *paperFlags) changes(cmd *cobra.Command) map[string]any {
	res := make(map[string]any)
	for _, v := range flagColumns {
		if !cmd.Flags().Changed(v.flag) {
			continue
		}
		val := pf.value(v.flag)
		if v.column != "year" {
			res[v.column] = val
			continue
		}
		if y := naming.ParseYear(val); y > 0 {
			res["year"] = y
		} else {
			res["year"] = nil
		}
	}
	return res
}

// touchesKey checks if changes include fields of the derived key.
func touchesKey(changes map[string]any) bool {
	for k := range changes {
		if _, ok := keyColumns[k]; ok {
			return true
		}
	}
	return false
}

// filterValue converts a filter flag into a filter of a query. Years
// match exactly and unparseable years are ignored. Codes are uppercased.
func filterValue(column, val string) any {
	val = strings.TrimSpace(val)
	switch column {
	case "year":
		if y := naming.ParseYear(val); y > 0 {
			return y
		}
		return nil
	case "relates_to", "project_id":
		return schema.NormalizeCode(val)
	}
	return val
}
