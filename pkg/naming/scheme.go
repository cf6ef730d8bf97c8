// Package naming derives short, human-readable keys for catalog records.
//
// A key is computed from the semantic fields of a record (title, category
// code, project code, year) and a sequence number according to one of a
// closed set of naming schemes. Keys are used as file names of the PDF
// artifacts that belong to records, so a key is a pure function of its
// inputs: the package has no state and all functions are safe for
// concurrent use.
//
// This package has no I/O dependencies.
package naming

import (
	"fmt"
	"strings"
)

// Scheme determines the order and presence of components in a key.
type Scheme int

const (
	// Sequential keys look like 0001-PRKE-BRNG-SYEL.
	Sequential Scheme = iota
	// YearBased keys look like 2023-PRKE-BRNG-SYEL.
	YearBased
	// Hierarchical keys look like BRNG-SYEL-001-PRKE.
	Hierarchical
	// ProjectFirst keys look like SYEL-BRNG-2023-PRKE.
	ProjectFirst
	// Simple keys look like BRNG-SYEL-001.
	Simple
)

var schemeNames = map[Scheme]string{
	Sequential:   "sequential",
	YearBased:    "year_based",
	Hierarchical: "hierarchical",
	ProjectFirst: "project_first",
	Simple:       "simple",
}

var schemeDescriptions = map[Scheme]string{
	Sequential:   "Sequential numbering (0001-PRAI-BRNG-SYEL) - matches original Excel format",
	YearBased:    "Year-based (2023-PRAI-BRNG-SYEL) - chronological organization",
	Hierarchical: "Hierarchical (BRNG-SYEL-001-PRAI) - category first, then project",
	ProjectFirst: "Project-focused (SYEL-BRNG-2023-PRAI) - project first, then category",
	Simple:       "Simple (BRNG-SYEL-001) - minimal identifier without title",
}

// Schemes returns all supported schemes in their canonical order.
func Schemes() []Scheme {
	return []Scheme{Sequential, YearBased, Hierarchical, ProjectFirst, Simple}
}

// String returns the configuration name of the scheme.
func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Describe returns a human-readable description of a scheme.
func Describe(s Scheme) string {
	if desc, ok := schemeDescriptions[s]; ok {
		return desc
	}
	return "Unknown scheme"
}

// ParseScheme converts a scheme name to a Scheme. Matching ignores case and
// treats '-' and '_' as the same character, so "year-based" and "YEAR_BASED"
// are both accepted.
func ParseScheme(s string) (Scheme, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	for _, sc := range Schemes() {
		if schemeNames[sc] == norm {
			return sc, nil
		}
	}
	return Sequential, fmt.Errorf("unknown naming scheme %q", s)
}

// SchemeNames returns names of all schemes, in canonical order.
func SchemeNames() []string {
	res := make([]string, 0, len(schemeNames))
	for _, sc := range Schemes() {
		res = append(res, sc.String())
	}
	return res
}
