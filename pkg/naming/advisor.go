package naming

import "strings"

// Example is a key generated for one record under one scheme.
type Example struct {
	Scheme Scheme
	// Key is empty when the scheme cannot produce a key for the record.
	Key string
}

// Preview generates keys for a record under every scheme, in canonical
// scheme order.
func Preview(f Fields, seq int) []Example {
	res := make([]Example, 0, len(schemeNames))
	for _, sc := range Schemes() {
		res = append(res, Example{Scheme: sc, Key: Generate(f, seq, sc)})
	}
	return res
}

// Suggest recommends a scheme for a set of records. The first matching
// rule wins:
//
//  1. more than twice as many distinct projects as categories: ProjectFirst;
//  2. at least one year in a sample larger than 50: YearBased;
//  3. more than one category and more than one project: Hierarchical;
//  4. otherwise Sequential.
//
// The result is a recommendation only.
func Suggest(sample []Fields) Scheme {
	projects := make(map[string]struct{})
	categories := make(map[string]struct{})
	var hasYears bool
	for _, f := range sample {
		projects[strings.TrimSpace(f.Project)] = struct{}{}
		categories[strings.TrimSpace(f.Category)] = struct{}{}
		if f.Year > 0 {
			hasYears = true
		}
	}

	switch {
	case len(projects) > 2*len(categories):
		return ProjectFirst
	case hasYears && len(sample) > 50:
		return YearBased
	case len(categories) > 1 && len(projects) > 1:
		return Hierarchical
	default:
		return Sequential
	}
}
