package naming

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Fields are the semantic fields of a record that take part in a key.
type Fields struct {
	// Title is the free-text title of a paper.
	Title string

	// Category is the category code (relates_to), for example "BRNG".
	Category string

	// Project is the project code (project_id), for example "SYEL".
	Project string

	// Year is the publication year. Zero or negative means absent.
	Year int
}

// Generate returns the key of a record under the given scheme.
//
// An empty string means the key cannot be generated: title, category or
// project is empty, the title has fewer than two letters, or the scheme
// needs a year and there is none. A seq smaller than 1 is treated as 1.
// Unknown schemes fall back to Sequential.
func Generate(f Fields, seq int, scheme Scheme) string {
	title := strings.TrimSpace(f.Title)
	cat := strings.TrimSpace(f.Category)
	proj := strings.TrimSpace(f.Project)
	if title == "" || cat == "" || proj == "" {
		return ""
	}

	if seq < 1 {
		seq = 1
	}
	num3 := fmt.Sprintf("%03d", seq)
	num4 := fmt.Sprintf("%04d", seq)

	if scheme == Simple {
		return join(cat, proj, num3)
	}

	tag := TitleTag(title)
	if tag == "" {
		return ""
	}
	year := formatYear(f.Year)

	switch scheme {
	case YearBased:
		if year == "" {
			return ""
		}
		return join(year, tag, cat, proj)
	case Hierarchical:
		return join(cat, proj, num3, tag)
	case ProjectFirst:
		if year == "" {
			return join(proj, cat, num4, tag)
		}
		return join(proj, cat, year, tag)
	default:
		return join(num4, tag, cat, proj)
	}
}

// TitleTag returns a 4-letter uppercase abbreviation of a title.
//
// All characters that are not letters are removed. With four or more
// letters the tag is the first two and the last two of them. Three letters
// give the first two plus the last one repeated ("cat" -> "CATT"), and two
// letters are doubled ("AI" -> "AIAI"). A title with fewer than two letters
// has no tag and the result is empty.
func TitleTag(title string) string {
	letters := make([]rune, 0, len(title))
	for _, r := range title {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
	}

	n := len(letters)
	var tag []rune
	switch {
	case n < 2:
		return ""
	case n == 2:
		tag = []rune{letters[0], letters[1], letters[0], letters[1]}
	case n == 3:
		tag = []rune{letters[0], letters[1], letters[2], letters[2]}
	default:
		tag = []rune{letters[0], letters[1], letters[n-2], letters[n-1]}
	}
	return string(tag)
}

// ParseYear converts free text to a year. It returns 0 if the text is
// empty, is not a number, or is not a positive whole number. Values like
// "2023.0" that come from spreadsheets are accepted.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		if i > 0 {
			return i
		}
		return 0
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || fl <= 0 || fl != math.Trunc(fl) || fl > math.MaxInt32 {
		return 0
	}
	return int(fl)
}

func formatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return fmt.Sprintf("%04d", year)
}

func join(parts ...string) string {
	return strings.Join(parts, "-")
}
