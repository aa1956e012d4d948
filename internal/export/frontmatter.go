// Package export renders normalized papers as front-matter pages.
package export

import (
	"fmt"
	"strings"

	"github.com/bibfront/bibfront/internal/reference"
)

// ToFrontMatter renders a paper as a front-matter block followed by the
// abstract body. It is a pure function of the record: rendering the same
// paper twice yields byte-identical output.
//
// The layout is a fixed contract, not generic YAML serialization. Field
// order is fixed; absent optional fields render as empty values rather than
// being omitted, so every block has the same line structure. The www line is
// always emitted even though Hugo rejects the key; downstream tooling relies
// on the line being present.
func ToFrontMatter(p reference.Paper) string {
	var b strings.Builder

	b.WriteString("---\n")

	b.WriteString("authors:\n")
	for _, a := range p.Authors {
		fmt.Fprintf(&b, "  - \"%s\"\n", a)
	}

	b.WriteString("page:\n")
	fmt.Fprintf(&b, "  from: %s\n", optInt(p.Pages.From))
	fmt.Fprintf(&b, "  to: %s\n", optInt(p.Pages.To))

	fmt.Fprintf(&b, "volume: %s\n", optInt(p.Volume))
	fmt.Fprintf(&b, "series: %s\n", optInt(p.Series))

	fmt.Fprintf(&b, "%s:\n  name: \"%s\"\n  shortname: \"\"\n", p.Venue.Kind, p.Venue.Name)

	fmt.Fprintf(&b, "title: \"%s\"\n", p.Title)

	// Publisher is quoted when present, bare when absent; doi is always
	// quoted, possibly as "".
	if p.Publisher != "" {
		fmt.Fprintf(&b, "publisher: \"%s\"\n", p.Publisher)
	} else {
		b.WriteString("publisher: \n")
	}

	fmt.Fprintf(&b, "year: %d\n", p.Year)
	fmt.Fprintf(&b, "doi: \"%s\"\n", p.DOI)
	fmt.Fprintf(&b, "www: \"%s\"\n", p.URL)

	b.WriteString("---\n")

	// Abstract as a plain paragraph, then one blank line, even when empty.
	b.WriteString(p.Abstract)
	b.WriteString("\n\n")

	return b.String()
}

// ToFrontMatterList renders papers in order, one block per paper, with no
// separator beyond what each block itself ends with.
func ToFrontMatterList(papers []reference.Paper) string {
	var b strings.Builder
	for _, p := range papers {
		b.WriteString(ToFrontMatter(p))
	}
	return b.String()
}

// optInt renders an optional integer: its digits when set, empty when nil.
func optInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
