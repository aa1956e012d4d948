package main

import (
	"strings"
	"testing"

	"github.com/bibfront/bibfront/internal/bibtex"
	"github.com/bibfront/bibfront/internal/export"
)

func TestConvertAll_Pipeline(t *testing.T) {
	src := `@article{Doe2020,
  author = {Doe, John},
  title = {A Title},
  journal = {J. Test},
  url = {http://x},
  year = {2020},
}`

	entries, err := bibtex.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	papers, err := convertAll(entries, false)
	if err != nil {
		t.Fatalf("convertAll() error = %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("convertAll() returned %d papers, want 1", len(papers))
	}

	got := export.ToFrontMatterList(papers)

	for _, want := range []string{
		"---\nauthors:\n  - \"John Doe\"\n",
		"journal:\n  name: \"J. Test\"\n  shortname: \"\"\n",
		"title: \"A Title\"\n",
		"year: 2020\n",
		"www: \"http://x\"\n",
		"  from: \n",
		"volume: \n",
		"series: \n",
		"publisher: \n",
		"doi: \"\"\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	// Empty abstract still yields a body line after the closing delimiter.
	if !strings.HasSuffix(got, "---\n\n\n") {
		t.Errorf("output should end with the delimiter and an empty abstract, got:\n%q", got)
	}
}

func TestConvertAll_AbortsOnFirstFailure(t *testing.T) {
	src := `
@article{good, author = {Doe, John}, title = {T}, journal = {J}, url = {http://x}, year = {2020}}
@article{bad, title = {No Author}, journal = {J}, url = {http://x}, year = {2020}}
@article{alsoGood, author = {Doe, John}, title = {T2}, journal = {J}, url = {http://x}, year = {2021}}
`
	entries, err := bibtex.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = convertAll(entries, false)
	if err == nil {
		t.Fatal("convertAll() expected error for entry with no author")
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error = %q, want it to name the failing entry", err)
	}
}

func TestConvertAll_KeepGoingSkipsFailures(t *testing.T) {
	src := `
@article{good, author = {Doe, John}, title = {T}, journal = {J}, url = {http://x}, year = {2020}}
@article{bad, title = {No Author}, journal = {J}, url = {http://x}, year = {2020}}
@article{alsoGood, author = {Doe, John}, title = {T2}, journal = {J}, url = {http://x}, year = {2021}}
`
	entries, err := bibtex.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	papers, err := convertAll(entries, true)
	if err != nil {
		t.Fatalf("convertAll(keepGoing) error = %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("convertAll(keepGoing) returned %d papers, want 2", len(papers))
	}
	if papers[0].Key != "good" || papers[1].Key != "alsoGood" {
		t.Errorf("papers = [%s, %s], want the two valid entries in order", papers[0].Key, papers[1].Key)
	}
}

func TestPageFileName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"Doe2020-ab", "Doe2020-ab.md"},
		{"smith_2021.v2", "smith_2021.v2.md"},
		{"weird/key:1", "weird-key-1.md"},
		{"", "entry.md"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := pageFileName(tt.key); got != tt.want {
				t.Errorf("pageFileName(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
