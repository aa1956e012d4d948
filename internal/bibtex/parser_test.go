package bibtex

import (
	"strings"
	"testing"
)

func TestParse_BasicEntry(t *testing.T) {
	src := `@article{Doe2020-ab,
  author = {Doe, John and Smith, Jane},
  title = {A Study of Things},
  journal = {Nature},
  year = {2020},
  pages = {123--145},
}`

	entries, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Type != "article" {
		t.Errorf("Type = %q, want %q", e.Type, "article")
	}
	if e.Key != "Doe2020-ab" {
		t.Errorf("Key = %q, want %q", e.Key, "Doe2020-ab")
	}

	want := map[string]string{
		"author":  "Doe, John and Smith, Jane",
		"title":   "A Study of Things",
		"journal": "Nature",
		"year":    "2020",
		"pages":   "123--145",
	}
	for name, value := range want {
		if got := e.Tags[name]; got != value {
			t.Errorf("Tags[%q] = %q, want %q", name, got, value)
		}
	}
}

func TestParse_TagNamesLowercased(t *testing.T) {
	src := `@Article{key1, Author = {Doe, John}, TITLE = {T}}`

	entries, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	e := entries[0]
	if e.Type != "article" {
		t.Errorf("Type = %q, want lowercased %q", e.Type, "article")
	}
	if _, ok := e.Tags["author"]; !ok {
		t.Errorf("Tags missing lowercased 'author', got %v", e.Tags)
	}
	if _, ok := e.Tags["title"]; !ok {
		t.Errorf("Tags missing lowercased 'title', got %v", e.Tags)
	}
}

func TestParse_ValueStyles(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"braced", `@misc{k, note = {plain value}}`, "plain value"},
		{"nested braces", `@misc{k, note = {outer {inner} text}}`, "outer {inner} text"},
		{"quoted", `@misc{k, note = "quoted value"}`, "quoted value"},
		{"quoted with braces", `@misc{k, note = "a {"} b"}`, `a {"} b`},
		{"bare number", `@misc{k, note = 2020}`, "2020"},
		{"newlines preserved", "@misc{k, note = {line one\nline two}}", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := entries[0].Tags["note"]; got != tt.want {
				t.Errorf("Tags[note] = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_MultipleEntriesInOrder(t *testing.T) {
	src := `
@article{first, title = {One}, year = {2020}}

@inproceedings{second, title = {Two}, year = {2021}}
`
	entries, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
	if entries[0].Key != "first" || entries[1].Key != "second" {
		t.Errorf("entry order = [%s, %s], want [first, second]", entries[0].Key, entries[1].Key)
	}
	if entries[1].Type != "inproceedings" {
		t.Errorf("second entry Type = %q, want %q", entries[1].Type, "inproceedings")
	}
}

func TestParse_SkipsNonEntryBlocks(t *testing.T) {
	src := `
@comment{this is {nested} commentary}
@string{nat = "Nature"}
@preamble{"some preamble"}
@article{real, title = {Kept}, year = {2020}}
`
	entries, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].Key != "real" {
		t.Errorf("Key = %q, want %q", entries[0].Key, "real")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated entry", `@article{key, title = {T}`},
		{"unterminated value", `@article{key, title = {T`},
		{"unterminated quoted value", `@article{key, title = "T}`},
		{"tag without value", `@article{key, title, year = {2020}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.src)); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.src)
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	entries, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Parse() returned %d entries, want 0", len(entries))
	}
}
