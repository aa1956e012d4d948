// Package bibtex parses BibTeX-family bibliography files into raw tag maps.
//
// The parser performs no validation or type coercion: each entry is delivered
// as a mapping from lowercase tag name to its raw string value, with the
// delimiting braces or quotes stripped and interior whitespace (including
// newlines) preserved. Normalization is the job of the reference package.
package bibtex

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Entry is one bibliography entry: its type (article, inproceedings, ...),
// its citation key, and the raw tag values.
type Entry struct {
	Type string
	Key  string
	Tags map[string]string
}

// Parse reads BibTeX source and returns its entries in input order.
// @comment, @preamble, and @string blocks are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	p := &parser{src: []rune(string(data))}
	var entries []Entry

	for {
		if !p.seek('@') {
			return entries, nil
		}
		p.pos++ // consume '@'

		entryType := strings.ToLower(p.readWord())
		if entryType == "" {
			return nil, fmt.Errorf("at offset %d: '@' not followed by an entry type", p.pos)
		}

		switch entryType {
		case "comment", "preamble", "string":
			if err := p.skipBlock(); err != nil {
				return nil, fmt.Errorf("skipping @%s: %w", entryType, err)
			}
			continue
		}

		entry, err := p.readEntry(entryType)
		if err != nil {
			return nil, fmt.Errorf("entry @%s: %w", entryType, err)
		}
		entries = append(entries, entry)
	}
}

type parser struct {
	src []rune
	pos int
}

// seek advances to the next occurrence of c. Returns false at end of input.
func (p *parser) seek(c rune) bool {
	for p.pos < len(p.src) {
		if p.src[p.pos] == c {
			return true
		}
		p.pos++
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// readWord reads a run of letters (an entry type or bare word).
func (p *parser) readWord() string {
	start := p.pos
	for p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// skipBlock consumes a brace-balanced block, used for @comment and friends.
func (p *parser) skipBlock() error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		// Line-style @comment without braces: skip to end of line.
		for p.pos < len(p.src) && p.src[p.pos] != '\n' {
			p.pos++
		}
		return nil
	}

	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return fmt.Errorf("unterminated block")
}

// readEntry parses "{key, name = value, ...}" after the entry type.
func (p *parser) readEntry(entryType string) (Entry, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return Entry{}, fmt.Errorf("expected '{' after entry type")
	}
	p.pos++

	key, err := p.readKey()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Type: entryType,
		Key:  key,
		Tags: make(map[string]string),
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Entry{}, fmt.Errorf("%s: unterminated entry", key)
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return entry, nil
		}
		if p.src[p.pos] == ',' {
			p.pos++
			continue
		}

		name, value, err := p.readField()
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", key, err)
		}
		entry.Tags[strings.ToLower(name)] = value
	}
}

// readKey reads the citation key up to the first comma.
func (p *parser) readKey() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ',':
			key := strings.TrimSpace(string(p.src[start:p.pos]))
			p.pos++
			return key, nil
		case '}':
			// Entry with a key and no fields.
			return strings.TrimSpace(string(p.src[start:p.pos])), nil
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated citation key")
}

// readField parses one "name = value" pair.
func (p *parser) readField() (string, string, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '=' {
		if p.src[p.pos] == '}' || p.src[p.pos] == ',' {
			return "", "", fmt.Errorf("tag %q has no value", strings.TrimSpace(string(p.src[start:p.pos])))
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", "", fmt.Errorf("unterminated field")
	}
	name := strings.TrimSpace(string(p.src[start:p.pos]))
	p.pos++ // consume '='

	value, err := p.readValue()
	if err != nil {
		return "", "", fmt.Errorf("tag %q: %w", name, err)
	}
	return name, value, nil
}

// readValue parses a field value: {braced}, "quoted", or bare up to , or }.
func (p *parser) readValue() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("missing value")
	}

	switch p.src[p.pos] {
	case '{':
		return p.readBraced()
	case '"':
		return p.readQuoted()
	}

	// Bare value (numbers, month macros).
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' {
		p.pos++
	}
	return strings.TrimSpace(string(p.src[start:p.pos])), nil
}

// readBraced reads a {..}-delimited value, honoring nested braces.
func (p *parser) readBraced() (string, error) {
	p.pos++ // consume '{'
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				value := string(p.src[start:p.pos])
				p.pos++
				return value, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated braced value")
}

// readQuoted reads a "-delimited value. Braces protect inner quotes.
func (p *parser) readQuoted() (string, error) {
	p.pos++ // consume '"'
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				value := string(p.src[start:p.pos])
				p.pos++
				return value, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated quoted value")
}
