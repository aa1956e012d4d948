package reference

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAuthors normalizes a raw BibTeX author tag into display names.
//
// Authors are separated by the literal delimiter " and "; newlines are
// treated as plain spaces first, since .bib sources often wrap author lists
// across lines. Each segment is split on commas and the fragments are
// reversed, turning "Last, First Middle" into "First Middle Last". A segment
// without a comma passes through unchanged. Source order is preserved.
//
// A surname containing "and" as a standalone word will be mis-split. That is
// a known limitation of the delimiter, kept for compatibility with existing
// bibliographies and their converted output.
func ParseAuthors(raw string) []string {
	raw = strings.ReplaceAll(raw, "\n", " ")

	segments := strings.Split(raw, " and ")
	authors := make([]string, len(segments))
	for i, seg := range segments {
		parts := strings.Split(seg, ",")
		var b strings.Builder
		for j := len(parts) - 1; j >= 0; j-- {
			b.WriteByte(' ')
			b.WriteString(parts[j])
		}
		authors[i] = strings.TrimSpace(b.String())
	}
	return authors
}

// ParsePages extracts a page range from a raw pages tag. The string is
// tokenized on non-digit runs (covers "123-145", "123--145", "12, 34"); the
// first two numeric tokens become From and To, anything beyond is ignored.
// Fewer than two tokens leaves the corresponding fields nil.
func ParsePages(raw string) PageRange {
	var pr PageRange
	start := -1
	assign := func(tok string) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return
		}
		switch {
		case pr.From == nil:
			pr.From = &n
		case pr.To == nil:
			pr.To = &n
		}
	}
	for i, c := range raw {
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			assign(raw[start:i])
			start = -1
		}
	}
	if start >= 0 {
		assign(raw[start:])
	}
	return pr
}

// ParseOptionalInt converts an optional numeric tag. Absent input and
// integer parse failure both yield nil; this is deliberate leniency, not
// error swallowing (volume and series are optional fields).
func ParseOptionalInt(raw string, ok bool) *int {
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// ParseYear resolves the publication year from a tag mapping. The date tag
// wins over year; only its portion before the first '-' is used, so
// ISO-style dates (2021-05-01) reduce to the year. Year is mandatory:
// neither tag present, or a non-numeric value, is an error.
func ParseYear(tags map[string]string) (int, error) {
	raw, ok := tags["date"]
	if ok {
		raw, _, _ = strings.Cut(raw, "-")
	} else {
		raw, ok = tags["year"]
		if !ok {
			return 0, fmt.Errorf("missing required field 'year' (no 'date' or 'year' tag)")
		}
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year: %q", raw)
	}
	return year, nil
}

// ResolveVenue picks the publication venue from a tag mapping. Precedence is
// journal, then journaltitle (both journals), then booktitle (a conference).
// An entry with none of the three has no usable venue, which is an error.
func ResolveVenue(tags map[string]string) (Venue, error) {
	if name, ok := tags["journal"]; ok {
		return Venue{Kind: VenueJournal, Name: name}, nil
	}
	if name, ok := tags["journaltitle"]; ok {
		return Venue{Kind: VenueJournal, Name: name}, nil
	}
	if name, ok := tags["booktitle"]; ok {
		return Venue{Kind: VenueConference, Name: name}, nil
	}
	return Venue{}, fmt.Errorf("missing venue (no 'journal', 'journaltitle', or 'booktitle' tag)")
}

// FromTags assembles a normalized Paper from one entry's tag mapping.
// Mandatory fields (author, title, url, venue, year) abort the whole record
// when missing; optional fields (pages, volume, series, doi, publisher,
// abstract) resolve to their absent representation instead. There is no
// partial record: the first failing field wins.
func FromTags(key string, tags map[string]string) (Paper, error) {
	rawAuthors, ok := tags["author"]
	if !ok {
		return Paper{}, fmt.Errorf("entry %q: missing required field 'author'", key)
	}

	title, ok := tags["title"]
	if !ok {
		return Paper{}, fmt.Errorf("entry %q: missing required field 'title'", key)
	}

	url, ok := tags["url"]
	if !ok {
		return Paper{}, fmt.Errorf("entry %q: missing required field 'url'", key)
	}

	venue, err := ResolveVenue(tags)
	if err != nil {
		return Paper{}, fmt.Errorf("entry %q: %w", key, err)
	}

	year, err := ParseYear(tags)
	if err != nil {
		return Paper{}, fmt.Errorf("entry %q: %w", key, err)
	}

	var pages PageRange
	if raw, ok := tags["pages"]; ok {
		pages = ParsePages(raw)
	}

	// Series falls back to the number tag, a common BibTeX aliasing.
	seriesRaw, seriesOK := tags["series"]
	if !seriesOK {
		seriesRaw, seriesOK = tags["number"]
	}
	volumeRaw, volumeOK := tags["volume"]

	return Paper{
		Key:       key,
		Authors:   ParseAuthors(rawAuthors),
		Pages:     pages,
		Volume:    ParseOptionalInt(volumeRaw, volumeOK),
		Series:    ParseOptionalInt(seriesRaw, seriesOK),
		Venue:     venue,
		Title:     title,
		Publisher: tags["publisher"],
		Year:      year,
		DOI:       tags["doi"],
		URL:       url,
		Abstract:  tags["abstract"],
	}, nil
}
