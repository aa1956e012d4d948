// Package reference defines the normalized record for a bibliography entry
// and the field normalizers that build it from raw BibTeX tags.
package reference

// VenueKind distinguishes the two publication venue variants.
type VenueKind int

const (
	VenueJournal VenueKind = iota
	VenueConference
)

// String returns the front-matter key name for the venue kind.
func (k VenueKind) String() string {
	if k == VenueConference {
		return "conference"
	}
	return "journal"
}

// Venue is the journal or conference a paper was published in.
type Venue struct {
	Kind VenueKind
	Name string
}

// PageRange holds the start and end page numbers. A nil field means the
// page was not supplied or not numeric.
type PageRange struct {
	From *int
	To   *int
}

// Paper is one fully normalized bibliography entry. It is constructed
// atomically from a single entry's tag mapping and never mutated.
type Paper struct {
	Key       string // Citation key, used for output file naming
	Authors   []string
	Pages     PageRange
	Volume    *int
	Series    *int
	Venue     Venue
	Title     string
	Publisher string // Empty when the tag is absent
	Year      int
	DOI       string // Empty when the tag is absent
	URL       string
	Abstract  string // Empty when the tag is absent
}
