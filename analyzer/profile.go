package analyzer

import (
	"sort"

	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/mbsearch/charmap"
	"github.com/npillmayer/mbsearch/filter"
)

// Profile names.
const (
	EntityNameProfile               = "entity-name"
	ArtistNameProfile               = "artist-name"
	TitleProfile                    = "title"
	KeywordExactProfile             = "keyword-exact"
	StripSpacesProfile              = "strip-spaces"
	StripSpacesAndSeparatorsProfile = "strip-spaces-and-separators"
	LeadingZeroProfile              = "leading-zero"
	LeadingZeroesProfile            = "leading-zeroes"
)

// FilterFactory creates a new instance of a filter.
type FilterFactory func() mbsearch.Filter

// Profile is a named, fixed configuration of an analysis pipeline: a
// character substitution table, a tokenizer and an ordered list of filters.
// Profiles are immutable and shared; every Analyzer creates its own
// instances of the pipeline steps.
type Profile struct {
	Name    string
	Table   *charmap.Table  // substitutions before tokenization, may be nil
	Keyword bool            // use a keyword tokenizer
	Filters []FilterFactory // in pipeline order
}

func scriptFilter() mbsearch.Filter    { return filter.NewScriptFilter() }
func typeFilter() mbsearch.Filter      { return filter.NewTypeFilter() }
func wordSplitter() mbsearch.Filter    { return filter.NewWordSplitter() }
func bigramFilter() mbsearch.Filter    { return filter.NewBigramFilter() }
func diacriticFilter() mbsearch.Filter { return filter.NewDiacriticFilter() }
func caseFoldFilter() mbsearch.Filter  { return filter.NewCaseFoldFilter() }
func lowercase() mbsearch.Filter       { return filter.NewLowercase() }
func stripZero() mbsearch.Filter       { return filter.NewZeroesFilter(false) }
func stripZeroes() mbsearch.Filter     { return filter.NewZeroesFilter(true) }

var nameTable = charmap.Merge(charmap.Ampersand, charmap.CharEquivalents, charmap.Hebrew)

// Standard profiles.
var (
	// EntityName is the general profile for names of entities.
	EntityName = &Profile{
		Name:  EntityNameProfile,
		Table: nameTable,
		Filters: []FilterFactory{scriptFilter, typeFilter, wordSplitter,
			diacriticFilter, caseFoldFilter},
	}
	// ArtistName analyzes artist names and sort names.
	ArtistName = &Profile{
		Name:    ArtistNameProfile,
		Table:   nameTable,
		Filters: EntityName.Filters,
	}
	// Title analyzes titles of releases, recordings and works. Runs of Han
	// characters are indexed as bigrams.
	Title = &Profile{
		Name:  TitleProfile,
		Table: charmap.Merge(nameTable, charmap.TitleNumbers),
		Filters: []FilterFactory{scriptFilter, typeFilter, wordSplitter,
			bigramFilter, diacriticFilter, caseFoldFilter},
	}
	// KeywordExact analyzes the complete value as a single, lower-cased term.
	KeywordExact = &Profile{
		Name:    KeywordExactProfile,
		Keyword: true,
		Filters: []FilterFactory{lowercase},
	}
	// StripSpaces removes blanks, then analyzes like KeywordExact.
	StripSpaces = &Profile{
		Name:    StripSpacesProfile,
		Table:   charmap.Spaces,
		Keyword: true,
		Filters: []FilterFactory{lowercase},
	}
	// StripSpacesAndSeparators removes blanks and separators, then analyzes
	// like KeywordExact.
	StripSpacesAndSeparators = &Profile{
		Name:    StripSpacesAndSeparatorsProfile,
		Table:   charmap.Merge(charmap.Spaces, charmap.Separators),
		Keyword: true,
		Filters: []FilterFactory{lowercase},
	}
	// LeadingZero strips a single leading zero of a keyword.
	LeadingZero = &Profile{
		Name:    LeadingZeroProfile,
		Keyword: true,
		Filters: []FilterFactory{stripZero},
	}
	// LeadingZeroes strips all leading zeroes of a keyword.
	LeadingZeroes = &Profile{
		Name:    LeadingZeroesProfile,
		Keyword: true,
		Filters: []FilterFactory{stripZeroes},
	}
)

var profiles = map[string]*Profile{}

func init() {
	for _, p := range []*Profile{EntityName, ArtistName, Title, KeywordExact, StripSpaces,
		StripSpacesAndSeparators, LeadingZero, LeadingZeroes} {
		profiles[p.Name] = p
	}
}

// ProfileByName returns a standard profile.
func ProfileByName(name string) (*Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames returns the names of all standard profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
