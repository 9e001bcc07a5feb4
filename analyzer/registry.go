package analyzer

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// ErrUnknownProfile is returned when a profile name is not one of the
// standard profiles.
var ErrUnknownProfile = errors.New("unknown analysis profile")

// Registry maps field names to profiles. Fields without an entry are
// analyzed with the registry's default profile.
//
// A registry is built once at startup; after that it is read-only and may be
// shared between goroutines.
type Registry struct {
	fields *treemap.Map // field name -> *Profile
	deflt  *Profile
}

// NewRegistry creates an empty registry. A nil default profile is
// treated as EntityName.
func NewRegistry(deflt *Profile) *Registry {
	if deflt == nil {
		deflt = EntityName
	}
	return &Registry{
		fields: treemap.NewWithStringComparator(),
		deflt:  deflt,
	}
}

// Register sets the profile for a field, replacing any previous entry.
func (r *Registry) Register(field string, p *Profile) {
	r.fields.Put(field, p)
}

// Lookup returns the profile for a field.
func (r *Registry) Lookup(field string) *Profile {
	if p, found := r.fields.Get(field); found {
		return p.(*Profile)
	}
	return r.deflt
}

// Default returns the default profile of r.
func (r *Registry) Default() *Profile {
	return r.deflt
}

// Fields returns the names of all registered fields, sorted.
func (r *Registry) Fields() []string {
	fields := make([]string, 0, r.fields.Size())
	it := r.fields.Iterator()
	for it.Next() {
		fields = append(fields, it.Key().(string))
	}
	return fields
}

// Profiles returns the distinct profiles in use by r, including the default
// profile.
func (r *Registry) Profiles() []*Profile {
	seen := map[*Profile]bool{r.deflt: true}
	profiles := []*Profile{r.deflt}
	for _, v := range r.fields.Values() {
		if p := v.(*Profile); !seen[p] {
			seen[p] = true
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// NewRegistryFromMap creates a registry from a map of field names to profile
// names. An empty default profile name selects EntityName.
func NewRegistryFromMap(fields map[string]string, deflt string) (*Registry, error) {
	var dp *Profile
	if deflt != "" {
		p, ok := ProfileByName(deflt)
		if !ok {
			return nil, fmt.Errorf("default profile %q: %w", deflt, ErrUnknownProfile)
		}
		dp = p
	}
	r := NewRegistry(dp)
	for field, name := range fields {
		p, ok := ProfileByName(name)
		if !ok {
			return nil, fmt.Errorf("field %q: profile %q: %w", field, name, ErrUnknownProfile)
		}
		r.Register(field, p)
	}
	return r, nil
}

// standardFields lists the profiles for the fields of the MusicBrainz
// search indexes which do not use the default profile.
var standardFields = map[string]*Profile{
	"artist":       ArtistName,
	"sortname":     ArtistName,
	"alias":        ArtistName,
	"recording":    Title,
	"release":      Title,
	"releasegroup": Title,
	"work":         Title,
	"track":        Title,
	"country":      KeywordExact,
	"gender":       KeywordExact,
	"type":         KeywordExact,
	"status":       KeywordExact,
	"ended":        KeywordExact,
	"ipi":          KeywordExact,
	"isni":         KeywordExact,
	"isrc":         StripSpaces,
	"iswc":         StripSpacesAndSeparators,
	"catno":        StripSpacesAndSeparators,
	"barcode":      LeadingZero,
	"code":         LeadingZero,
	"tnum":         LeadingZeroes,
	"tracks":       LeadingZeroes,
	"mediums":      LeadingZeroes,
}

// StandardRegistry returns a new registry with the default field mapping of
// the MusicBrainz search indexes and EntityName as default profile.
func StandardRegistry() *Registry {
	r := NewRegistry(EntityName)
	for field, p := range standardFields {
		r.Register(field, p)
	}
	return r
}
