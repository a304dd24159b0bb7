// Package profiles holds the read-only per-country mortgage rule tables.
package profiles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// DefaultCountry is the profile used when a requested country is unknown
// and the caller allows falling back.
const DefaultCountry = models.Spain

// ErrUnsupportedCountry is returned when no profile exists for a country
var ErrUnsupportedCountry = errors.New("unsupported country")

// Store is an immutable lookup table of country profiles
type Store struct {
	profiles map[models.CountryCode]models.CountryProfile
	aliases  map[string]models.CountryCode
	fallback models.CountryCode
}

// NewStore builds a store from the given profiles. The fallback country
// must be one of them.
func NewStore(fallback models.CountryCode, list ...models.CountryProfile) (*Store, error) {
	s := &Store{
		profiles: make(map[models.CountryCode]models.CountryProfile, len(list)),
		aliases:  make(map[string]models.CountryCode, len(list)),
		fallback: fallback,
	}
	for _, p := range list {
		if p.Code == "" {
			return nil, fmt.Errorf("profile %q has no country code", p.Name)
		}
		if _, dup := s.profiles[p.Code]; dup {
			return nil, fmt.Errorf("duplicate profile for %s", p.Code)
		}
		s.profiles[p.Code] = p
		s.aliases[normalizeKey(p.Name)] = p.Code
	}
	if _, ok := s.profiles[fallback]; !ok {
		return nil, fmt.Errorf("fallback country %s has no profile", fallback)
	}
	return s, nil
}

// Default returns a store with every built-in country
func Default() *Store {
	s, err := NewStore(DefaultCountry, builtin()...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the profile of a country code or name
func (s *Store) Lookup(country string) (models.CountryProfile, bool) {
	key := normalizeKey(country)
	if code, ok := s.aliases[key]; ok {
		return s.profiles[code], true
	}
	p, ok := s.profiles[models.CountryCode(strings.ToUpper(key))]
	return p, ok
}

// Resolve returns the profile of a country. When the country is unknown and
// allowFallback is set, the default profile is returned with fellBack true.
func (s *Store) Resolve(country string, allowFallback bool) (models.CountryProfile, bool, error) {
	if p, ok := s.Lookup(country); ok {
		return p, false, nil
	}
	if !allowFallback {
		return models.CountryProfile{}, false, fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}
	return s.profiles[s.fallback], true, nil
}

// Codes returns the supported country codes in lexical order
func (s *Store) Codes() []models.CountryCode {
	codes := make([]models.CountryCode, 0, len(s.profiles))
	for c := range s.profiles {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// All returns every profile ordered by country code
func (s *Store) All() []models.CountryProfile {
	codes := s.Codes()
	out := make([]models.CountryProfile, 0, len(codes))
	for _, c := range codes {
		out = append(out, s.profiles[c])
	}
	return out
}

var accentReplacer = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")

func normalizeKey(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
