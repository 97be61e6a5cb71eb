// Package lookup fetches a word page and assembles its dictionary record
package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"github.com/rbhz/fr-dictionary/app/clients/wiktionnaire"
	"github.com/rbhz/fr-dictionary/app/clients/wordreference"
	"github.com/rbhz/fr-dictionary/app/dictionary"
)

// ErrEmptyWord is returned for blank lookups
var ErrEmptyWord = errors.New("empty word")

// Fetcher downloads and parses a lookup page
type Fetcher interface {
	Get(ctx context.Context, site dictionary.Site, word string) (*goquery.Document, error)
}

// Lookuper returns the record of a word on a site
type Lookuper interface {
	Lookup(ctx context.Context, site dictionary.Site, word string) (dictionary.Record, error)
}

// Service looks words up on dictionary sites
type Service struct {
	fetcher Fetcher
}

// NewService creates lookup service
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Lookup fetches the page of word on site and extracts its record
func (s *Service) Lookup(ctx context.Context, site dictionary.Site, word string) (dictionary.Record, error) {
	word = Normalize(word)
	if word == "" {
		return dictionary.Record{}, ErrEmptyWord
	}
	if !site.Valid() {
		return dictionary.Record{}, errors.Wrapf(dictionary.ErrUnknownSite, "lookup %q", site)
	}
	doc, err := s.fetcher.Get(ctx, site, word)
	if err != nil {
		return dictionary.Record{}, errors.Wrapf(err, "fetch %s page for %q", site, word)
	}
	source, err := NewSource(site, word, doc)
	if err != nil {
		return dictionary.Record{}, err
	}
	record, err := dictionary.Assemble(source)
	if err != nil {
		return dictionary.Record{}, errors.Wrapf(err, "extract %q from %s", word, site)
	}
	log.Debug().
		Str("site", string(site)).
		Str("word", word).
		Int("entries", len(record.Definitions)).
		Msg("word looked up")
	return record, nil
}

// NewSource creates the extractor of site for a parsed page
func NewSource(site dictionary.Site, word string, doc *goquery.Document) (dictionary.WordSource, error) {
	switch site {
	case dictionary.WordReference:
		extractor, err := wordreference.New(word, doc)
		if err != nil {
			return nil, err
		}
		return extractor, nil
	case dictionary.Wiktionnaire:
		extractor, err := wiktionnaire.New(word, doc)
		if err != nil {
			return nil, err
		}
		return extractor, nil
	}
	return nil, fmt.Errorf("%w: %q", dictionary.ErrUnknownSite, site)
}

// Normalize trims the word and converts it to the composed unicode form used by the sites
func Normalize(word string) string {
	return norm.NFC.String(strings.TrimSpace(word))
}
