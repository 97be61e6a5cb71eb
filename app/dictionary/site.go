package dictionary

import (
	"errors"
	"net/url"
	"strings"
)

// Site identifies a dictionary website words are looked up on
type Site string

// supported sites
const (
	WordReference Site = "wordreference"
	Wiktionnaire  Site = "wiktionnaire"

	DefaultSite = WordReference
)

// ErrUnknownSite is returned for site names that are not supported
var ErrUnknownSite = errors.New("unknown site")

type siteInfo struct {
	title  string
	origin string
	path   string
}

var sites = map[Site]siteInfo{
	WordReference: {title: "WordReference", origin: "https://www.wordreference.com", path: "/fren/"},
	Wiktionnaire:  {title: "Wiktionnaire", origin: "https://fr.wiktionary.org", path: "/wiki/"},
}

var siteAliases = map[string]Site{
	"wordreference": WordReference,
	"wr":            WordReference,
	"wiktionnaire":  Wiktionnaire,
	"wiktionary":    Wiktionnaire,
	"wiki":          Wiktionnaire,
}

// Sites returns all supported sites
func Sites() []Site {
	return []Site{WordReference, Wiktionnaire}
}

// ParseSite resolves site name or alias
func ParseSite(name string) (Site, error) {
	site, ok := siteAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", ErrUnknownSite
	}
	return site, nil
}

// Valid reports whether site is supported
func (s Site) Valid() bool {
	_, ok := sites[s]
	return ok
}

// Title returns human readable site name
func (s Site) Title() string {
	return sites[s].title
}

// Origin returns scheme and host of the site
func (s Site) Origin() string {
	return sites[s].origin
}

// URL returns lookup page URL for the word
func (s Site) URL(word string) string {
	info, ok := sites[s]
	if !ok {
		return ""
	}
	return info.origin + info.path + url.PathEscape(word)
}
