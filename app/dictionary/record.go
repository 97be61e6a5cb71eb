// Package dictionary defines the word record produced by dictionary sources
// and the contract every source implements.
package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a page or its entry region does not exist for a word
var ErrNotFound = errors.New("definition not found")

// WordSource is implemented by per-site extractors
type WordSource interface {
	TargetWord() string
	Pronunciations() []string
	Inflections() map[string][]string
	Audio() []string
	Definitions() (map[string]Senses, error)
	Examples() Examples
}

// Record holds everything extracted for a single word
type Record struct {
	TargetWord     string              `json:"target_word"`
	Definitions    map[string]Senses   `json:"definitions"`
	Pronunciations []string            `json:"pronunciations"`
	Inflections    map[string][]string `json:"inflections"`
	Examples       Examples            `json:"examples"`
	Audio          []string            `json:"audio"`
}

// Assemble collects all source data into a record
func Assemble(src WordSource) (Record, error) {
	definitions, err := src.Definitions()
	if err != nil {
		return Record{}, err
	}
	return Record{
		TargetWord:     src.TargetWord(),
		Definitions:    definitions,
		Pronunciations: src.Pronunciations(),
		Inflections:    src.Inflections(),
		Examples:       src.Examples(),
		Audio:          src.Audio(),
	}, nil
}

// MarshalJSON omits inflections only for sources that do not provide them (nil map)
func (r Record) MarshalJSON() ([]byte, error) {
	out := struct {
		TargetWord     string               `json:"target_word"`
		Definitions    map[string]Senses    `json:"definitions"`
		Pronunciations []string             `json:"pronunciations"`
		Inflections    *map[string][]string `json:"inflections,omitempty"`
		Examples       Examples             `json:"examples"`
		Audio          []string             `json:"audio"`
	}{
		TargetWord:     r.TargetWord,
		Definitions:    r.Definitions,
		Pronunciations: r.Pronunciations,
		Examples:       r.Examples,
		Audio:          r.Audio,
	}
	if r.Inflections != nil {
		out.Inflections = &r.Inflections
	}
	return json.Marshal(out)
}

// Senses is an ordered list of meanings for one entry
type Senses []string

// String enumerates senses: "1. first; 2. second"
func (s Senses) String() string {
	parts := make([]string, 0, len(s))
	for idx, sense := range s {
		parts = append(parts, fmt.Sprintf("%d. %s", idx+1, sense))
	}
	return strings.Join(parts, "; ")
}

// Examples holds example sentences either as a flat list or grouped by entry key
type Examples struct {
	List    []string
	ByEntry map[string][]string
}

// All returns every example, grouped ones ordered by entry key
func (e Examples) All() []string {
	if e.ByEntry == nil {
		return e.List
	}
	keys := make([]string, 0, len(e.ByEntry))
	for key := range e.ByEntry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var all []string
	for _, key := range keys {
		all = append(all, e.ByEntry[key]...)
	}
	return all
}

// MarshalJSON encodes grouped examples as an object and flat ones as an array
func (e Examples) MarshalJSON() ([]byte, error) {
	if e.ByEntry != nil {
		return json.Marshal(e.ByEntry)
	}
	if e.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.List)
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON
func (e *Examples) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*e = Examples{}
	if bytes.HasPrefix(data, []byte("{")) {
		return json.Unmarshal(data, &e.ByEntry)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, &e.List)
}
