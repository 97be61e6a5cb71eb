// Package wordreference extracts French word data from WordReference lookup pages
// docs: https://www.wordreference.com/fren/
package wordreference

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/clients/markup"
	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const (
	audioVariable    = "var audioFiles"
	conjugationArrow = "⇒"
)

// translationTitles mark definition tables; the compound forms table has neither
var translationTitles = []string{"Principal Translations", "Additional Translations"}

// EntryGroup holds the table rows describing one headword and part of speech
type EntryGroup struct {
	ID   string
	Rows []*goquery.Selection
}

// Extractor reads a WordReference page for a single word
type Extractor struct {
	word   string
	doc    *goquery.Document
	head   *goquery.Selection
	groups []EntryGroup
}

// New creates Extractor for the parsed lookup page of word
func New(word string, doc *goquery.Document) (*Extractor, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document for %q", dictionary.ErrNotFound, word)
	}
	head := doc.Find("div#articleHead").First()
	if head.Length() == 0 {
		return nil, fmt.Errorf("%w: no article head for %q", dictionary.ErrNotFound, word)
	}
	return &Extractor{
		word:   word,
		doc:    doc,
		head:   head,
		groups: groupRows(translationRows(doc)),
	}, nil
}

// translationRows returns even/odd rows of the definition tables in document order
func translationRows(doc *goquery.Document) []*goquery.Selection {
	var rows []*goquery.Selection
	doc.Find("table.WRD").FilterFunction(func(_ int, table *goquery.Selection) bool {
		for _, title := range translationTitles {
			if table.Find(fmt.Sprintf("td[title=%q]", title)).Length() > 0 {
				return true
			}
		}
		return false
	}).Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("even") || tr.HasClass("odd") {
			rows = append(rows, tr)
		}
	})
	return rows
}

// groupRows attaches rows without id to the most recently seen row id
func groupRows(rows []*goquery.Selection) []EntryGroup {
	var groups []EntryGroup
	index := make(map[string]int)
	current := ""
	for _, row := range rows {
		if id, ok := row.Attr("id"); ok && id != "" {
			current = id
			if _, seen := index[id]; !seen {
				index[id] = len(groups)
				groups = append(groups, EntryGroup{ID: id})
			}
		}
		if current == "" {
			log.Debug().Msg("skipping wordreference row before first entry id")
			continue
		}
		group := &groups[index[current]]
		group.Rows = append(group.Rows, row)
	}
	return groups
}

// TargetWord returns looked up word
func (e *Extractor) TargetWord() string {
	return e.word
}

// EntryGroups returns definition rows grouped by entry id
func (e *Extractor) EntryGroups() []EntryGroup {
	return append([]EntryGroup(nil), e.groups...)
}

// Pronunciations returns the IPA string from the article head
func (e *Extractor) Pronunciations() []string {
	text := strings.TrimSpace(e.head.Find("span.pronWR").First().Text())
	if text == "" {
		return []string{}
	}
	return []string{text}
}

// Audio returns absolute audio URLs listed in the article head script
func (e *Extractor) Audio() []string {
	var audio []string
	e.head.Find("script").Each(func(_ int, script *goquery.Selection) {
		text := script.Text()
		if !strings.Contains(text, audioVariable) {
			return
		}
		files, err := parseArrayLiteral(text)
		if err != nil {
			log.Debug().Err(err).Str("word", e.word).Msg("failed to parse wordreference audio list")
			return
		}
		for _, file := range files {
			audio = append(audio, dictionary.AbsoluteURL(dictionary.WordReference.Origin(), file))
		}
	})
	return dictionary.Unique(audio)
}

// Definitions returns senses keyed by "headword (pos)" for entries matching the word.
// Inflection-only pages without own entries yield an empty map.
func (e *Extractor) Definitions() (map[string]dictionary.Senses, error) {
	defs := make(map[string]dictionary.Senses)
	for _, group := range e.groups {
		headword, pos, ok := groupHeader(group)
		if !ok || headword != e.word {
			continue
		}
		key := fmt.Sprintf("%s (%s)", headword, pos)
		senses := defs[key]
		for _, row := range group.Rows {
			if gloss := rowGloss(row); gloss != "" {
				senses = append(senses, gloss)
			}
		}
		defs[key] = senses
	}
	if len(defs) == 0 {
		if e.inflectionOnly() {
			return defs, nil
		}
		return nil, fmt.Errorf("%w: %q", dictionary.ErrNotFound, e.word)
	}
	for key, senses := range defs {
		defs[key] = dictionary.Unique(senses)
	}
	return defs, nil
}

// Examples returns example sentences of all entries
func (e *Extractor) Examples() dictionary.Examples {
	var examples []string
	for _, group := range e.groups {
		for _, row := range group.Rows {
			row.ChildrenFiltered("td.FrEx").Each(func(_ int, td *goquery.Selection) {
				examples = append(examples, strings.TrimSpace(td.Text()))
			})
		}
	}
	return dictionary.Examples{List: dictionary.Unique(examples)}
}

func (e *Extractor) inflectionOnly() bool {
	return e.doc.Find("div.otherWRD").Length() > 0
}

// groupHeader reads headword and part of speech from the first row of the group
func groupHeader(group EntryGroup) (headword string, pos string, ok bool) {
	if len(group.Rows) == 0 {
		return "", "", false
	}
	cell := group.Rows[0].ChildrenFiltered("td.FrWrd").First()
	strong, em := cell.Find("strong").First(), cell.Find("em").First()
	if strong.Length() == 0 || em.Length() == 0 {
		log.Debug().Str("group", group.ID).Msg("wordreference entry without headword")
		return "", "", false
	}
	headword = strings.TrimSpace(strings.ReplaceAll(strong.Text(), conjugationArrow, ""))
	pos = markup.OwnText(em)
	if pos == "" {
		pos = strings.TrimSpace(em.Text())
	}
	return headword, pos, true
}

// rowGloss builds "(sense) translation" from the row cells
func rowGloss(row *goquery.Selection) string {
	cells := row.ChildrenFiltered("td")
	if cells.Length() < 3 {
		return ""
	}
	gloss := markup.FirstText(cells.Eq(2))
	if idx := strings.Index(gloss, conjugationArrow); idx >= 0 {
		gloss = strings.TrimSpace(gloss[:idx])
	}
	if gloss == "" {
		return ""
	}
	sense := cells.Eq(1).Find("span.dsense").First()
	if sense.Length() == 0 {
		return gloss
	}
	label := strings.Trim(strings.TrimSpace(sense.Text()), "()")
	return fmt.Sprintf("(%s) %s", label, gloss)
}
