// Package wiktionnaire extracts French word data from fr.wiktionary.org articles
package wiktionnaire

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/clients/markup"
	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const (
	contentSelector  = "div.mw-content-ltr.mw-parser-output"
	pronunciationRef = "Annexe:Prononciation"
	ipaDecoration    = `\`
	nbsp             = "\u00a0"
)

// genderTags maps gender labels of the form line to entry tags
var genderTags = map[string]string{
	"féminin":                        "(nf)",
	"masculin":                       "(nm)",
	"masculin et féminin identiques": "(nmf)",
}

// Extractor reads a Wiktionnaire article for a single word
type Extractor struct {
	word    string
	doc     *goquery.Document
	content *goquery.Selection
	lines   *goquery.Selection
}

// New creates Extractor for the parsed article of word
func New(word string, doc *goquery.Document) (*Extractor, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document for %q", dictionary.ErrNotFound, word)
	}
	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("%w: no article content for %q", dictionary.ErrNotFound, word)
	}
	return &Extractor{
		word:    word,
		doc:     doc,
		content: content,
		lines:   content.Find("p").FilterFunction(isFormLine),
	}, nil
}

// isFormLine matches the paragraph holding pronunciation and gender of an entry:
// a link to the pronunciation appendix and the form span, at any depth
func isFormLine(_ int, p *goquery.Selection) bool {
	hasForm := p.Find("span.ligne-de-forme").Length() > 0
	hasRef := p.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		title, _ := a.Attr("title")
		return strings.Contains(title, pronunciationRef) || strings.Contains(href, pronunciationRef)
	}).Length() > 0
	return hasForm && hasRef
}

// TargetWord returns looked up word
func (e *Extractor) TargetWord() string {
	return e.word
}

// Genders returns distinct gender tags of the article entries in document order
func (e *Extractor) Genders() []string {
	var genders []string
	e.lines.Each(func(_ int, p *goquery.Selection) {
		form := p.Find("span.ligne-de-forme").First()
		label := strings.TrimSpace(form.Find("i").First().Text())
		if label == "" {
			label = strings.TrimSpace(form.Text())
		}
		tag, ok := genderTags[label]
		if !ok {
			log.Debug().Str("word", e.word).Str("label", label).Msg("unknown wiktionnaire gender")
			return
		}
		genders = append(genders, tag)
	})
	return dictionary.Unique(genders)
}

// Pronunciations returns distinct IPA strings of the form lines
func (e *Extractor) Pronunciations() []string {
	var ipa []string
	e.lines.Find("span.API").Each(func(_ int, span *goquery.Selection) {
		ipa = append(ipa, strings.Trim(strings.TrimSpace(span.Text()), ipaDecoration))
	})
	return dictionary.Unique(ipa)
}

// Inflections are not provided by Wiktionnaire
func (e *Extractor) Inflections() map[string][]string {
	return nil
}

// Audio returns absolute URLs of the audio players on the page
func (e *Extractor) Audio() []string {
	var audio []string
	e.doc.Find("audio.mw-file-element").Each(func(_ int, el *goquery.Selection) {
		if resource, ok := el.Attr("resource"); ok && resource != "" {
			audio = append(audio, dictionary.AbsoluteURL(dictionary.Wiktionnaire.Origin(), resource))
		}
	})
	return dictionary.Unique(audio)
}

// Definitions returns definitions keyed by "word (gender)".
// Articles without a recognised gender line produce an empty map.
func (e *Extractor) Definitions() (map[string]dictionary.Senses, error) {
	defs := make(map[string]dictionary.Senses)
	e.eachEntry(func(key string, items *goquery.Selection) {
		senses := dictionary.Senses{}
		items.Each(func(_ int, li *goquery.Selection) {
			if text := itemText(li, false); text != "" {
				senses = append(senses, text)
			}
		})
		defs[key] = dictionary.Unique(senses)
	})
	return defs, nil
}

// Examples returns example sentences and cross references grouped by entry key
func (e *Extractor) Examples() dictionary.Examples {
	examples := make(map[string][]string)
	e.eachEntry(func(key string, items *goquery.Selection) {
		list := []string{}
		items.Each(func(_ int, li *goquery.Selection) {
			if text := itemText(li, true); text != "" {
				list = append(list, text)
			}
		})
		examples[key] = list
	})
	return dictionary.Examples{ByEntry: examples}
}

// eachEntry pairs the leading top-level ordered lists with the detected genders
func (e *Extractor) eachEntry(fn func(key string, items *goquery.Selection)) {
	genders := e.Genders()
	lists := e.content.Find("ol").Not("ol ol, ul ol")
	for idx, gender := range genders {
		if idx >= lists.Length() {
			log.Debug().Str("word", e.word).Str("gender", gender).Msg("wiktionnaire entry without definition list")
			break
		}
		fn(fmt.Sprintf("%s %s", e.word, gender), lists.Eq(idx).ChildrenFiltered("li"))
	}
}

// itemText concatenates list item children. Notes are the span and ul children
// holding examples and references; definitions are everything else.
func itemText(li *goquery.Selection, notes bool) string {
	var b strings.Builder
	li.Contents().Each(func(_ int, child *goquery.Selection) {
		isNote := !markup.IsText(child) && (goquery.NodeName(child) == "span" || goquery.NodeName(child) == "ul")
		if isNote == notes {
			b.WriteString(child.Text())
		}
	})
	if notes {
		return strings.TrimSpace(strings.ReplaceAll(b.String(), nbsp, ""))
	}
	return strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
}
