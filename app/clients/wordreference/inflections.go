package wordreference

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rbhz/fr-dictionary/app/clients/markup"
)

const inflectionSeparator = "--------------"

// Inflections returns conjugation descriptions of the word keyed by infinitive.
//
// The inflections panel is a flat list of dl children: an element with a link
// names the infinitive, an element with a bold label names the inflected form,
// dd elements describe the conjugation and a bare separator text closes the
// infinitive group.
func (e *Extractor) Inflections() map[string][]string {
	result := make(map[string][]string)
	dl := e.doc.Find("div.inflectionsSection").First().Find("dl").First()
	if dl.Length() == 0 {
		return result
	}

	var infinitive, label string
	var conjugations []string
	commit := func() {
		if infinitive != "" && len(conjugations) > 0 {
			result[infinitive] = append([]string(nil), conjugations...)
		}
	}
	dl.Contents().Each(func(_ int, child *goquery.Selection) {
		if markup.IsText(child) {
			if strings.TrimSpace(child.Text()) == inflectionSeparator {
				commit()
				infinitive, label, conjugations = "", "", nil
			}
			return
		}
		if link := child.Find("a").First(); link.Length() > 0 {
			infinitive += strings.TrimSpace(link.Text())
		}
		if bold := child.Find("b").First(); bold.Length() > 0 {
			if text := markup.OwnText(bold); text != "" {
				label = text
			}
		} else if goquery.NodeName(child) == "dd" && label == e.word {
			conjugations = append(conjugations, strings.TrimSpace(child.Text()))
		}
		// trailing group may have no separator
		commit()
	})
	return result
}
