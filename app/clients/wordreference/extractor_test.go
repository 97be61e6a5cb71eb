package wordreference

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const pommePage = `<html><head><title>pomme - WordReference</title></head><body>
<div id="articleHead">
	<h1 class="headerWord">pomme</h1>
	<span class="pronWR">/pɔm/</span>
	<script>var audioFiles = ['/audio/fr/France/fr014367-1.mp3','/audio/fr/Quebec/fr014367-2.mp3','/audio/fr/France/fr014367-1.mp3'];</script>
	<script>var other = [1, 2];</script>
</div>
<table class="WRD">
	<tr class="wrtopsection"><td colspan="3" title="Principal Translations">Principal Translations</td></tr>
	<tr class="langHeader"><td class="FrWrd">Français</td><td></td><td class="ToWrd">Anglais</td></tr>
	<tr class="even" id="fren:1">
		<td class="FrWrd"><strong>pomme</strong> <em class="tooltip POS2">nf<span><i>nom féminin</i>: s'utilise avec les articles</span></em></td>
		<td> <span class="dsense">(fruit)</span></td>
		<td class="ToWrd">apple <em class="tooltip POS2">n<span>noun</span></em></td>
	</tr>
	<tr class="even"><td>&nbsp;</td><td colspan="2" class="FrEx">Je mange une pomme.</td></tr>
	<tr class="even"><td>&nbsp;</td><td> </td><td class="ToWrd">apple tree ⇒ <em>n</em></td></tr>
	<tr class="odd" id="fren:2">
		<td class="FrWrd"><strong>pomme</strong> <em class="POS2">nf</em></td>
		<td><span class="dsense">(familier : tête)</span></td>
		<td class="ToWrd">nut <em>n</em></td>
	</tr>
	<tr class="odd"><td>&nbsp;</td><td colspan="2" class="FrEx">Il a pris un coup sur la pomme.</td></tr>
	<tr class="odd"><td>&nbsp;</td><td colspan="2" class="FrEx">Je mange une pomme.</td></tr>
	<tr class="odd"><td></td><td><span class="dsense">(familier : tête)</span></td><td class="ToWrd">nut</td></tr>
	<tr class="even" id="fren:3">
		<td class="FrWrd"><strong>pommé</strong> <em>adj</em></td><td></td><td class="ToWrd">rounded</td>
	</tr>
</table>
<table class="WRD">
	<tr class="wrtopsection"><td colspan="3" title="Compound Forms">Formes composées</td></tr>
	<tr class="even" id="fren:100"><td class="FrWrd"><strong>pomme</strong> <em>nf</em></td><td></td><td class="ToWrd">compound</td></tr>
</table>
</body></html>`

const vaisPage = `<html><body>
<div id="articleHead"><h1 class="headerWord">vais</h1></div>
<div class="otherWRD">'vais' est une forme de 'aller'</div>
<div class="inflectionsSection"><dl><dt class="ListInfl"><b>vas</b> est une forme de <a href="/conj/FrVerbs.aspx?v=aller">aller</a> :</dt><dd class="ListInfl">présent, 2ᵉ pers. sing.</dd>--------------<dt class="ListInfl"><b>vais<span>?</span></b> est une forme de <a href="/conj/FrVerbs.aspx?v=aller">aller</a> :</dt><dd class="ListInfl">présent, 1ʳᵉ pers. sing.</dd></dl></div>
</body></html>`

func parse(t *testing.T, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func newExtractor(t *testing.T, word string, page string) *Extractor {
	e, err := New(word, parse(t, page))
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	t.Run("missing article head", func(t *testing.T) {
		_, err := New("pomme", parse(t, `<html><body><p>No translation found</p></body></html>`))
		assert.ErrorIs(t, err, dictionary.ErrNotFound)
	})
	t.Run("nil document", func(t *testing.T) {
		_, err := New("pomme", nil)
		assert.ErrorIs(t, err, dictionary.ErrNotFound)
	})
	t.Run("no tables", func(t *testing.T) {
		e := newExtractor(t, "pomme", `<div id="articleHead"></div>`)
		assert.Empty(t, e.EntryGroups())
	})
}

func TestEntryGroups(t *testing.T) {
	e := newExtractor(t, "pomme", pommePage)
	groups := e.EntryGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, "fren:1", groups[0].ID)
	assert.Len(t, groups[0].Rows, 3)
	assert.Equal(t, "fren:2", groups[1].ID)
	assert.Len(t, groups[1].Rows, 4)
	assert.Equal(t, "fren:3", groups[2].ID)
	assert.Len(t, groups[2].Rows, 1)
}

func TestGroupRows(t *testing.T) {
	doc := parse(t, `<table>
		<tr class="even"><td>orphan</td></tr>
		<tr class="even" id="a"><td>a1</td></tr>
		<tr class="even"><td>a2</td></tr>
		<tr class="odd" id="b"><td>b1</td></tr>
		<tr class="even" id="a"><td>a3</td></tr>
		<tr class="even"><td>a4</td></tr>
	</table>`)
	var rows []*goquery.Selection
	doc.Find("tr").Each(func(_ int, s *goquery.Selection) { rows = append(rows, s) })

	groups := groupRows(rows)
	require.Len(t, groups, 2)
	texts := func(g EntryGroup) []string {
		var res []string
		for _, r := range g.Rows {
			res = append(res, r.Text())
		}
		return res
	}
	assert.Equal(t, "a", groups[0].ID)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, texts(groups[0]))
	assert.Equal(t, "b", groups[1].ID)
	assert.Equal(t, []string{"b1"}, texts(groups[1]))
}

func TestDefinitions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e := newExtractor(t, "pomme", pommePage)
		defs, err := e.Definitions()
		require.NoError(t, err)
		expected := map[string]dictionary.Senses{
			"pomme (nf)": {"(fruit) apple", "apple tree", "(familier : tête) nut"},
		}
		assert.Equal(t, expected, defs)
		assert.Equal(t, "1. (fruit) apple; 2. apple tree; 3. (familier : tête) nut", defs["pomme (nf)"].String())
	})
	t.Run("single entry", func(t *testing.T) {
		page := `<div id="articleHead"></div><table class="WRD">
			<tr><td title="Principal Translations">Principal Translations</td></tr>
			<tr class="even" id="fren:1"><td class="FrWrd"><strong>pomme</strong> <em>nf</em></td><td></td><td class="ToWrd">apple</td></tr>
		</table>`
		defs, err := newExtractor(t, "pomme", page).Definitions()
		require.NoError(t, err)
		assert.Equal(t, map[string]dictionary.Senses{"pomme (nf)": {"apple"}}, defs)
		assert.True(t, strings.HasPrefix(defs["pomme (nf)"].String(), "1. "))
		assert.Equal(t, "1. apple", defs["pomme (nf)"].String())
	})
	t.Run("verb headword with conjugation arrow", func(t *testing.T) {
		page := `<div id="articleHead"></div><table class="WRD">
			<tr><td title="Additional Translations">Additional Translations</td></tr>
			<tr class="odd" id="fren:9"><td class="FrWrd"><strong>aller<a title="conjugate aller">⇒</a></strong> <em>vi</em></td><td></td><td class="ToWrd">go ⇒ </td></tr>
		</table>`
		defs, err := newExtractor(t, "aller", page).Definitions()
		require.NoError(t, err)
		assert.Equal(t, map[string]dictionary.Senses{"aller (vi)": {"go"}}, defs)
	})
	t.Run("not found", func(t *testing.T) {
		defs, err := newExtractor(t, "pom", pommePage).Definitions()
		assert.ErrorIs(t, err, dictionary.ErrNotFound)
		assert.Nil(t, defs)
	})
	t.Run("accent sensitive", func(t *testing.T) {
		defs, err := newExtractor(t, "pommé", pommePage).Definitions()
		require.NoError(t, err)
		assert.Equal(t, map[string]dictionary.Senses{"pommé (adj)": {"rounded"}}, defs)
	})
	t.Run("inflection only", func(t *testing.T) {
		defs, err := newExtractor(t, "vais", vaisPage).Definitions()
		require.NoError(t, err)
		assert.Empty(t, defs)
	})
	t.Run("idempotent", func(t *testing.T) {
		e := newExtractor(t, "pomme", pommePage)
		first, err := e.Definitions()
		require.NoError(t, err)
		second, err := e.Definitions()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestExamples(t *testing.T) {
	e := newExtractor(t, "pomme", pommePage)
	assert.Equal(t, dictionary.Examples{List: []string{
		"Je mange une pomme.",
		"Il a pris un coup sur la pomme.",
	}}, e.Examples())
	assert.Equal(t, e.Examples(), e.Examples())
}

func TestPronunciations(t *testing.T) {
	assert.Equal(t, []string{"/pɔm/"}, newExtractor(t, "pomme", pommePage).Pronunciations())
	assert.Empty(t, newExtractor(t, "vais", vaisPage).Pronunciations())
}

func TestAudio(t *testing.T) {
	audio := newExtractor(t, "pomme", pommePage).Audio()
	assert.Equal(t, []string{
		"https://www.wordreference.com/audio/fr/France/fr014367-1.mp3",
		"https://www.wordreference.com/audio/fr/Quebec/fr014367-2.mp3",
	}, audio)
	for _, url := range audio {
		assert.True(t, strings.HasPrefix(url, dictionary.WordReference.Origin()))
	}
	assert.Empty(t, newExtractor(t, "vais", vaisPage).Audio())
}

func TestInflections(t *testing.T) {
	t.Run("matching label", func(t *testing.T) {
		e := newExtractor(t, "vais", vaisPage)
		assert.Equal(t, map[string][]string{"aller": {"présent, 1ʳᵉ pers. sing."}}, e.Inflections())
		assert.Equal(t, e.Inflections(), e.Inflections())
	})
	t.Run("other label", func(t *testing.T) {
		e := newExtractor(t, "va", vaisPage)
		assert.Empty(t, e.Inflections())
	})
	t.Run("several conjugations", func(t *testing.T) {
		page := `<div id="articleHead"></div><div class="inflectionsSection"><dl><dt><b>suis</b> <a href="/conj/FrVerbs.aspx?v=être">être</a></dt><dd>présent, 1ʳᵉ pers. sing.</dd>--------------<dt><b>suis</b> <a href="/conj/FrVerbs.aspx?v=suivre">suivre</a></dt><dd>présent, 1ʳᵉ pers. sing.</dd><dd>présent, 2ᵉ pers. sing.</dd><dd>impératif, 2ᵉ pers. sing.</dd>--------------</dl></div>`
		e := newExtractor(t, "suis", page)
		assert.Equal(t, map[string][]string{
			"être":   {"présent, 1ʳᵉ pers. sing."},
			"suivre": {"présent, 1ʳᵉ pers. sing.", "présent, 2ᵉ pers. sing.", "impératif, 2ᵉ pers. sing."},
		}, e.Inflections())
	})
	t.Run("no panel", func(t *testing.T) {
		assert.Empty(t, newExtractor(t, "pomme", pommePage).Inflections())
	})
}

func TestAssemble(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		record, err := dictionary.Assemble(newExtractor(t, "pomme", pommePage))
		require.NoError(t, err)
		assert.Equal(t, "pomme", record.TargetWord)
		assert.Len(t, record.Definitions, 1)
		assert.Equal(t, []string{"/pɔm/"}, record.Pronunciations)
		assert.Empty(t, record.Inflections)
		assert.Len(t, record.Examples.List, 2)
		assert.Len(t, record.Audio, 2)

		data, err := json.Marshal(record)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"inflections":{}`)
	})
	t.Run("not found", func(t *testing.T) {
		_, err := dictionary.Assemble(newExtractor(t, "pom", pommePage))
		assert.ErrorIs(t, err, dictionary.ErrNotFound)
	})
}
