package bot

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const maxExamples = 3

const RecordTemplate = `<b>{{ .Record.TargetWord }}</b>
{{- with .Record.Pronunciations }} <i>{{ join . ", " }}</i>{{ end }}
{{- range $entry, $senses := .Record.Definitions }}

<u>{{ $entry }}</u>
{{ $senses.String }}
{{- end }}
{{- with examples .Record.Examples }}

<b>Exemples</b>:
{{- range . }}
• {{ . }}
{{- end }}
{{- end }}
{{- range $infinitive, $forms := .Record.Inflections }}

<b>{{ $infinitive }}</b>: {{ join $forms "; " }}
{{- end }}

<i>{{ .Source }}</i>`

var recordTemplate = template.Must(template.New("record").Funcs(template.FuncMap{
	"join": strings.Join,
	"examples": func(e dictionary.Examples) []string {
		all := e.All()
		if len(all) > maxExamples {
			return all[:maxExamples]
		}
		return all
	},
}).Parse(RecordTemplate))

// GetRecordMessageText executes template with record data
func GetRecordMessageText(record dictionary.Record, site dictionary.Site) string {
	buf := &bytes.Buffer{}
	data := map[string]interface{}{"Record": record, "Source": site.Title()}
	if err := recordTemplate.Execute(buf, data); err != nil {
		log.Error().Err(err).Str("word", record.TargetWord).Msg("failed to format record template")
	}
	return buf.String()
}
