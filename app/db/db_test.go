package db

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbhz/fr-dictionary/app/dictionary"
)

func ptrStr(s string) *string {
	return &s
}

func getRecord(word string) dictionary.Record {
	return dictionary.Record{
		TargetWord:     word,
		Definitions:    map[string]dictionary.Senses{word + " (nf)": {"apple"}},
		Pronunciations: []string{"/pɔm/"},
		Examples:       dictionary.Examples{List: []string{"Je mange une " + word + "."}},
		Audio:          []string{"https://www.wordreference.com/audio/" + word + ".mp3"},
	}
}

func getUserWord(user UserID, word string, created time.Time) UserWord {
	return UserWord{
		ID:      "id-" + word,
		User:    user,
		Site:    dictionary.WordReference,
		Word:    word,
		Record:  getRecord(word),
		Created: created,
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	decoded, err := base64.RawURLEncoding.DecodeString(id)
	require.NoError(t, err)
	assert.Len(t, decoded, 16)
	assert.NotEqual(t, id, GenerateID())
}

func TestUserConfigSite(t *testing.T) {
	assert.Equal(t, dictionary.DefaultSite, UserConfig{}.Site())
	assert.Equal(t, dictionary.Wiktionnaire, UserConfig{Source: ptrStr("wiktionnaire")}.Site())
	assert.Equal(t, dictionary.DefaultSite, UserConfig{Source: ptrStr("larousse")}.Site())
}

func TestNewUserWord(t *testing.T) {
	record := getRecord("pomme")
	word := NewUserWord(UserID(1), dictionary.Wiktionnaire, record)
	assert.NotEmpty(t, word.ID)
	assert.Equal(t, UserID(1), word.User)
	assert.Equal(t, "pomme", word.Word)
	assert.Equal(t, record, word.Record)
	assert.Equal(t, "wiktionnaire:pomme", word.Key())
	assert.WithinDuration(t, time.Now(), word.Created, time.Minute)
}

func TestSortUserWords(t *testing.T) {
	created := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	late := getUserWord(1, "arbre", created.Add(time.Hour))
	early := getUserWord(1, "abricot", created.Add(-time.Hour))
	// same creation time: "wiktionnaire:poire" < "wordreference:pomme"
	tiedFirst := getUserWord(1, "poire", created)
	tiedFirst.Site = dictionary.Wiktionnaire
	tiedSecond := getUserWord(1, "pomme", created)

	words := []UserWord{late, tiedSecond, early, tiedFirst}
	sortUserWords(words)
	assert.Equal(t, []UserWord{early, tiedFirst, tiedSecond, late}, words)
}
