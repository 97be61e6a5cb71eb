package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const (
	testTGToken   = "123123213:1231231312"
	testJWTSecret = "tokentokentokentoken"
	testUserID    = 1
)

// emptyHandler is a dummy handler for testing.
type emptyHandler struct{}

func (h *emptyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

// ErrorStorage is a dummy storage for testing storage error handling.
type ErrorStorage struct {
	*db.InMemoryStorage
}

func (d ErrorStorage) GetUserWords(db.UserID) ([]db.UserWord, error) {
	return nil, errors.New("test")
}

func (d ErrorStorage) SaveUserWord(db.UserWord) error {
	return errors.New("test")
}

func (d ErrorStorage) DeleteUserWord(db.UserID, string) error {
	return errors.New("test")
}

func (d ErrorStorage) GetUser(db.UserID) (db.User, error) {
	return db.User{}, errors.New("test")
}

// stubLookuper returns records keyed by db.WordKey
type stubLookuper struct {
	records map[string]dictionary.Record
	err     error
}

func (l stubLookuper) Lookup(_ context.Context, site dictionary.Site, word string) (dictionary.Record, error) {
	if l.err != nil {
		return dictionary.Record{}, l.err
	}
	record, ok := l.records[db.WordKey(site, word)]
	if !ok {
		return dictionary.Record{}, dictionary.ErrNotFound
	}
	return record, nil
}

func testRecord(word string) dictionary.Record {
	return dictionary.Record{
		TargetWord:     word,
		Definitions:    map[string]dictionary.Senses{word + " (nf)": {"apple"}},
		Pronunciations: []string{"/pɔm/"},
		Examples:       dictionary.Examples{List: []string{"Une " + word + "."}},
		Audio:          []string{},
	}
}

func testLookuper() stubLookuper {
	return stubLookuper{records: map[string]dictionary.Record{
		"wordreference:pomme":          testRecord("pomme"),
		"wiktionnaire:pomme":           testRecord("pomme"),
		"wordreference:été":            testRecord("été"),
		"wordreference:pomme de terre": testRecord("pomme de terre"),
	}}
}

// getTestServer returns a test server.
func getTestServer(storage db.Storage) (*httptest.Server, func()) {
	if storage == nil {
		storage = db.NewInMemoryStorage()
	}

	server := NewServer(storage, testLookuper(), testTGToken, testJWTSecret)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}

// getTestJWT returns a test JWT signed with testJWTSecret
func getTestJWT() string {
	token, _ := (&authService{telegramToken: testTGToken, jwtSecret: []byte(testJWTSecret)}).createToken(testUserID)
	return "Bearer " + token
}
