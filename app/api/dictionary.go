package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/lookup"
)

// dictionaryService implements methods for lookup and user dictionary API
type dictionaryService struct {
	storage  db.Storage
	lookuper lookup.Lookuper
}

func userFromContext(w http.ResponseWriter, r *http.Request) (db.UserID, bool) {
	userID, ok := r.Context().Value(ctxUserIDKey).(db.UserID)
	if !ok {
		log.Error().Interface("user", r.Context().Value(ctxUserIDKey)).Msg("invalid user id in context")
		w.WriteHeader(http.StatusInternalServerError)
	}
	return userID, ok
}

// Lookup returns the record of a word on the requested source
func (d dictionaryService) Lookup(w http.ResponseWriter, r *http.Request) {
	site, word, err := wordParams(r)
	if err != nil {
		writeLookupError(w, err, site, word)
		return
	}
	record, err := d.lookuper.Lookup(r.Context(), site, word)
	if err != nil {
		writeLookupError(w, err, site, word)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetUserWords returns user saved words
func (d dictionaryService) GetUserWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(w, r)
	if !ok {
		return
	}
	words, err := d.storage.GetUserWords(userID)
	if err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to get user words")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// SaveWord looks the word up and saves it to user dictionary
func (d dictionaryService) SaveWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(w, r)
	if !ok {
		return
	}
	site, word, err := wordParams(r)
	if err != nil {
		writeLookupError(w, err, site, word)
		return
	}
	record, err := d.lookuper.Lookup(r.Context(), site, word)
	if err != nil {
		writeLookupError(w, err, site, word)
		return
	}
	userWord, err := db.SaveUserRecord(d.storage, userID, site, record)
	if err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Str("word", word).Msg("failed to save user word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, userWord)
}

// DeleteWord removes the word from user dictionary
func (d dictionaryService) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(w, r)
	if !ok {
		return
	}
	site, word, err := wordParams(r)
	if err != nil {
		writeLookupError(w, err, site, word)
		return
	}
	if err := d.storage.DeleteUserWord(userID, db.WordKey(site, word)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeText(w, http.StatusNotFound, "word not found")
			return
		}
		log.Error().Err(err).Int64("user", int64(userID)).Str("word", word).Msg("failed to delete user word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
