package db

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rbhz/fr-dictionary/app/dictionary"
)

// UserID is a type for users ID
type UserID int64

// ErrNotFound is returned when object not found
var ErrNotFound error = errors.New("not found")

// GenerateID generates new uuid and encodes it to base64
func GenerateID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Storage defines method provided by database interfaces
type Storage interface {
	// GetUser returns user by ID
	GetUser(UserID) (User, error)
	// SaveUser saves user to DB
	SaveUser(User) error

	// GetUserWord returns saved word by its key
	GetUserWord(UserID, string) (UserWord, error)
	// SaveUserWord saves word to user list, replacing the one with the same key
	SaveUserWord(UserWord) error
	// DeleteUserWord removes word from user list
	DeleteUserWord(UserID, string) error
	// GetUserWords returns user list ordered by creation time
	GetUserWords(UserID) ([]UserWord, error)
}

// User holds user data
type User struct {
	ID       UserID
	Username string
	Config   UserConfig
}

// UserConfig holds user config params
type UserConfig struct {
	Source *string
}

// Site returns preferred lookup site of the user
func (c UserConfig) Site() dictionary.Site {
	if c.Source == nil {
		return dictionary.DefaultSite
	}
	site := dictionary.Site(*c.Source)
	if !site.Valid() {
		return dictionary.DefaultSite
	}
	return site
}

// UserWord is a looked up word saved to the user list
type UserWord struct {
	ID      string
	User    UserID
	Site    dictionary.Site
	Word    string
	Record  dictionary.Record
	Created time.Time
}

// Key identifies the word within user list
func (w UserWord) Key() string {
	return WordKey(w.Site, w.Word)
}

// WordKey builds user list key of word looked up on site
func WordKey(site dictionary.Site, word string) string {
	return string(site) + ":" + word
}

// NewUserWord creates new saved word
func NewUserWord(user UserID, site dictionary.Site, record dictionary.Record) UserWord {
	return UserWord{
		ID:      GenerateID(),
		User:    user,
		Site:    site,
		Word:    record.TargetWord,
		Record:  record,
		Created: time.Now().UTC(),
	}
}

// sortUserWords orders words by creation time, then key
func sortUserWords(words []UserWord) {
	sort.Slice(words, func(i, j int) bool {
		if !words[i].Created.Equal(words[j].Created) {
			return words[i].Created.Before(words[j].Created)
		}
		return words[i].Key() < words[j].Key()
	})
}

// SaveUserRecord saves looked up record to user list.
// A word saved before keeps its ID and creation time.
func SaveUserRecord(s Storage, user UserID, site dictionary.Site, record dictionary.Record) (UserWord, error) {
	word := NewUserWord(user, site, record)
	existing, err := s.GetUserWord(user, word.Key())
	switch {
	case err == nil:
		word.ID, word.Created = existing.ID, existing.Created
	case !errors.Is(err, ErrNotFound):
		return UserWord{}, fmt.Errorf("get user word: %w", err)
	}
	if err := s.SaveUserWord(word); err != nil {
		return UserWord{}, fmt.Errorf("save user word: %w", err)
	}
	return word, nil
}
