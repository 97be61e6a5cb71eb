package db

import "sync"

// InMemoryStorage keeps users and their words in process memory
type InMemoryStorage struct {
	users      map[UserID]User
	usersWords map[UserID]map[string]UserWord
	mx         sync.RWMutex
}

func (d *InMemoryStorage) GetUser(id UserID) (User, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	user, ok := d.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (d *InMemoryStorage) SaveUser(user User) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.users[user.ID] = user
	return nil
}

func (d *InMemoryStorage) GetUserWord(user UserID, key string) (UserWord, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	word, ok := d.usersWords[user][key]
	if !ok {
		return UserWord{}, ErrNotFound
	}
	return word, nil
}

func (d *InMemoryStorage) SaveUserWord(word UserWord) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	userWords, ok := d.usersWords[word.User]
	if !ok {
		userWords = make(map[string]UserWord)
		d.usersWords[word.User] = userWords
	}
	userWords[word.Key()] = word
	return nil
}

func (d *InMemoryStorage) DeleteUserWord(user UserID, key string) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	if _, ok := d.usersWords[user][key]; !ok {
		return ErrNotFound
	}
	delete(d.usersWords[user], key)
	return nil
}

func (d *InMemoryStorage) GetUserWords(user UserID) ([]UserWord, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	result := make([]UserWord, 0, len(d.usersWords[user]))
	for _, word := range d.usersWords[user] {
		result = append(result, word)
	}
	sortUserWords(result)
	return result, nil
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		users:      make(map[UserID]User),
		usersWords: make(map[UserID]map[string]UserWord),
	}
}
