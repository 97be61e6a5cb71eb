package db

import (
	"encoding/json"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketUsers      = "Users"
	bucketUsersWords = "UsersWords"
)

// BoltStorage implements storage interface for BoltDB
type BoltStorage struct {
	db *bolt.DB
}

func userKey(id UserID) []byte {
	return []byte(strconv.FormatInt(int64(id), 10))
}

// GetUser from database
func (b *BoltStorage) GetUser(id UserID) (User, error) {
	var user User
	err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketUsers)).Get(userKey(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &user); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		return nil
	})
	return user, err
}

// SaveUser to database
func (b *BoltStorage) SaveUser(user User) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := tx.Bucket([]byte(bucketUsers)).Put(userKey(user.ID), jdata); err != nil {
			return fmt.Errorf("put user: %w", err)
		}
		return nil
	})
}

// GetUserWord from user bucket
func (b *BoltStorage) GetUserWord(user UserID, key string) (UserWord, error) {
	var word UserWord
	err := b.db.View(func(tx *bolt.Tx) error {
		userBucket := tx.Bucket([]byte(bucketUsersWords)).Bucket(userKey(user))
		if userBucket == nil {
			return ErrNotFound
		}
		jdata := userBucket.Get([]byte(key))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &word); err != nil {
			return fmt.Errorf("unmarshal user word: %w", err)
		}
		return nil
	})
	return word, err
}

// SaveUserWord to user bucket
func (b *BoltStorage) SaveUserWord(word UserWord) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		userBucket, err := tx.Bucket([]byte(bucketUsersWords)).CreateBucketIfNotExists(userKey(word.User))
		if err != nil {
			return fmt.Errorf("create user bucket: %w", err)
		}
		jdata, err := json.Marshal(word)
		if err != nil {
			return fmt.Errorf("marshal user word: %w", err)
		}
		if err := userBucket.Put([]byte(word.Key()), jdata); err != nil {
			return fmt.Errorf("put user word: %w", err)
		}
		return nil
	})
}

// DeleteUserWord from user bucket
func (b *BoltStorage) DeleteUserWord(user UserID, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		userBucket := tx.Bucket([]byte(bucketUsersWords)).Bucket(userKey(user))
		if userBucket == nil || userBucket.Get([]byte(key)) == nil {
			return ErrNotFound
		}
		return userBucket.Delete([]byte(key))
	})
}

// GetUserWords returns all words of user bucket
func (b *BoltStorage) GetUserWords(user UserID) ([]UserWord, error) {
	words := []UserWord{}
	err := b.db.View(func(tx *bolt.Tx) error {
		userBucket := tx.Bucket([]byte(bucketUsersWords)).Bucket(userKey(user))
		if userBucket == nil {
			return nil
		}
		return userBucket.ForEach(func(k, v []byte) error {
			var word UserWord
			if err := json.Unmarshal(v, &word); err != nil {
				return fmt.Errorf("unmarshal user word %s: %w", k, err)
			}
			words = append(words, word)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortUserWords(words)
	return words, nil
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketUsers, bucketUsersWords} {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
