package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const (
	prefixUser     = "user:"
	prefixUserWord = "user_word:"
)

type RedisStorage struct {
	db *redis.Client
}

// GetUser from redis
func (s *RedisStorage) GetUser(id UserID) (User, error) {
	data, err := s.db.Get(context.Background(), prefixUser+strconv.FormatInt(int64(id), 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("fetching user: %w", err)
	}
	buf := bytes.NewBufferString(data)
	var user User
	if jerr := json.NewDecoder(buf).Decode(&user); jerr != nil {
		return user, fmt.Errorf("unmarshal user: %w", jerr)
	}
	return user, nil
}

// SaveUser to redis
func (s *RedisStorage) SaveUser(user User) error {
	key := prefixUser + strconv.FormatInt(int64(user.ID), 10)
	jdata, jerr := json.Marshal(user)
	if jerr != nil {
		return fmt.Errorf("marshal user: %w", jerr)
	}
	_, err := s.db.Set(context.Background(), key, string(jdata), 0).Result()
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

func (s *RedisStorage) GetUserWord(user UserID, key string) (UserWord, error) {
	data, err := s.db.HGet(context.Background(), prefixUserWord+strconv.FormatInt(int64(user), 10), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return UserWord{}, ErrNotFound
		}
		return UserWord{}, fmt.Errorf("fetching user word: %w", err)
	}
	buf := bytes.NewBufferString(data)
	var word UserWord
	if jerr := json.NewDecoder(buf).Decode(&word); jerr != nil {
		return word, fmt.Errorf("unmarshal user word: %w", jerr)
	}
	return word, nil
}

func (s *RedisStorage) SaveUserWord(word UserWord) error {
	key := prefixUserWord + strconv.FormatInt(int64(word.User), 10)
	jdata, jerr := json.Marshal(word)
	if jerr != nil {
		return fmt.Errorf("marshal user word: %w", jerr)
	}
	_, err := s.db.HSet(context.Background(), key, word.Key(), string(jdata)).Result()
	if err != nil {
		return fmt.Errorf("saving user word: %w", err)
	}
	return nil
}

func (s *RedisStorage) DeleteUserWord(user UserID, key string) error {
	deleted, err := s.db.HDel(context.Background(), prefixUserWord+strconv.FormatInt(int64(user), 10), key).Result()
	if err != nil {
		return fmt.Errorf("deleting user word: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserWords from redis
func (s *RedisStorage) GetUserWords(user UserID) ([]UserWord, error) {
	key := prefixUserWord + strconv.FormatInt(int64(user), 10)
	items, err := s.db.HGetAll(context.Background(), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []UserWord{}, nil
		}
		return nil, fmt.Errorf("fetching user words: %w", err)
	}
	words := make([]UserWord, 0, len(items))
	for field, jdata := range items {
		var word UserWord
		if jerr := json.NewDecoder(bytes.NewBufferString(jdata)).Decode(&word); jerr != nil {
			return nil, fmt.Errorf("unmarshal user word %s: %w", field, jerr)
		}
		words = append(words, word)
	}
	sortUserWords(words)
	return words, nil
}

// NewRedisStorage creates RedisStorage with given url
func NewRedisStorage(url string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb}, nil
}
