package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/db"
)

// JWTClaims custom claims with user id
type JWTClaims struct {
	User *int64 `json:"user"`
	jwt.StandardClaims
}

// AuthResponse response for authentication
type AuthResponse struct {
	Token string `json:"token"`
}

// telegram login data older than authMaxAge is rejected
const authMaxAge = 24 * time.Hour

// authService implements methods for API authentication
type authService struct {
	storage       db.Storage
	telegramToken string
	jwtSecret     []byte
}

// createToken creates JWT token
func (s *authService) createToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		User: &userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().UTC().Add(time.Hour * 24).Unix(),
			NotBefore: time.Now().UTC().Unix(),
		},
	})
	tokenStr, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// checkString builds telegram login data-check-string from query params
func checkString(query url.Values) string {
	keys := make([]string, 0, len(query))
	for key := range query {
		if key != "hash" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		for _, val := range query[key] {
			lines = append(lines, fmt.Sprintf("%s=%s", key, val))
		}
	}
	return strings.Join(lines, "\n")
}

// signTelegramData returns hex HMAC of the data-check-string keyed with the bot token hash
func signTelegramData(token string, query url.Values) string {
	secretKey := sha256.Sum256([]byte(token))
	h := hmac.New(sha256.New, secretKey[:])
	h.Write([]byte(checkString(query)))
	return hex.EncodeToString(h.Sum(nil))
}

// TelegramRedirectHandler handles authentication after Telegram redirect
func (s *authService) TelegramRedirectHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !hmac.Equal([]byte(signTelegramData(s.telegramToken, query)), []byte(query.Get("hash"))) {
		writeText(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	authDate, err := strconv.ParseInt(query.Get("auth_date"), 10, 64)
	if err != nil || time.Since(time.Unix(authDate, 0)) > authMaxAge {
		writeText(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := strconv.ParseInt(query.Get("id"), 10, 64)
	if err != nil {
		log.Error().Err(err).Str("userID", query.Get("id")).Msg("failed to parse user id")
		writeText(w, http.StatusBadRequest, "invalid ID")
		return
	}
	if err := s.upsertUser(db.UserID(userID), query.Get("username")); err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("failed to save user")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// create JWT token
	token, err := s.createToken(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create token")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Token: token})
}

// upsertUser creates user on first login and keeps the username up to date
func (s *authService) upsertUser(id db.UserID, username string) error {
	user, err := s.storage.GetUser(id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		user = db.User{ID: id}
	case err != nil:
		return err
	case user.Username == username:
		return nil
	}
	user.Username = username
	return s.storage.SaveUser(user)
}

// UserCtx checks authorization token and adds user to context
func (s *authService) UserCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(requestToken, "Bearer ") {
			requestToken = ""
		}
		requestToken = strings.Replace(requestToken, "Bearer ", "", 1)
		if requestToken == "" {
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		token, err := jwt.ParseWithClaims(requestToken, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		})
		if err != nil {
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || claims.User == nil {
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		now := time.Now().Unix()
		if claims.NotBefore > now || claims.ExpiresAt < now {
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, db.UserID(*claims.User))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
