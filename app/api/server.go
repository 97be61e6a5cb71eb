package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
	"github.com/rbhz/fr-dictionary/app/lookup"
)

type ctxKey string

const ctxUserIDKey ctxKey = "userID"

type Server struct {
	storage db.Storage
	router  chi.Router
}

func (s *Server) Run(port int) error {
	log.Info().Int("port", port).Msg("starting API server")
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.router)
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(storage db.Storage, lookuper lookup.Lookuper, tgToken string, jwtSecret string) *Server {
	s := &Server{storage: storage}
	dict := dictionaryService{storage: storage, lookuper: lookuper}
	auth := authService{storage: storage, telegramToken: tgToken, jwtSecret: []byte(jwtSecret)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Get("/lookup/{source}/{word}", dict.Lookup)
		r.Route("/auth", func(r chi.Router) {
			r.Get("/telegram", auth.TelegramRedirectHandler)
		})
		r.Route("/dictionary", func(r chi.Router) {
			r.Use(auth.UserCtx)
			r.Get("/", dict.GetUserWords)
			r.Post("/{source}/{word}", dict.SaveWord)
			r.Delete("/{source}/{word}", dict.DeleteWord)
		})
	})

	s.router = r
	return s
}

// wordParams reads site and word from the route
func wordParams(r *http.Request) (dictionary.Site, string, error) {
	site, err := dictionary.ParseSite(chi.URLParam(r, "source"))
	if err != nil {
		return "", "", err
	}
	word := chi.URLParam(r, "word")
	if unescaped, err := url.PathUnescape(word); err == nil {
		word = unescaped
	}
	return site, lookup.Normalize(word), nil
}

// writeLookupError maps lookup failures to response codes
func writeLookupError(w http.ResponseWriter, err error, site dictionary.Site, word string) {
	switch {
	case errors.Is(err, dictionary.ErrUnknownSite):
		writeText(w, http.StatusBadRequest, "unknown source")
	case errors.Is(err, lookup.ErrEmptyWord):
		writeText(w, http.StatusBadRequest, "empty word")
	case errors.Is(err, dictionary.ErrNotFound):
		writeText(w, http.StatusNotFound, "word not found")
	default:
		log.Error().Err(err).Str("site", string(site)).Str("word", word).Msg("failed to look up word")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	response, jerr := json.Marshal(data)
	if jerr != nil {
		log.Error().Err(jerr).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
