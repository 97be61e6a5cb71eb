package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const (
	callbackIDSettings = "st"
	callbackIDRemove   = "rm"
)

// Bot describes bot for handlers
type Bot interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	SendCallback(tgbotapi.CallbackConfig) (*tgbotapi.APIResponse, error)
	DB() db.Storage
	Lookup(ctx context.Context, site dictionary.Site, word string) (dictionary.Record, error)
}

// neverPassthorugh implements Passthrough with always false
type neverPassthorugh struct{}

// Passthrough always returns false
func (h neverPassthorugh) Passthrough(u tgbotapi.Update) bool {
	return false
}

// DefaultHandlers returns all bot handlers in matching order
func DefaultHandlers() []Handler {
	return []Handler{
		StartHandler{},
		ListHandler{},
		RemoveHandler{},
		ListSettingsHandler{},
		SendSourcesHandler{},
		SetSourceHandler{},
		RemoveCallbackHandler{},
		WordHandler{},
	}
}

// userFromContext returns user loaded for the update, or a new user with default config
func userFromContext(ctx context.Context, id int64) db.User {
	if user, ok := ctx.Value(ctxUserKey).(db.User); ok {
		return user
	}
	return db.User{ID: db.UserID(id)}
}
