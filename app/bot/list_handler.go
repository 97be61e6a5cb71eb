package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
	"github.com/rbhz/fr-dictionary/app/lookup"
)

const (
	listLimit       = 50
	maxCallbackData = 64
)

func removeCallbackData(key string) string {
	return fmt.Sprintf("%v|%v", callbackIDRemove, key)
}

// ListHandler handles /list command
type ListHandler struct {
	neverPassthorugh
}

// Match returns true if update is /list command
func (h ListHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "list"
}

// Handle sends latest words of user list
func (h ListHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	user := userFromContext(ctx, chatID)
	words, err := b.DB().GetUserWords(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user", int64(user.ID)).Msg("failed to get user words")
		return
	}
	if len(words) == 0 {
		_, _ = b.Send(tgbotapi.NewMessage(chatID, "Your list is empty"))
		return
	}
	_, _ = b.Send(listMessage(chatID, words))
}

// listMessage lists words newest first
func listMessage(chatID int64, words []db.UserWord) tgbotapi.MessageConfig {
	lines := make([]string, 0, listLimit)
	for i := len(words) - 1; i >= 0 && len(lines) < listLimit; i-- {
		w := words[i]
		lines = append(lines, fmt.Sprintf("<b>%v</b> <i>%v</i>", html.EscapeString(w.Word), w.Site.Title()))
	}
	text := strings.Join(lines, "\n")
	if len(words) > listLimit {
		text += fmt.Sprintf("\n\n... and %d more", len(words)-listLimit)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "html"
	return msg
}

// RemoveHandler handles /remove command
type RemoveHandler struct {
	neverPassthorugh
}

// Match returns true if update is /remove command
func (h RemoveHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "remove"
}

// Handle removes the word looked up on any site from user list
func (h RemoveHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	word := lookup.Normalize(u.Message.CommandArguments())
	if word == "" {
		_, _ = b.Send(tgbotapi.NewMessage(chatID, "Usage: /remove <word>"))
		return
	}
	user := userFromContext(ctx, chatID)
	removed := 0
	for _, site := range dictionary.Sites() {
		err := b.DB().DeleteUserWord(user.ID, db.WordKey(site, word))
		switch {
		case err == nil:
			removed++
		case !errors.Is(err, db.ErrNotFound):
			log.Error().Err(err).Str("word", word).Int64("user", int64(user.ID)).Msg("failed to remove user word")
			_, _ = b.Send(tgbotapi.NewMessage(chatID, "Failed to remove the word"))
			return
		}
	}
	if removed == 0 {
		_, _ = b.Send(tgbotapi.NewMessage(chatID, "The word is not in your list"))
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(chatID, "Removed from your list"))
}

// RemoveCallbackHandler handles remove button of word message
type RemoveCallbackHandler struct {
	neverPassthorugh
}

// Match returns true if update is remove callback
func (h RemoveCallbackHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil && strings.HasPrefix(u.CallbackQuery.Data, callbackIDRemove+"|")
}

// Handle removes the word from user list
func (h RemoveCallbackHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user := userFromContext(ctx, u.CallbackQuery.From.ID)
	key := strings.TrimPrefix(u.CallbackQuery.Data, callbackIDRemove+"|")
	err := b.DB().DeleteUserWord(user.ID, key)
	switch {
	case err == nil:
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Removed from your list"))
	case errors.Is(err, db.ErrNotFound):
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Already removed"))
	default:
		log.Error().Err(err).Str("key", key).Int64("user", int64(user.ID)).Msg("failed to remove user word")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Failed to remove the word"))
	}
}
