package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
	"github.com/rbhz/fr-dictionary/app/lookup"
)

// WordHandler handles word requests
type WordHandler struct {
	neverPassthorugh
}

// Match returns true if message is a text
func (h WordHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Text != "" && !u.Message.IsCommand()
}

// Handle looks the word up, saves it to user list and sends the record
func (h WordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	word := lookup.Normalize(u.Message.Text)
	if strings.ContainsAny(word, " \n\t") {
		_, _ = b.Send(tgbotapi.NewMessage(chatID, "Sorry only single words are supported"))
		return
	}
	user := userFromContext(ctx, chatID)
	site := user.Config.Site()

	record, err := b.Lookup(ctx, site, word)
	if err != nil {
		if errors.Is(err, dictionary.ErrNotFound) {
			_, _ = b.Send(tgbotapi.NewMessage(chatID, "Sorry, I don't know this word"))
			return
		}
		log.Error().Err(err).Str("word", word).Str("site", string(site)).Msg("failed to look word up")
		_, _ = b.Send(tgbotapi.NewMessage(chatID, "Failed to look the word up, try again later"))
		return
	}

	saved, err := db.SaveUserRecord(b.DB(), user.ID, site, record)
	if err != nil {
		log.Error().
			Err(err).
			Str("word", record.TargetWord).
			Int64("user", int64(user.ID)).
			Msg("failed to save user word")
	}

	text := tgbotapi.NewMessage(chatID, GetRecordMessageText(record, site))
	text.ParseMode = "html"
	if data := removeCallbackData(saved.Key()); err == nil && len(data) <= maxCallbackData {
		text.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Remove from list", data)),
		)
	}
	if _, err := b.Send(text); err == nil && len(record.Audio) > 0 {
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(record.Audio[0]))
		_, _ = b.Send(audio)
	}
}
