package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/dictionary"
)

const (
	settingSource = "source"
)

// ListSettingsHandler handles /settings command
type ListSettingsHandler struct {
	neverPassthorugh
}

// Match returns true if update is /settings command
func (h ListSettingsHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "settings"
}

// Handle sends settings list keyboard
func (h ListSettingsHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	msg := tgbotapi.NewMessage(u.Message.Chat.ID, "Choose what do you want to change:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Dictionary", fmt.Sprintf("%v|%v", callbackIDSettings, settingSource)),
		),
	)
	_, _ = b.Send(msg)
}

// SendSourcesHandler sends available dictionaries
type SendSourcesHandler struct {
	neverPassthorugh
}

// Match returns true if update is /source command or source settings callback
func (h SendSourcesHandler) Match(u tgbotapi.Update) bool {
	if u.Message != nil {
		return u.Message.Command() == "source"
	}
	return u.CallbackQuery != nil &&
		u.CallbackQuery.Data == fmt.Sprintf("%v|%v", callbackIDSettings, settingSource)
}

// Handle sends dictionaries keyboard
func (h SendSourcesHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	var chatID int64
	if u.Message != nil {
		chatID = u.Message.Chat.ID
	} else {
		chatID = u.CallbackQuery.From.ID
	}
	user := userFromContext(ctx, chatID)

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(dictionary.Sites()))
	for _, site := range dictionary.Sites() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				site.Title(), fmt.Sprintf("%v|%v|%v", callbackIDSettings, settingSource, site),
			),
		))
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Current dictionary: %v\nPick dictionary:", user.Config.Site().Title()))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, _ = b.Send(msg)
}

// SetSourceHandler saves dictionary to user config
type SetSourceHandler struct {
	neverPassthorugh
}

// Match returns true if update is source settings callback with picked dictionary
func (h SetSourceHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		strings.HasPrefix(u.CallbackQuery.Data, fmt.Sprintf("%v|%v|", callbackIDSettings, settingSource))
}

// Handle saves dictionary to user config
func (h SetSourceHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user := userFromContext(ctx, u.CallbackQuery.From.ID)
	source := strings.SplitN(u.CallbackQuery.Data, "|", 3)[2]
	site := dictionary.Site(source)
	if !site.Valid() {
		log.Error().Str("source", source).Msg("invalid source")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown dictionary"))
		return
	}
	user.Config.Source = &source
	if err := b.DB().SaveUser(user); err != nil {
		log.Error().Err(err).Int64("user", int64(user.ID)).Msg("failed to save user")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Failed to save settings"))
		return
	}
	_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, fmt.Sprintf("Dictionary set: %v", site.Title())))
}
