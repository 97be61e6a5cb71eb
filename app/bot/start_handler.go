package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const startText = `Salut! Send me a French word and I will look it up.

/source - pick the dictionary to look words up in
/list - words you looked up
/remove <word> - remove a word from your list`

type StartHandler struct{}

func (h StartHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && (u.Message.Command() == "start" || u.Message.Command() == "help")
}

func (h StartHandler) Passthrough(u tgbotapi.Update) bool {
	return false
}

func (h StartHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, startText))
}
