package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
	"github.com/rbhz/fr-dictionary/app/lookup"
)

const updateTimeout = 20 * time.Second

type ctxKey string

const ctxUserKey ctxKey = "user"

type Handler interface {
	Handle(ctx context.Context, b Bot, u tgbotapi.Update)
	Passthrough(tgbotapi.Update) bool
	Match(u tgbotapi.Update) bool
}

// TelegramBot handles Telegram API intragration and updates handling
type TelegramBot struct {
	UserName string
	api      *tgbotapi.BotAPI
	db       db.Storage
	lookuper lookup.Lookuper
	handlers []Handler
}

func (b *TelegramBot) processUpdate(u tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	if from := sender(u); from != nil {
		user, err := loadUser(b.db, from)
		if err != nil {
			log.Error().Err(err).Int64("user", from.ID).Msg("failed to load user")
			return
		}
		ctx = context.WithValue(ctx, ctxUserKey, user)
	}
	for _, handler := range b.handlers {
		if handler.Match(u) {
			handler.Handle(ctx, b, u)
			if !handler.Passthrough(u) {
				break
			}
		}
	}
}

func sender(u tgbotapi.Update) *tgbotapi.User {
	switch {
	case u.Message != nil:
		return u.Message.From
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	}
	return nil
}

// loadUser returns stored user of the update sender, creating it on first contact
func loadUser(storage db.Storage, from *tgbotapi.User) (db.User, error) {
	user, err := storage.GetUser(db.UserID(from.ID))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return db.User{}, errors.Wrap(err, "get user")
	}
	user = db.User{ID: db.UserID(from.ID), Username: from.UserName}
	if err := storage.SaveUser(user); err != nil {
		return db.User{}, errors.Wrap(err, "save user")
	}
	log.Info().Int64("user", from.ID).Str("username", from.UserName).Msg("new user")
	return user, nil
}

func (b *TelegramBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for u := range updates {
		b.processUpdate(u)
	}
}

func (b *TelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	message, err := b.api.Send(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send")
	}
	return message, err
}

func (b *TelegramBot) SendCallback(c tgbotapi.CallbackConfig) (*tgbotapi.APIResponse, error) {
	response, err := b.api.Request(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to answer callback")
	}
	return response, err
}

func (b *TelegramBot) DB() db.Storage {
	return b.db
}

func (b *TelegramBot) Lookup(ctx context.Context, site dictionary.Site, word string) (dictionary.Record, error) {
	return b.lookuper.Lookup(ctx, site, word)
}

func NewTelegramBot(token string, db db.Storage, lookuper lookup.Lookuper, handlers []Handler) (*TelegramBot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize bot")
	}
	log.Info().Str("username", botAPI.Self.UserName).Msg("telegram bot initialized")
	return &TelegramBot{
		UserName: botAPI.Self.UserName,
		api:      botAPI,
		db:       db,
		lookuper: lookuper,
		handlers: handlers,
	}, nil
}
