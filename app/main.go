package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"

	"github.com/rbhz/fr-dictionary/app/api"
	"github.com/rbhz/fr-dictionary/app/bot"
	"github.com/rbhz/fr-dictionary/app/clients/fetcher"
	"github.com/rbhz/fr-dictionary/app/db"
	"github.com/rbhz/fr-dictionary/app/dictionary"
	"github.com/rbhz/fr-dictionary/app/lookup"
)

const lookupTimeout = 30 * time.Second

type Opts struct {
	Verbose   bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User-Agent sent to dictionary sites"`

	Serve  ServeCommand  `command:"serve" description:"Run API server and Telegram bot"`
	Lookup LookupCommand `command:"lookup" description:"Look a word up and print the record"`
}

type ServeCommand struct {
	BotToken  string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token, bot is not started if empty"`
	BoltDB    string `long:"boltdb" env:"BOLTDB" default:"./dict.data" description:"Path to BoltDB, in-memory storage if empty"`
	RedisURL  string `long:"redis" env:"REDIS_URL" description:"Redis database URL"`
	JWTSecret string `long:"jwt" env:"JWT_SECRET" required:"true" description:"JWT secret"`
	Port      int    `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`
}

type LookupCommand struct {
	Source string `short:"s" long:"source" default:"wordreference" description:"Dictionary to look the word up in (wr, wiki)"`
	Args   struct {
		Word string `positional-arg-name:"word" required:"true"`
	} `positional-args:"yes"`
}

var opts Opts

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if opts.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return command.Execute(args)
	}
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func newLookuper() *lookup.Service {
	return lookup.NewService(fetcher.NewClient(opts.UserAgent))
}

// Execute prints record of the word as indented JSON
func (c *LookupCommand) Execute(_ []string) error {
	site, err := dictionary.ParseSite(c.Source)
	if err != nil {
		return errors.Wrapf(err, "source %q", c.Source)
	}
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	record, err := newLookuper().Lookup(ctx, site, c.Args.Word)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// Execute runs API server and, when token is set, Telegram bot
func (c *ServeCommand) Execute(_ []string) error {
	storage, closeStorage, err := getStorage(*c)
	if err != nil {
		return err
	}
	defer closeStorage()

	lookuper := newLookuper()
	if c.BotToken == "" {
		log.Info().Int("port", c.Port).Msg("starting API server")
		return api.NewServer(storage, lookuper, c.BotToken, c.JWTSecret).Run(c.Port)
	}

	go func() {
		server := api.NewServer(storage, lookuper, c.BotToken, c.JWTSecret)
		if err := server.Run(c.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to run API server")
		}
	}()

	b, err := bot.NewTelegramBot(c.BotToken, storage, lookuper, bot.DefaultHandlers())
	if err != nil {
		return err
	}
	b.Start()
	return nil
}

func getStorage(c ServeCommand) (db.Storage, func(), error) {
	switch {
	case c.RedisURL != "":
		redisStorage, err := db.NewRedisStorage(c.RedisURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create redis client")
		}
		return redisStorage, func() {}, nil
	case c.BoltDB != "":
		boltDB, err := bolt.Open(c.BoltDB, 0600, nil)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create boltDB database")
		}
		boltStorage, err := db.NewBoltStorage(boltDB)
		if err != nil {
			_ = boltDB.Close()
			return nil, nil, errors.Wrap(err, "failed to create bolt storage")
		}
		return boltStorage, func() {
			if err := boltDB.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close boltDB database")
			}
		}, nil
	default:
		log.Warn().Msg("no database configured, saved words are kept in memory")
		return db.NewInMemoryStorage(), func() {}, nil
	}
}
