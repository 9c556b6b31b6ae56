package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mindprobe/MindProbe/internal/analysis"
	"github.com/mindprobe/MindProbe/internal/engine"
	"github.com/mindprobe/MindProbe/internal/gatekeeper"
	"github.com/mindprobe/MindProbe/internal/genai"
	"github.com/mindprobe/MindProbe/internal/lockfile"
	"github.com/mindprobe/MindProbe/internal/session"
	"github.com/mindprobe/MindProbe/internal/store"
	"github.com/mindprobe/MindProbe/internal/survey"
	"github.com/mindprobe/MindProbe/internal/telegram"
	"github.com/mindprobe/MindProbe/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for MindProbe state data
	DefaultStateDir = "/var/lib/mindprobe"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "mindprobe.db"
	// DefaultModel is the chat completion model used for analyses
	DefaultModel = "gpt-4o-mini"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if *flags.botToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}
	if *flags.openaiKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}

	if err := run(flags); err != nil && err != context.Canceled {
		slog.Error("MindProbe failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("MindProbe exited successfully")
}

// Config holds environment configuration
type Config struct {
	BotToken       string
	OpenAIKey      string
	Model          string
	DatabaseDSN    string
	StateDir       string
	HistoryMode    string
	AdminChatID    int64
	HRPassword     string
	SessionTTL     time.Duration
	ExpressTokens  int64
	FullTokens     int64
	ExpressTimeout time.Duration
	FullTimeout    time.Duration
}

// Flags holds command line flag values
type Flags struct {
	botToken    *string
	openaiKey   *string
	model       *string
	dbDSN       *string
	stateDir    *string
	historyMode *string
	config      Config
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		BotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:          util.GetEnv("OPENAI_MODEL", DefaultModel),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		StateDir:       util.GetEnv("MINDPROBE_STATE_DIR", DefaultStateDir),
		HistoryMode:    util.GetEnv("CANDIDATE_HISTORY", string(store.HistoryUpsert)),
		AdminChatID:    util.ParseInt64Env("ADMIN_CHAT_ID", 0),
		HRPassword:     os.Getenv("HR_PASSWORD"),
		SessionTTL:     util.ParseDurationEnv("SESSION_TTL", session.DefaultTTL),
		ExpressTokens:  util.ParseInt64Env("EXPRESS_MAX_TOKENS", 0),
		FullTokens:     util.ParseInt64Env("FULL_MAX_TOKENS", 0),
		ExpressTimeout: util.ParseDurationEnv("EXPRESS_TIMEOUT", 0),
		FullTimeout:    util.ParseDurationEnv("FULL_TIMEOUT", 0),
	}

	// No DSN means SQLite in the state directory.
	if config.DatabaseDSN == "" {
		config.DatabaseDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseDSN)
	}

	slog.Debug("environment variables loaded",
		"TELEGRAM_BOT_TOKEN_SET", config.BotToken != "",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"OPENAI_MODEL", config.Model,
		"DATABASE_DSN_SET", config.DatabaseDSN != "",
		"MINDPROBE_STATE_DIR", config.StateDir,
		"CANDIDATE_HISTORY", config.HistoryMode,
		"ADMIN_CHAT_ID_SET", config.AdminChatID != 0,
		"HR_PASSWORD_SET", config.HRPassword != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		botToken:    flag.String("bot-token", config.BotToken, "Telegram bot token (overrides $TELEGRAM_BOT_TOKEN)"),
		openaiKey:   flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		model:       flag.String("model", config.Model, "chat completion model (overrides $OPENAI_MODEL)"),
		dbDSN:       flag.String("db-dsn", config.DatabaseDSN, "database DSN or SQLite path (overrides $DATABASE_DSN)"),
		stateDir:    flag.String("state-dir", config.StateDir, "state directory for MindProbe data (overrides $MINDPROBE_STATE_DIR)"),
		historyMode: flag.String("candidate-history", config.HistoryMode, "candidate record retention: upsert or append (overrides $CANDIDATE_HISTORY)"),
		config:      config,
	}

	flag.Parse()
	return flags
}

func run(flags Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Two pollers on one bot token would split the update stream.
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	historyMode := store.HistoryMode(*flags.historyMode)
	if !store.IsValidHistoryMode(historyMode) {
		slog.Warn("invalid candidate history mode, using upsert", "mode", *flags.historyMode)
		historyMode = store.HistoryUpsert
	}

	candidates, err := openCandidateStore(*flags.dbDSN, historyMode)
	if err != nil {
		return err
	}
	defer candidates.Close()

	generator, err := genai.NewClient(*flags.openaiKey, *flags.model)
	if err != nil {
		return err
	}

	questions, err := survey.DefaultConfig()
	if err != nil {
		return err
	}

	messenger, err := telegram.NewClient(*flags.botToken)
	if err != nil {
		return err
	}

	analysisCfg := analysis.DefaultConfig()
	analysisCfg.AdminChatID = flags.config.AdminChatID
	if flags.config.ExpressTokens > 0 {
		analysisCfg.Express.MaxTokens = flags.config.ExpressTokens
	}
	if flags.config.FullTokens > 0 {
		analysisCfg.Full.MaxTokens = flags.config.FullTokens
	}
	if flags.config.ExpressTimeout > 0 {
		analysisCfg.Express.Timeout = flags.config.ExpressTimeout
	}
	if flags.config.FullTimeout > 0 {
		analysisCfg.Full.Timeout = flags.config.FullTimeout
	}

	bot := engine.New(
		engine.Config{
			AdminChatID: flags.config.AdminChatID,
			HRPassword:  flags.config.HRPassword,
			ChatReply: genai.Options{
				MaxTokens:   analysisCfg.Express.MaxTokens,
				Temperature: &analysisCfg.Express.Temperature,
				Timeout:     analysisCfg.Express.Timeout,
			},
		},
		messenger,
		session.NewCacheStore(flags.config.SessionTTL),
		survey.NewEngine(questions),
		gatekeeper.New(gatekeeper.DefaultConfig()),
		analysis.NewDispatcher(generator, candidates, questions, analysisCfg),
		generator,
		candidates,
	)

	slog.Info("MindProbe started", "model", *flags.model, "history_mode", historyMode)
	return messenger.Run(ctx, bot)
}

// openCandidateStore picks the backend from the DSN: postgres URLs go to the
// Postgres store, anything else is treated as a SQLite path.
func openCandidateStore(dsn string, mode store.HistoryMode) (store.CandidateStore, error) {
	opts := []store.Option{store.WithDSN(dsn), store.WithHistoryMode(mode)}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return store.NewPostgresStore(opts...)
	}
	return store.NewSQLiteStore(opts...)
}
