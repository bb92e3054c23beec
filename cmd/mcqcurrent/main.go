package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ajayambaliya/mcqcurrent/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		cfg        app.Config
	)

	flag.StringVar(&configPath, "config", os.Getenv("MCQ_CONFIG"), "Path to optional YAML config file")
	flag.StringVar(&cfg.SourceURL, "source.url", os.Getenv("SOURCE_URL"), "Article listing base URL")
	flag.IntVar(&cfg.Pages, "source.pages", envInt("SOURCE_PAGES"), "Listing pages to scan")
	flag.StringVar(&cfg.TargetLang, "lang", os.Getenv("TARGET_LANG"), "Target translation language code")
	flag.StringVar(&cfg.TranslatorBackend, "translator", os.Getenv("TRANSLATOR"), "Translation backend: google or chat")
	flag.StringVar(&cfg.LLMBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for the chat translator")
	flag.StringVar(&cfg.LLMModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for the chat translator")
	flag.StringVar(&cfg.LLMAPIKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the chat translator")
	flag.StringVar(&cfg.LedgerPath, "ledger.path", os.Getenv("LEDGER_PATH"), "Path to the processed-URL ledger database")
	flag.StringVar(&cfg.DocsToken, "docs.token", os.Getenv("DOCS_TOKEN"), "Bearer token for the document service")
	flag.StringVar(&cfg.DocsBaseURL, "docs.base", os.Getenv("DOCS_BASE_URL"), "Document service base URL override")
	flag.StringVar(&cfg.BotToken, "telegram.token", os.Getenv("BOT_TOKEN"), "Bot token for the delivery channel")
	flag.StringVar(&cfg.ChannelID, "telegram.channel", os.Getenv("CHANNEL_ID"), "Channel id for the delivery channel")
	flag.StringVar(&cfg.FontPath, "render.font", os.Getenv("RENDER_FONT"), "Optional UTF-8 TTF font for the PDF artifact")
	flag.IntVar(&cfg.Workers, "workers", envInt("WORKERS"), "Bounded worker pool size for per-URL extraction")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.Parse()

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file unusable")
		}
		app.ApplyFileConfig(fc, &cfg)
	}
	applyDefaults(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	application := app.New(cfg)
	defer application.Close()

	if err := application.Run(context.Background()); err != nil {
		switch {
		case errors.Is(err, app.ErrMissingCredentials):
			log.Error().Msg("BOT_TOKEN and CHANNEL_ID are required")
		default:
			log.Error().Err(err).Msg("run failed")
		}
		os.Exit(1)
	}
}

func applyDefaults(cfg *app.Config) {
	if cfg.SourceURL == "" {
		cfg.SourceURL = "https://www.gktoday.in/current-affairs/"
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 3
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = "gu"
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = "mcqcurrent.db"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
