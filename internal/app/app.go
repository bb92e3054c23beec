package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
	"github.com/ajayambaliya/mcqcurrent/internal/docrender"
	"github.com/ajayambaliya/mcqcurrent/internal/fetch"
	"github.com/ajayambaliya/mcqcurrent/internal/gdocs"
	"github.com/ajayambaliya/mcqcurrent/internal/ledger"
	"github.com/ajayambaliya/mcqcurrent/internal/scrape"
	"github.com/ajayambaliya/mcqcurrent/internal/telegram"
	"github.com/ajayambaliya/mcqcurrent/internal/translate"
)

// Quiz posts share the listing with articles but are never processed.
const quizURLMarker = "daily-current-affairs-quiz"

// Fatal-to-the-run conditions. Everything else degrades per component.
var (
	ErrNoArticleURLs      = fmt.Errorf("no article urls discovered")
	ErrNoContent          = fmt.Errorf("no content extracted from new urls")
	ErrMissingCredentials = fmt.Errorf("missing delivery credentials")
)

// App wires the pipeline: discovery, ledger, extraction, both renderers and
// delivery. Construct once per run; no hidden globals.
type App struct {
	cfg       Config
	fetcher   *fetch.Client
	extractor *scrape.Extractor
	ledger    *ledger.Store
	docs      *gdocs.Builder
	bot       *telegram.Client
}

func New(cfg Config) *App {
	fetcher := &fetch.Client{
		UserAgent:         "mcqcurrent/1.0 (+https://github.com/ajayambaliya/mcqcurrent)",
		MaxAttempts:       2,
		PerRequestTimeout: 10 * time.Second,
		MaxConcurrent:     8,
	}

	var backend translate.Translator
	switch cfg.TranslatorBackend {
	case "chat":
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		backend = &translate.Chat{
			Client:     openai.NewClientWithConfig(transportCfg),
			Model:      cfg.LLMModel,
			TargetLang: cfg.TargetLang,
		}
	default:
		backend = &translate.GoogleWeb{TargetLang: cfg.TargetLang}
	}

	a := &App{
		cfg:     cfg,
		fetcher: fetcher,
		extractor: &scrape.Extractor{
			Client:     fetcher,
			Translator: translate.Resilient{Inner: backend},
			Strategies: scrape.Strategies(),
		},
		bot: &telegram.Client{Token: cfg.BotToken, ChatID: cfg.ChannelID},
	}

	if cfg.LedgerPath != "" {
		st, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			// Documented fallback: an unreachable ledger means every URL is new.
			log.Warn().Err(err).Msg("ledger unavailable; treating all urls as new")
		} else {
			a.ledger = st
		}
	}

	if cfg.DocsToken != "" {
		a.docs = &gdocs.Builder{Service: &gdocs.Client{
			Token:   cfg.DocsToken,
			BaseURL: cfg.DocsBaseURL,
		}}
	}

	return a
}

func (a *App) Close() {
	if a.ledger != nil {
		_ = a.ledger.Close()
	}
}

// Run executes one full pipeline pass.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.BotToken == "" || a.cfg.ChannelID == "" {
		return ErrMissingCredentials
	}

	urls := scrape.DiscoverURLs(ctx, a.fetcher, a.cfg.SourceURL, a.cfg.Pages)
	if len(urls) == 0 {
		return ErrNoArticleURLs
	}

	newURLs := a.filterNew(ctx, urls)
	if len(newURLs) == 0 {
		log.Info().Msg("no new urls to process")
		return nil
	}
	log.Info().Int("count", len(newURLs)).Msg("processing new urls")

	articles := a.extractAll(ctx, newURLs)
	if len(articles) == 0 {
		return ErrNoContent
	}

	now := time.Now()
	combined := content.Combine(articles)
	byCategory := content.ByCategory(articles)
	titles := content.Titles(articles)
	log.Info().Int("articles", len(articles)).Int("categories", len(byCategory)).Msg("content normalized")

	artifactPath, err := a.renderArtifact(ctx, combined, now)
	if err != nil {
		return err
	}

	if err := a.deliver(ctx, artifactPath, now, titles); err != nil {
		return err
	}

	a.buildRemoteDocuments(ctx, byCategory)

	if err := os.Remove(artifactPath); err != nil {
		log.Warn().Err(err).Str("path", artifactPath).Msg("failed to remove artifact")
	}
	return nil
}

// filterNew drops quiz URLs and already-seen URLs. Ledger errors on a single
// URL degrade to treating that URL as new.
func (a *App) filterNew(ctx context.Context, urls []string) []string {
	var out []string
	for _, u := range urls {
		if strings.Contains(u, quizURLMarker) {
			continue
		}
		fresh, err := a.ledger.CheckAndInsert(ctx, u, time.Now())
		if err != nil {
			log.Warn().Err(err).Str("url", u).Msg("ledger check failed; treating as new")
			fresh = true
		}
		if fresh {
			out = append(out, u)
		}
	}
	return out
}

// extractAll runs extraction across a bounded worker pool. Articles are
// independent until grouping, so they may be fetched concurrently; result
// order follows URL order regardless of completion order.
func (a *App) extractAll(ctx context.Context, urls []string) []content.Article {
	workers := a.cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)
	results := make([]content.Article, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			blocks, category := a.extractor.Extract(ctx, u)
			if len(blocks) == 0 {
				return
			}
			// blocks[1] is the original-language heading, the display title.
			results[i] = content.Article{
				URL:      u,
				Category: category,
				Title:    blocks[1].Text,
				Blocks:   blocks,
			}
		}(i, u)
	}
	wg.Wait()

	out := make([]content.Article, 0, len(urls))
	for _, art := range results {
		if len(art.Blocks) > 0 {
			out = append(out, art)
		}
	}
	return out
}

// renderArtifact writes the combined PDF to a temporary file and returns its
// path. The file is removed after successful delivery.
func (a *App) renderArtifact(ctx context.Context, blocks []content.Block, now time.Time) (string, error) {
	renderer := &docrender.Renderer{Images: a.fetcher, FontPath: a.cfg.FontPath}
	tmp, err := os.CreateTemp("", "current-affairs-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create artifact file: %w", err)
	}
	if err := renderer.Render(ctx, blocks, now, tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("render artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close artifact file: %w", err)
	}
	log.Info().Str("path", tmp.Name()).Msg("rendered local artifact")
	return tmp.Name(), nil
}

func (a *App) deliver(ctx context.Context, artifactPath string, now time.Time, titles []string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	filename := now.Format("02-01-2006") + "_Current_Affairs.pdf"
	caption := buildCaption(now, titles)
	policy := telegram.RetryPolicy{MaxAttempts: 5, Backoff: 10 * time.Second}
	if err := policy.Do(ctx, func(ctx context.Context) error {
		return a.bot.SendDocument(ctx, data, filename, caption)
	}); err != nil {
		return fmt.Errorf("deliver artifact: %w", err)
	}
	log.Info().Str("filename", filename).Msg("artifact delivered")
	return nil
}

// buildRemoteDocuments submits one document per category. Categories are
// independent, each with its own cursor, so they submit concurrently; a
// rejected submission abandons only its own category.
func (a *App) buildRemoteDocuments(ctx context.Context, byCategory map[string][]content.Block) {
	if len(byCategory) == 0 {
		log.Info().Msg("no categories detected; skipping remote documents")
		return
	}
	if a.docs == nil {
		log.Warn().Msg("document service not configured; skipping remote documents")
		return
	}
	var wg sync.WaitGroup
	for category, blocks := range byCategory {
		wg.Add(1)
		go func(category string, blocks []content.Block) {
			defer wg.Done()
			if err := a.docs.BuildCategory(ctx, category, blocks); err != nil {
				log.Warn().Err(err).Str("category", category).Msg("remote document abandoned")
			}
		}(category, blocks)
	}
	wg.Wait()
}
