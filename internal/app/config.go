package app

// Config holds runtime configuration for the pipeline.
type Config struct {
	// Source
	SourceURL string
	Pages     int

	// Translation
	TargetLang string
	// TranslatorBackend selects "google" (web endpoint, default) or "chat"
	// (OpenAI-compatible model).
	TranslatorBackend string
	LLMBaseURL        string
	LLMModel          string
	LLMAPIKey         string

	// Dedup ledger
	LedgerPath string

	// Remote document service
	DocsToken   string
	DocsBaseURL string

	// Delivery
	BotToken  string
	ChannelID string

	// Rendering
	FontPath string

	// Behavior
	Workers int
	Verbose bool
}
