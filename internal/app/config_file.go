package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flag namespace; explicit flags take precedence over file
// values.
type FileConfig struct {
	Source struct {
		URL   string `yaml:"url"`
		Pages int    `yaml:"pages"`
	} `yaml:"source"`

	Translate struct {
		Target  string `yaml:"target"`
		Backend string `yaml:"backend"`
		LLM     struct {
			BaseURL string `yaml:"base"`
			Model   string `yaml:"model"`
			APIKey  string `yaml:"key"`
		} `yaml:"llm"`
	} `yaml:"translate"`

	Ledger struct {
		Path string `yaml:"path"`
	} `yaml:"ledger"`

	Docs struct {
		Token string `yaml:"token"`
		Base  string `yaml:"base"`
	} `yaml:"docs"`

	Telegram struct {
		Token   string `yaml:"token"`
		Channel string `yaml:"channel"`
	} `yaml:"telegram"`

	Render struct {
		Font string `yaml:"font"`
	} `yaml:"render"`

	Workers int  `yaml:"workers"`
	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads and parses the YAML config at path.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// ApplyFileConfig merges file values into cfg, filling only fields the flags
// left at their zero value.
func ApplyFileConfig(fc FileConfig, cfg *Config) {
	if cfg.SourceURL == "" {
		cfg.SourceURL = fc.Source.URL
	}
	if cfg.Pages == 0 {
		cfg.Pages = fc.Source.Pages
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = fc.Translate.Target
	}
	if cfg.TranslatorBackend == "" {
		cfg.TranslatorBackend = fc.Translate.Backend
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.Translate.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.Translate.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.Translate.LLM.APIKey
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = fc.Ledger.Path
	}
	if cfg.DocsToken == "" {
		cfg.DocsToken = fc.Docs.Token
	}
	if cfg.DocsBaseURL == "" {
		cfg.DocsBaseURL = fc.Docs.Base
	}
	if cfg.BotToken == "" {
		cfg.BotToken = fc.Telegram.Token
	}
	if cfg.ChannelID == "" {
		cfg.ChannelID = fc.Telegram.Channel
	}
	if cfg.FontPath == "" {
		cfg.FontPath = fc.Render.Font
	}
	if cfg.Workers == 0 {
		cfg.Workers = fc.Workers
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
