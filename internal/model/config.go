package model

import "time"

// Config is the complete pressparse configuration
type Config struct {
	Parser       ParserConfig       `yaml:"parser" mapstructure:"parser"`
	Quality      QualityConfig      `yaml:"quality" mapstructure:"quality"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// ParserConfig holds the empirically tuned extraction thresholds
type ParserConfig struct {
	PatternsFile            string `yaml:"patterns_file,omitempty" mapstructure:"patterns_file"` // Optional YAML overrides for titles/verbs/states
	CombineDistance         int    `yaml:"combine_distance" mapstructure:"combine_distance"`
	AttributionWindow       int    `yaml:"attribution_window" mapstructure:"attribution_window"`
	PronounLookback         int    `yaml:"pronoun_lookback" mapstructure:"pronoun_lookback"`
	MultiParagraphScanLimit int    `yaml:"multi_paragraph_scan_limit" mapstructure:"multi_paragraph_scan_limit"`
	HeadlineCandidates      int    `yaml:"headline_candidates" mapstructure:"headline_candidates"`
	LooseDatelineLines      int    `yaml:"loose_dateline_lines" mapstructure:"loose_dateline_lines"`
	MinParagraphLength      int    `yaml:"min_paragraph_length" mapstructure:"min_paragraph_length"`
}

// QualityConfig holds the quality score penalties. A nil field keeps the
// built-in deduction; 0 turns the check's penalty off.
type QualityConfig struct {
	MissingHeader   *int `yaml:"missing_header,omitempty" mapstructure:"missing_header"`
	NoQuotes        *int `yaml:"no_quotes,omitempty" mapstructure:"no_quotes"`
	WeakHeadline    *int `yaml:"weak_headline,omitempty" mapstructure:"weak_headline"`
	ShortBody       *int `yaml:"short_body,omitempty" mapstructure:"short_body"`
	MissingDateline *int `yaml:"missing_dateline,omitempty" mapstructure:"missing_dateline"`
	MostlyUnknown   *int `yaml:"mostly_unknown,omitempty" mapstructure:"mostly_unknown"`
	HalfUnknown     *int `yaml:"half_unknown,omitempty" mapstructure:"half_unknown"`
	SingleQuote     *int `yaml:"single_quote,omitempty" mapstructure:"single_quote"`
	SomeUnknown     *int `yaml:"some_unknown,omitempty" mapstructure:"some_unknown"`
	BriefBody       *int `yaml:"brief_body,omitempty" mapstructure:"brief_body"`
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// HTTPConfig configures release page fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the fetch cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures batch workers
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig configures per-domain fetch rate limits
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// LLMConfig configures the optional editor-notes provider
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "" (disabled) or "openai"
	Model       string `yaml:"model" mapstructure:"model"`
	APIKey      string `yaml:"-" mapstructure:"api_key"`
	BaseURL     string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictQuote bool   `yaml:"strict_quotes" mapstructure:"strict_quotes"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	IncludeFields bool `yaml:"include_fields" mapstructure:"include_fields"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			CombineDistance:         300,
			AttributionWindow:       200,
			PronounLookback:         500,
			MultiParagraphScanLimit: 10,
			HeadlineCandidates:      5,
			LooseDatelineLines:      10,
			MinParagraphLength:      20,
		},
		Quality: QualityConfig{
			MissingHeader:   Int(30),
			NoQuotes:        Int(40),
			WeakHeadline:    Int(25),
			ShortBody:       Int(35),
			MissingDateline: Int(15),
			MostlyUnknown:   Int(20),
			HalfUnknown:     Int(10),
			SingleQuote:     Int(5),
			SomeUnknown:     Int(5),
			BriefBody:       Int(5),
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "pressparse/0.1 (+https://github.com/ppiankov/pressparse)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".pressparse-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Timeout:     30,
			MaxTokens:   800,
			StrictQuote: true,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			IncludeFields: true,
		},
	}
}
