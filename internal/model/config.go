package model

// Config holds the complete salesight configuration
type Config struct {
	Data         DataConfig        `yaml:"data" mapstructure:"data"`
	QA           QAConfig          `yaml:"qa" mapstructure:"qa"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// DataConfig points at the sales dataset
type DataConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // CSV file with the sales schema
}

// QAConfig tunes the question-answering layer
type QAConfig struct {
	SampleRows int    `yaml:"sample_rows" mapstructure:"sample_rows"` // Rows sent to the assistant as context
	Currency   string `yaml:"currency" mapstructure:"currency"`       // Symbol prefixed to amounts
}

// LLMConfig configures the optional fallback assistant
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, gemini, "" (disabled)
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	HTTPProxy   string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy  string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy     string  `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls caching of assistant answers
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL int    `yaml:"memory_ttl" mapstructure:"memory_ttl"` // seconds
	DiskDir   string `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   int    `yaml:"disk_ttl" mapstructure:"disk_ttl"` // seconds
}

// RateLimitConfig limits outbound assistant calls
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: "goods_sales_data.csv",
		},
		QA: QAConfig{
			SampleRows: 20,
			Currency:   "₹",
		},
		LLM: LLMConfig{
			Provider:    "", // Disabled by default
			Timeout:     30,
			MaxTokens:   500,
			Temperature: 0.3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * 60,
			DiskDir:   ".salesight-cache",
			DiskTTL:   24 * 60 * 60,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
