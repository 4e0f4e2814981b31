package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the compound splitter.
type Config struct {
	Careful CarefulConfig `yaml:"careful"`
	Brute   BruteConfig   `yaml:"brute"`
	Service ServiceConfig `yaml:"service"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// CarefulConfig holds the affix scheme lexicon and scoring settings.
type CarefulConfig struct {
	WordFile    string   `yaml:"word_file"`
	Delimiter   string   `yaml:"delimiter"`
	Column      int      `yaml:"column"`
	Language    string   `yaml:"language"`
	Languages   []string `yaml:"languages"` // accepted values of the lang parameter
	Profile     string   `yaml:"profile"`
	MinScore    float64  `yaml:"min_score"`
	Description string   `yaml:"description"`
}

// BruteConfig holds the pentagram scheme variants and fallback policy.
type BruteConfig struct {
	DefaultVariant   string                   `yaml:"default_variant"`
	Variants         map[string]VariantConfig `yaml:"variants"`
	Replacements     []Replacement            `yaml:"replacements"` // used by modernize_danish
	MissLimit        int                      `yaml:"miss_limit"`
	SentinelMissProb float64                  `yaml:"sentinel_miss_prob"`
	MissProb         float64                  `yaml:"miss_prob"`
	HyphenProb       float64                  `yaml:"hyphen_prob"`
	Description      string                   `yaml:"description"`
}

// VariantConfig lists the training files of a lexicon variant as
// "path[:preprocess]" entries. Paths may be doublestar globs.
type VariantConfig struct {
	DataFiles []string `yaml:"data_files"`
}

// Replacement is one ordered substring substitution.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// ServiceConfig holds HTTP service configuration.
type ServiceConfig struct {
	Addr           string        `yaml:"addr"`
	Origins        []string      `yaml:"origins"` // empty allows all
	EnableSecurity bool          `yaml:"enable_security"`
	APIKeys        []string      `yaml:"api_keys"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	DefaultMethod  string        `yaml:"default_method"`
	CacheSize      int           `yaml:"cache_size"`
	BatchLimit     int           `yaml:"batch_limit"` // concurrent words per text request
	MaxTextWords   int           `yaml:"max_text_words"`
}

// StoreConfig holds table store configuration.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Careful: CarefulConfig{
			WordFile:    "data/words.csv",
			Delimiter:   ";",
			Column:      0,
			Language:    "da",
			Languages:   []string{"da"},
			Profile:     "careful",
			MinScore:    -0.2,
			Description: "Split based on prefix, infix and suffix n-gram probabilities, verified against the lemma list.",
		},
		Brute: BruteConfig{
			DefaultVariant: "nudansk",
			Variants: map[string]VariantConfig{
				"nudansk":      {DataFiles: []string{"data/nudansk.txt"}},
				"yngrenydansk": {DataFiles: []string{"data/yngrenydansk.txt:modernize_danish"}},
			},
			Replacements: []Replacement{
				{Old: "aa", New: "å"},
				{Old: "Aa", New: "Å"},
			},
			MissLimit:        5,
			SentinelMissProb: 1e-10,
			MissProb:         1e-8,
			HyphenProb:       1.0,
			Description:      "Split based on positional pentagram probabilities over segmented compounds.",
		},
		Service: ServiceConfig{
			Addr:           ":8000",
			RequestTimeout: 10 * time.Second,
			DefaultMethod:  "mixed",
			CacheSize:      10000,
			BatchLimit:     8,
			MaxTextWords:   5000,
		},
		Store: StoreConfig{
			Path: filepath.Join(".dslsplit", "tables.db"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for dslsplit.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "dslsplit.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".dslsplit", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads dir/.env when present and overlays ENABLE_SECURITY and
// DSLSPLIT_API_KEYS (comma separated) onto the service section. Variables
// already set in the process environment win over the file.
func (c *Config) ApplyEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv("ENABLE_SECURITY"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.Service.EnableSecurity = enabled
	}
	if v, ok := os.LookupEnv("DSLSPLIT_API_KEYS"); ok {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		c.Service.APIKeys = keys
	}
	return nil
}

// StorePath returns the table database path, resolved against dir.
func (c *Config) StorePath(dir string) string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(dir, c.Store.Path)
}

// EnsureStoreDir ensures the directory holding the table database exists.
func (c *Config) EnsureStoreDir(dir string) error {
	return os.MkdirAll(filepath.Dir(c.StorePath(dir)), 0755)
}

// VariantNames returns the configured brute variants, sorted.
func (c *Config) VariantNames() []string {
	names := make([]string, 0, len(c.Brute.Variants))
	for name := range c.Brute.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
