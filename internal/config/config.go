package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the cinevec service configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Model     ModelConfig     `yaml:"model"`
	Vectorize VectorizeConfig `yaml:"vectorize"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ModelConfig holds vocabulary model settings.
type ModelConfig struct {
	Path            string  `yaml:"path"` // local model file
	MaxFeatures     int     `yaml:"max_features"`
	MinDocFreq      int     `yaml:"min_doc_freq"`
	MaxDocFreqRatio float64 `yaml:"max_doc_freq_ratio"`
	NGramMin        int     `yaml:"ngram_min"`
	NGramMax        int     `yaml:"ngram_max"`
	SublinearTF     *bool   `yaml:"sublinear_tf"` // default: true
}

// VectorizeConfig holds vector generation settings.
type VectorizeConfig struct {
	Parallelism int `yaml:"parallelism"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Model.Path == "" {
		c.Model.Path = "models/tfidf.json"
	}
	if c.Model.MaxFeatures <= 0 {
		c.Model.MaxFeatures = 512
	}
	if c.Model.MinDocFreq <= 0 {
		c.Model.MinDocFreq = 2
	}
	if c.Model.MaxDocFreqRatio <= 0 {
		c.Model.MaxDocFreqRatio = 0.7
	}
	if c.Model.NGramMin <= 0 {
		c.Model.NGramMin = 1
	}
	if c.Model.NGramMax <= 0 {
		c.Model.NGramMax = 2
	}
	if c.Model.SublinearTF == nil {
		sublinear := true
		c.Model.SublinearTF = &sublinear
	}
	if c.Vectorize.Parallelism <= 0 {
		c.Vectorize.Parallelism = 8
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Model.MaxDocFreqRatio > 1 {
		return fmt.Errorf("model.max_doc_freq_ratio must be in (0, 1], got %g", c.Model.MaxDocFreqRatio)
	}
	if c.Model.NGramMin > c.Model.NGramMax {
		return fmt.Errorf(
			"model.ngram_min must not exceed model.ngram_max, got %d > %d",
			c.Model.NGramMin, c.Model.NGramMax,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
