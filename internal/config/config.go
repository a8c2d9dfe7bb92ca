// internal/config/config.go
//
// Runtime configuration for the solver server and CLI.
// Responsibilities:
//   - Read environment variables (optionally from .env via godotenv in main)
//     with defaults for every value.
//   - Layer scoring weights from an optional YAML file over
//     solver.DefaultWeights().
//
// Environment variables:
//   PORT=5175                 LOG_LEVEL=info
//   DB_PATH=./data/solver.db  WORDS_FILE=            WORD_LENGTH=5
//   WEIGHTS_FILE=             RANK_WORKERS=0 (GOMAXPROCS)
//   RANK_TIMEOUT=5s           SUGGESTION_LIMIT=10    SESSION_TTL=30m
//   JWT_SECRET=dev_secret_change_me                  CLIENT_ORIGIN=http://localhost:5173
//   RATE_LIMIT_RPS=5          RATE_LIMIT_BURST=10

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-helper/internal/solver"
)

// Config holds every tunable of the service.
type Config struct {
	Port     string
	LogLevel string

	DBPath      string
	WordsFile   string
	WordLength  int
	WeightsFile string

	RankWorkers     int
	RankTimeout     time.Duration
	SuggestionLimit int
	SessionTTL      time.Duration

	JWTSecret    string
	ClientOrigin string

	RateLimitRPS   float64
	RateLimitBurst int

	Weights solver.Weights
}

// FromEnv reads the configuration from the environment and loads the
// weights file if one is named.
func FromEnv() (Config, error) {
	var errs []error
	c := Config{
		Port:            getEnv("PORT", "5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBPath:          getEnv("DB_PATH", "./data/solver.db"),
		WordsFile:       os.Getenv("WORDS_FILE"),
		WordLength:      getInt("WORD_LENGTH", 5, &errs),
		WeightsFile:     os.Getenv("WEIGHTS_FILE"),
		RankWorkers:     getInt("RANK_WORKERS", 0, &errs),
		RankTimeout:     getDuration("RANK_TIMEOUT", 5*time.Second, &errs),
		SuggestionLimit: getInt("SUGGESTION_LIMIT", 10, &errs),
		SessionTTL:      getDuration("SESSION_TTL", 30*time.Minute, &errs),
		JWTSecret:       getEnv("JWT_SECRET", "dev_secret_change_me"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 5, &errs),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 10, &errs),
		Weights:         solver.DefaultWeights(),
	}
	if err := errors.Join(errs...); err != nil {
		return c, err
	}

	if c.WeightsFile != "" {
		w, err := LoadWeights(c.WeightsFile)
		if err != nil {
			return c, err
		}
		c.Weights = w
	}
	return c, c.Validate()
}

// Validate checks ranges that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	if c.WordLength < 1 || c.WordLength > solver.MaxWordLength {
		return fmt.Errorf("WORD_LENGTH must be 1..%d, got %d", solver.MaxWordLength, c.WordLength)
	}
	if c.RankTimeout <= 0 {
		return fmt.Errorf("RANK_TIMEOUT must be positive, got %s", c.RankTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return c.Weights.Validate()
}

// LoadWeights reads a YAML file of weights. Keys left out keep their
// default value.
//
//	entropy: 1.0
//	frequency: 0.5
//	vowel_target: 0.4
func LoadWeights(path string) (solver.Weights, error) {
	w := solver.DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights: %w", err)
	}
	if err := yaml.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("parse weights %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("weights %s: %w", path, err)
	}
	return w, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int, errs *[]error) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}

func getFloat(k string, def float64, errs *[]error) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return f
}

func getDuration(k string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return d
}
