// Package config provides settings for the fmsearch and bench binaries, loaded from
// environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// LoadDotEnv reads a .env file into the environment beforehand.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/viniciusth/fmindex"
)

// Settings holds index construction and runtime configuration.
type Settings struct {
	Index    IndexConfig
	Ingest   IngestConfig
	LogLevel slog.Level
}

// IndexConfig selects how the index is built.
type IndexConfig struct {
	Sort fmindex.SortStrategy
	Rank fmindex.RankBackend
	LCP  bool
}

// IngestConfig controls sequence normalization.
type IngestConfig struct {
	FoldCase  bool
	Normalize bool
}

// LoadDotEnv loads the given .env files (default ".env") without overriding variables
// already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// New builds settings from environment variables.
// Returns an error if a variable holds an invalid value.
func New() (Settings, error) {
	sort, err := getEnvParsed("FMINDEX_SORT", fmindex.SortInduced, fmindex.ParseSortStrategy)
	if err != nil {
		return Settings{}, err
	}

	rank, err := getEnvParsed("FMINDEX_RANK", fmindex.RankDense, fmindex.ParseRankBackend)
	if err != nil {
		return Settings{}, err
	}

	lcp, err := getEnvBool("FMINDEX_LCP", false)
	if err != nil {
		return Settings{}, err
	}

	foldCase, err := getEnvBool("FMINDEX_FOLD_CASE", false)
	if err != nil {
		return Settings{}, err
	}

	normalize, err := getEnvBool("FMINDEX_NORMALIZE", true)
	if err != nil {
		return Settings{}, err
	}

	level, err := getEnvParsed("FMINDEX_LOG_LEVEL", slog.LevelInfo, parseLevel)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Index:    IndexConfig{Sort: sort, Rank: rank, LCP: lcp},
		Ingest:   IngestConfig{FoldCase: foldCase, Normalize: normalize},
		LogLevel: level,
	}, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %q (expected a boolean)", key, val)
	}
	return parsed, nil
}

func getEnvParsed[T any](key string, defaultVal T, parse func(string) (T, error)) (T, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := parse(val)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, err
	}
	return level, nil
}
