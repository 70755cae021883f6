package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Top-N bounds for the ranked tables.
const (
	MinTopN     = 5
	MaxTopN     = 40
	DefaultTopN = 10
)

type Config struct {
	LogLevel     slog.Level
	TopN         int
	BusinessDays bool // default state of the business-days-only flag
}

func FromEnv() Config {
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	topN := DefaultTopN
	if v, err := strconv.Atoi(os.Getenv("REPORT_TOP_N")); err == nil {
		topN = v
	}
	return Config{
		LogLevel:     lvl,
		TopN:         ClampTopN(topN),
		BusinessDays: envOr("BUSINESS_DAYS_ONLY", "true") != "false",
	}
}

// ClampTopN bounds a requested top-N to the supported range.
func ClampTopN(n int) int {
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
