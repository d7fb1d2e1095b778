// Package config provides reusable helpers for loading configuration from
// environment variables with validation, metrics, and fail-open fallback to
// defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Result is the outcome of loading one configuration value. Value holds the
// parsed environment value, or the default when the variable was unset or
// failed parsing/validation. FallbackApplied is true only in the failure
// case; an unset variable silently uses the default.
type Result[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

// fallback builds a Result carrying the default value and a warning.
func fallback[T any](envKey, raw string, err error, defaultValue T) Result[T] {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, err, defaultValue)
	return Result[T]{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}

// load reads envKey and runs it through parse and validate. Unset variables
// return the default without a warning; parse or validation failures return
// the default with FallbackApplied set.
func load[T any](envKey string, defaultValue T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return Result[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err != nil {
		return fallback(envKey, raw, err, defaultValue)
	}

	if validate != nil {
		if err := validate(value); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}

	return Result[T]{Value: value}
}

// LoadEnvString loads a string without validation, returning the default
// when the variable is unset.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback loads a string with validation. The validator may be
// nil to accept any non-empty value.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) Result[string] {
	return load(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a time.Duration (Go duration syntax, e.g. "30m").
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) Result[time.Duration] {
	return load(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvInt loads an integer.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) Result[int] {
	return load(envKey, defaultValue, strconv.Atoi, validator)
}

// LoadEnvBool loads a boolean using strconv.ParseBool semantics
// ("1", "t", "true", "0", "f", "false", case-insensitive variants).
func LoadEnvBool(envKey string, defaultValue bool) Result[bool] {
	return load(envKey, defaultValue, strconv.ParseBool, nil)
}
