package config

import (
	"errors"
	"fmt"
	"unicode"
)

var (
	// ErrNoDefault is returned when no default value exists for a config key.
	ErrNoDefault = errors.New("no default exists")

	// ErrInvalidKey is returned when a config key contains invalid characters.
	ErrInvalidKey = errors.New("invalid config key")
)

// Entry represents a single configuration entry.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries, one per key.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "log_level",
			Value:       d.LogLevel,
			Description: "Log level: debug, info, warn or error",
		},

		// Search
		{
			Key:         "search.limit",
			Value:       d.Search.Limit,
			Description: "Maximum course suggestions shown per search",
		},

		// Extraction
		{
			Key:         "extract.proximity_window",
			Value:       d.Extract.ProximityWindow,
			Description: "Fragments searched for a section after a course code",
		},
		{
			Key:         "extract.line_lookahead",
			Value:       d.Extract.LineLookahead,
			Description: "Lines searched for a section after a course line",
		},
		{
			Key:         "extract.token_window",
			Value:       d.Extract.TokenWindow,
			Description: "Tokens searched for a section after a course token",
		},
		{
			Key:         "extract.page_retries",
			Value:       d.Extract.PageRetries,
			Description: "Attempts made to read each routine page",
		},

		// Export
		{
			Key:         "export.paper",
			Value:       d.Export.Paper,
			Description: "Paper size of the printable schedule: A4P, A4L, LetterP or LetterL",
		},
		{
			Key:         "export.title",
			Value:       d.Export.Title,
			Description: "Title printed at the top of the schedule",
		},
		{
			Key:         "export.footer",
			Value:       d.Export.Footer,
			Description: "Footer line printed on every page",
		},
		{
			Key:         "export.dir",
			Value:       d.Export.Dir,
			Description: "Output directory for schedules (supports ${ENV_VAR}; empty uses the home exports dir)",
		},
	}
}

// GetDefault returns the default value for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}
