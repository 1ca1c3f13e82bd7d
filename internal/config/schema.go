package config

// Config holds roomfinder configuration.
// Stored at: {home}/config.yaml
type Config struct {
	LogLevel string     `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Search   SearchCfg  `mapstructure:"search" yaml:"search"`
	Extract  ExtractCfg `mapstructure:"extract" yaml:"extract"`
	Export   ExportCfg  `mapstructure:"export" yaml:"export"`
}

// SearchCfg configures course suggestions.
type SearchCfg struct {
	Limit int `mapstructure:"limit" yaml:"limit"` // Suggestions shown per query
}

// ExtractCfg tunes course and section extraction from a class routine.
type ExtractCfg struct {
	ProximityWindow int `mapstructure:"proximity_window" yaml:"proximity_window"` // Fragments searched after a course code
	LineLookahead   int `mapstructure:"line_lookahead" yaml:"line_lookahead"`     // Lines searched after a course line
	TokenWindow     int `mapstructure:"token_window" yaml:"token_window"`         // Tokens searched after a course token
	PageRetries     int `mapstructure:"page_retries" yaml:"page_retries"`         // Attempts per page read
}

// ExportCfg configures the printable schedule.
type ExportCfg struct {
	Paper  string `mapstructure:"paper" yaml:"paper"` // A4P, A4L, LetterP, LetterL
	Title  string `mapstructure:"title" yaml:"title"`
	Footer string `mapstructure:"footer" yaml:"footer"`
	// Dir is where schedules are written (supports ${ENV_VAR} syntax).
	// Empty means {home}/exports.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Search: SearchCfg{
			Limit: 5,
		},
		Extract: ExtractCfg{
			ProximityWindow: 10,
			LineLookahead:   4,
			TokenWindow:     4,
			PageRetries:     3,
		},
		Export: ExportCfg{
			Paper:  "A4P",
			Title:  "Exam Schedule",
			Footer: "Good luck with your exams!",
		},
	}
}
