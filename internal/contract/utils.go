package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Watchability label constants.
const (
	MustWatchValue = "Must Watch" // Must-watch game
	GreatValue     = "Great"      // Great game
	SolidValue     = "Solid"      // Solid game
	SkippableValue = "Skippable"  // Skippable game
)

// Color variables for console output.
var (
	MustWatchColor = color.New(color.FgGreen, color.Bold) // mustWatchColor marks the games to clear a schedule for.
	GreatColor     = color.New(color.FgCyan, color.Bold)  // greatColor marks well-above-average games.
	SolidColor     = color.New(color.FgYellow)            // solidColor marks average, dependable games.
	SkippableColor = color.New(color.FgWhite)             // skippableColor marks forgettable games.
)

// GetPlainLabel returns a plain text watchability label based on the game's
// composite watch index in [0,1]. This is the core logic used for CSV, JSON,
// and table printing.
func GetPlainLabel(index float64) string {
	switch {
	case index >= 0.75:
		return MustWatchValue
	case index >= 0.6:
		return GreatValue
	case index >= 0.45:
		return SolidValue
	default:
		return SkippableValue
	}
}

// GetColorLabel returns a colored watchability label for console output.
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(index float64) string {
	text := GetPlainLabel(index)

	switch text {
	case MustWatchValue:
		return MustWatchColor.Sprint(text)
	case GreatValue:
		return GreatColor.Sprint(text)
	case SolidValue:
		return SolidColor.Sprint(text)
	default: // "Skippable"
		return SkippableColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the
// response cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".watchdex_cache.db"
	}
	return filepath.Join(homeDir, ".watchdex_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".watchdex_runs.db"
	}
	return filepath.Join(homeDir, ".watchdex_runs.db")
}

// TruncateName truncates a display name to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 to ensure there's space for both the "..."
// and at least one character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
