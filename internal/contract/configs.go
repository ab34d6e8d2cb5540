package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/watchdex/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	DefaultWorkers     = 1
	DefaultDaysBack    = 14
	DefaultRetries     = 3
	DefaultAPITimeout  = 30 * time.Second

	// DefaultPaceDelay is the minimum spacing between upstream calls.
	// It exists to respect the stats provider's rate limit.
	DefaultPaceDelay = 500 * time.Millisecond
)

// DateFormat is the calendar-date representation accepted on the CLI
// and used in CSV output.
const DateFormat = "2006-01-02"

// DateTimeFormat is the default timestamp representation.
var DateTimeFormat = time.RFC3339

// seasonPattern matches season labels such as "2024-25".
var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for a command run.
// This struct remains the "final, validated" config.
type Config struct {
	Season    string
	StartDate time.Time // Zero means unbounded
	EndDate   time.Time // Zero means unbounded
	MaxGames  int       // 0 means all games in the window
	DaysBack  int       // Lookback for the recent command

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	PreviewDate time.Time

	BaseURL    string
	APITimeout time.Duration
	Retries    int
	PaceDelay  time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Season   string `mapstructure:"season"`
	Start    string `mapstructure:"start"`
	End      string `mapstructure:"end"`
	Games    int    `mapstructure:"games"`
	DaysBack int    `mapstructure:"days-back"`

	Limit      int    `mapstructure:"limit"`
	Workers    int    `mapstructure:"workers"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`

	Date string `mapstructure:"date"` // preview date

	BaseURL    string `mapstructure:"base-url"`
	APITimeout string `mapstructure:"api-timeout"`
	Retries    int    `mapstructure:"retries"`
	PaceDelay  string `mapstructure:"pace-delay"`

	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`

	Color string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithWindow creates a copy of the Config with a new season and date window.
func (c *Config) CloneWithWindow(season string, start, end time.Time) *Config {
	clone := c.Clone()
	clone.Season = season
	clone.StartDate = start
	clone.EndDate = end
	return clone
}

// RunParams returns the run parameters recorded alongside a ranking run.
func (c *Config) RunParams() map[string]any {
	params := map[string]any{
		"season":  c.Season,
		"games":   c.MaxGames,
		"workers": c.Workers,
		"limit":   c.ResultLimit,
	}
	if !c.StartDate.IsZero() {
		params["start"] = c.StartDate.Format(DateFormat)
	}
	if !c.EndDate.IsZero() {
		params["end"] = c.EndDate.Format(DateFormat)
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSeasonAndWindow(cfg, input); err != nil {
		return err
	}
	if err := processClientSettings(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateSeason checks the YYYY-YY season label, including that the short
// year is the long year plus one.
func ValidateSeason(season string) error {
	m := seasonPattern.FindStringSubmatch(season)
	if m == nil {
		return fmt.Errorf("invalid season %q: expected format YYYY-YY (e.g. 2024-25)", season)
	}
	startYear, _ := strconv.Atoi(m[1])
	shortYear, _ := strconv.Atoi(m[2])
	if (startYear+1)%100 != shortYear {
		return fmt.Errorf("invalid season %q: second year must follow the first (e.g. 2024-25)", season)
	}
	return nil
}

// SeasonForDate returns the season label active on the given date.
// A season labeled Y-(Y+1) runs from October of year Y through September
// of year Y+1.
func SeasonForDate(t time.Time) string {
	year := t.Year()
	if t.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// validateSimpleInputs processes and validates all non-window fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Limit < 1 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	cfg.Workers = input.Workers

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10")
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative")
	}
	cfg.Width = input.Width

	if input.Games < 0 {
		return fmt.Errorf("games cannot be negative")
	}
	cfg.MaxGames = input.Games

	if input.DaysBack < 1 {
		return fmt.Errorf("days-back must be at least 1")
	}
	cfg.DaysBack = input.DaysBack

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors

	return nil
}

// processSeasonAndWindow validates the season label and the date window.
func processSeasonAndWindow(cfg *Config, input *ConfigRawInput) error {
	if input.Season != "" {
		if err := ValidateSeason(input.Season); err != nil {
			return err
		}
		cfg.Season = input.Season
	}

	var err error
	if input.Start != "" {
		cfg.StartDate, err = time.Parse(DateFormat, input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date %q: expected %s", input.Start, DateFormat)
		}
	}
	if input.End != "" {
		cfg.EndDate, err = time.Parse(DateFormat, input.End)
		if err != nil {
			return fmt.Errorf("invalid end date %q: expected %s", input.End, DateFormat)
		}
	}
	if !cfg.StartDate.IsZero() && !cfg.EndDate.IsZero() && cfg.EndDate.Before(cfg.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			cfg.EndDate.Format(DateFormat), cfg.StartDate.Format(DateFormat))
	}

	if input.Date != "" {
		cfg.PreviewDate, err = time.Parse(DateFormat, input.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected %s", input.Date, DateFormat)
		}
	}

	return nil
}

// processClientSettings validates the upstream client knobs.
func processClientSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseURL = input.BaseURL

	if input.Retries < 0 {
		return fmt.Errorf("retries cannot be negative")
	}
	cfg.Retries = input.Retries

	timeout, err := time.ParseDuration(input.APITimeout)
	if err != nil {
		return fmt.Errorf("invalid api-timeout %q: %w", input.APITimeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("api-timeout must be positive")
	}
	cfg.APITimeout = timeout

	delay, err := time.ParseDuration(input.PaceDelay)
	if err != nil {
		return fmt.Errorf("invalid pace-delay %q: %w", input.PaceDelay, err)
	}
	if delay < 0 {
		return fmt.Errorf("pace-delay cannot be negative")
	}
	cfg.PaceDelay = delay

	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and run-store backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
			return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
		}
		cfg.RunsDBConnect = input.RunsDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			return err
		}

		// Cache and run tracking must not share a SQLite file.
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
			cachePath := cfg.CacheDBConnect
			if cachePath == "" {
				cachePath = GetCacheDBFilePath()
			}
			runsPath := cfg.RunsDBConnect
			if runsPath == "" {
				runsPath = GetRunsDBFilePath()
			}
			if cachePath == runsPath {
				return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cachePath)
			}
		}
	}

	return nil
}
