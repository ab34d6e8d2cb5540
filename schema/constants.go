package schema

// Custom string types for type safety.
type (
	// MetricKey identifies a rankable metric column.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Metric keys for every column that receives a percentile rank.
const (
	MetricTotalScore   MetricKey = "total_score"
	MetricPtsPerPoss   MetricKey = "pts_per_poss"
	MetricThreesMade   MetricKey = "threes_made"
	MetricThreePtPct   MetricKey = "three_pt_pct"
	MetricAvgTS        MetricKey = "avg_ts"
	MetricLeadChanges  MetricKey = "lead_changes"
	MetricCloseness    MetricKey = "closeness"
	MetricClutchTime   MetricKey = "clutch_time"
	MetricOvertime     MetricKey = "overtime"
	MetricDunks        MetricKey = "dunks"
	MetricBlocks       MetricKey = "blocks"
	MetricTurnovers    MetricKey = "turnovers"
	MetricSteals       MetricKey = "steals"
	MetricFreeThrows   MetricKey = "free_throws_attempted"
	MetricMaxGameScore MetricKey = "max_game_score"
)

// RankedMetrics lists every metric that receives a percentile rank,
// in the order the rank columns appear in CSV output.
var RankedMetrics = []MetricKey{
	MetricTotalScore,
	MetricPtsPerPoss,
	MetricThreesMade,
	MetricThreePtPct,
	MetricAvgTS,
	MetricLeadChanges,
	MetricCloseness,
	MetricClutchTime,
	MetricOvertime,
	MetricDunks,
	MetricBlocks,
	MetricTurnovers,
	MetricSteals,
	MetricFreeThrows,
	MetricMaxGameScore,
}

// InvertedMetrics holds metrics whose percentile rank is flipped because a
// lower raw value is more desirable. Turnovers is a documented exception,
// not a general rule.
var InvertedMetrics = map[MetricKey]struct{}{
	MetricTurnovers: {},
}

// RankColumnPrefix prefixes percentile-rank columns in CSV/JSON output.
const RankColumnPrefix = "pr_"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
