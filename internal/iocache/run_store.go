package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// Table names for run tracking.
const (
	rankRunsTable   = "watchdex_rank_runs"
	gameScoresTable = "watchdex_game_scores"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunsDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{
			db:      nil,
			backend: backend,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// Create the table schemas
	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{
		db:      db,
		backend: backend,
	}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{rankRunsTable, getCreateRankRunsQuery(backend)},
		{gameScoresTable, getCreateGameScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRankRunsQuery returns the CREATE TABLE query for watchdex_rank_runs.
func getCreateRankRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(rankRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				games_ranked INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				games_ranked INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				games_ranked INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateGameScoresQuery returns the CREATE TABLE query for watchdex_game_scores.
func getCreateGameScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(gameScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				game_rank INT NOT NULL,
				game_id VARCHAR(32) NOT NULL,
				game_date DATETIME(6) NOT NULL,
				home_team VARCHAR(8) NOT NULL,
				away_team VARCHAR(8) NOT NULL,
				home_score INT NOT NULL,
				away_score INT NOT NULL,
				scoring DOUBLE NOT NULL,
				competitiveness DOUBLE NOT NULL,
				highlights DOUBLE NOT NULL,
				pace DOUBLE NOT NULL,
				star_power DOUBLE NOT NULL,
				watch_index DOUBLE NOT NULL,
				PRIMARY KEY (run_id, game_id)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				game_rank INT NOT NULL,
				game_id TEXT NOT NULL,
				game_date TIMESTAMPTZ NOT NULL,
				home_team TEXT NOT NULL,
				away_team TEXT NOT NULL,
				home_score INT NOT NULL,
				away_score INT NOT NULL,
				scoring DOUBLE PRECISION NOT NULL,
				competitiveness DOUBLE PRECISION NOT NULL,
				highlights DOUBLE PRECISION NOT NULL,
				pace DOUBLE PRECISION NOT NULL,
				star_power DOUBLE PRECISION NOT NULL,
				watch_index DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, game_id)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				game_rank INTEGER NOT NULL,
				game_id TEXT NOT NULL,
				game_date TEXT NOT NULL,
				home_team TEXT NOT NULL,
				away_team TEXT NOT NULL,
				home_score INTEGER NOT NULL,
				away_score INTEGER NOT NULL,
				scoring REAL NOT NULL,
				competitiveness REAL NOT NULL,
				highlights REAL NOT NULL,
				pace REAL NOT NULL,
				star_power REAL NOT NULL,
				watch_index REAL NOT NULL,
				PRIMARY KEY (run_id, game_id)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new ranking run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(start time.Time, params map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize run params to JSON
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal run params: %w", err)
	}

	quotedTableName := quoteTableName(rankRunsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, start, string(paramsJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(start, rs.backend), string(paramsJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert ranking run: %w", err)
	}

	return runID, nil
}

// EndRun closes a run row with its end time and game count.
func (rs *RunStoreImpl) EndRun(runID int64, end time.Time, gamesRanked int) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(rankRunsTable, rs.backend)

	var query string
	var args []any
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, games_ranked = $2 WHERE run_id = $3`, quotedTableName)
		args = []any{end, gamesRanked, runID}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, games_ranked = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(end, rs.backend), gamesRanked, runID}
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update ranking run: %w", err)
	}

	return nil
}

// RecordScores persists the ranked results of a run.
func (rs *RunStoreImpl) RecordScores(runID int64, games []schema.RankedGame) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(gameScoresTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, game_rank, game_id, game_date, home_team, away_team,
			                home_score, away_score, scoring, competitiveness, highlights,
			                pace, star_power, watch_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, game_rank, game_id, game_date, home_team, away_team,
			                home_score, away_score, scoring, competitiveness, highlights,
			                pace, star_power, watch_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	for i, g := range games {
		args := []any{
			runID, i + 1, g.GameID, formatTime(g.GameDate, rs.backend), g.HomeTeam, g.AwayTeam,
			g.HomeScore, g.AwayScore, g.Scoring, g.Competitiveness, g.Highlights,
			g.Pace, g.StarPower, g.WatchIndex,
		}
		if rs.backend == schema.PostgreSQLBackend {
			args[3] = g.GameDate
		}
		if _, err := rs.db.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert game score for %s: %w", g.GameID, err)
		}
	}

	return nil
}

// Runs lists the most recent runs, newest first.
func (rs *RunStoreImpl) Runs(limit int) ([]contract.RunInfo, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(rankRunsTable, rs.backend)
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, COALESCE(games_ranked, 0), COALESCE(config_params, '')
		FROM %s ORDER BY run_id DESC`, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []contract.RunInfo
	for rows.Next() {
		var record contract.RunInfo

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.GamesRanked, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan ranking run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.GamesRanked, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan ranking run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking runs: %w", err)
	}

	return results, nil
}

// Scores lists the per-game rows of a run in rank order.
// A runID of 0 means the latest run.
func (rs *RunStoreImpl) Scores(runID int64) ([]contract.GameScoreRow, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	if runID == 0 {
		latest, err := rs.latestRunID()
		if err != nil {
			return nil, err
		}
		if latest == 0 {
			return nil, nil
		}
		runID = latest
	}

	quotedTableName := quoteTableName(gameScoresTable, rs.backend)
	placeholder := "?"
	if rs.backend == schema.PostgreSQLBackend {
		placeholder = "$1"
	}
	query := fmt.Sprintf(`SELECT run_id, game_rank, game_id, game_date, home_team, away_team,
		home_score, away_score, scoring, competitiveness, highlights, pace, star_power, watch_index
		FROM %s WHERE run_id = %s ORDER BY game_rank`, quotedTableName, placeholder)

	rows, err := rs.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []contract.GameScoreRow
	for rows.Next() {
		var record contract.GameScoreRow

		switch rs.backend {
		case schema.SQLiteBackend:
			var gameDateStr string
			if err := rows.Scan(&record.RunID, &record.Rank, &record.GameID, &gameDateStr,
				&record.HomeTeam, &record.AwayTeam, &record.HomeScore, &record.AwayScore,
				&record.Scoring, &record.Competitiveness, &record.Highlights,
				&record.Pace, &record.StarPower, &record.WatchIndex); err != nil {
				return nil, fmt.Errorf("failed to scan game score: %w", err)
			}
			gameDate, err := time.Parse(time.RFC3339Nano, gameDateStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse game_date: %w", err)
			}
			record.GameDate = gameDate
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Rank, &record.GameID, &record.GameDate,
				&record.HomeTeam, &record.AwayTeam, &record.HomeScore, &record.AwayScore,
				&record.Scoring, &record.Competitiveness, &record.Highlights,
				&record.Pace, &record.StarPower, &record.WatchIndex); err != nil {
				return nil, fmt.Errorf("failed to scan game score: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game scores: %w", err)
	}

	return results, nil
}

// latestRunID returns the id of the most recent run, or 0 when none exist.
func (rs *RunStoreImpl) latestRunID() (int64, error) {
	quotedTableName := quoteTableName(rankRunsTable, rs.backend)
	query := fmt.Sprintf("SELECT COALESCE(MAX(run_id), 0) FROM %s", quotedTableName)
	var id int64
	if err := rs.db.QueryRow(query).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get latest run id: %w", err)
	}
	return id, nil
}

// Clear removes all runs and scores.
func (rs *RunStoreImpl) Clear() error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	for _, table := range []string{gameScoresTable, rankRunsTable} {
		quotedTableName := quoteTableName(table, rs.backend)
		if _, err := rs.db.Exec(fmt.Sprintf("DELETE FROM %s", quotedTableName)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate representation for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
