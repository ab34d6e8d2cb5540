package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewFixture() []schema.ScoreboardGame {
	return []schema.ScoreboardGame{
		{GameID: "0022400050", HomeTeam: "BOS", AwayTeam: "NYK", StatusText: "7:30 pm ET"},
		{GameID: "0022400051", HomeTeam: "LAL", AwayTeam: "GSW", StatusText: "Q2 5:12"},
	}
}

// TestWritePreviewCSV checks the scoreboard CSV columns.
func TestWritePreviewCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "preview.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outputFile}

	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WritePreview(previewFixture(), date, cfg))

	f, err := os.Open(outputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"game_id", "away_team", "home_team", "status"}, rows[0])
	assert.Equal(t, []string{"0022400050", "NYK", "BOS", "7:30 pm ET"}, rows[1])
}

// TestWritePreviewJSON checks the date plus games envelope.
func TestWritePreviewJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "preview.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile}

	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WritePreview(previewFixture(), date, cfg))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded struct {
		Date  string `json:"date"`
		Games []struct {
			GameID     string
			StatusText string
		} `json:"games"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2025-01-15", decoded.Date)
	require.Len(t, decoded.Games, 2)
	assert.Equal(t, "0022400050", decoded.Games[0].GameID)
}

// TestWritePreviewTable checks the human-readable scoreboard.
func TestWritePreviewTable(t *testing.T) {
	var buf bytes.Buffer
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, writePreviewTable(previewFixture(), date, &buf))
	out := buf.String()

	assert.Contains(t, out, "Games on 2025-01-15")
	assert.Contains(t, out, "NYK @ BOS")
	assert.Contains(t, out, "GSW @ LAL")
	assert.Contains(t, out, "2 games scheduled")
}
