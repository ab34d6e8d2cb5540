package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/courtside/watchdex/core/algo"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteMetricsDefinitionsCSV checks the CSV metric catalog.
func TestWriteMetricsDefinitionsCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "metrics.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outputFile, Precision: 1}

	require.NoError(t, WriteMetricsDefinitions(algo.Definitions(), cfg))

	f, err := os.Open(outputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"name", "weight", "description", "inputs"}, rows[0])
	assert.Equal(t, "Competitiveness", rows[1][0])
	assert.Equal(t, "3.0", rows[1][1])
	assert.Contains(t, rows[1][3], "|", "inputs are pipe-joined")
}

// TestWriteMetricsDefinitionsText checks the human-readable catalog.
func TestWriteMetricsDefinitionsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMetricsText(&buf, algo.Definitions()))
	out := buf.String()

	assert.Contains(t, out, "Watch Index Sub-Indices")
	assert.Contains(t, out, "COMPETITIVENESS (weight 3.0)")
	assert.Contains(t, out, "SCORING (weight 2.0)")
	assert.Contains(t, out, "STARPOWER (weight 0.5)")
	assert.Contains(t, out, "Composite divisor: 8.0")
}
