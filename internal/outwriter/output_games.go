package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/internal/parquet"
	"github.com/courtside/watchdex/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankedGames outputs the ranked batch, dispatching on the configured
// output format. The batch arrives already sorted descending by watch
// index; writers preserve that order.
func WriteRankedGames(games []schema.RankedGame, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeGameJSONResults(games, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeGameCSVResults(games, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteRankedGamesParquet(games, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Printf("Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table of the top N games
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGameTable(games, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeGameJSONResults handles opening the file and calling the JSON writer.
func writeGameJSONResults(games []schema.RankedGame, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type jsonRankedGame struct {
			Rank  int    `json:"rank"`
			Label string `json:"label"`
			schema.RankedGame
		}
		output := make([]jsonRankedGame, len(games))
		for i, g := range games {
			output[i] = jsonRankedGame{
				Rank:       i + 1,
				Label:      contract.GetPlainLabel(g.WatchIndex),
				RankedGame: g,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeGameCSVResults handles opening the file and calling the CSV writer.
func writeGameCSVResults(games []schema.RankedGame, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, gameCSVHeader(), func(csvWriter *csv.Writer) error {
			for i, g := range games {
				if err := csvWriter.Write(gameCSVRow(i+1, &g, fmtFloat, intFmt)); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// gameCSVHeader returns the full output contract: raw GameRecord columns,
// percentile-rank columns, sub-indices and the composite index.
func gameCSVHeader() []string {
	header := []string{
		"rank",
		"game_id",
		"game_date",
		"home_team",
		"away_team",
		"home_score",
		"away_score",
		"total_score",
		"pts_per_poss",
		"threes_made",
		"threes_attempted",
		"three_pt_pct",
		"avg_ts",
		"lead_changes",
		"score_diff",
		"closeness",
		"clutch_time",
		"overtime",
		"dunks",
		"blocks",
		"turnovers",
		"steals",
		"free_throws_attempted",
		"net_rating_diff",
		"star_player",
		"max_game_score",
	}
	for _, key := range schema.RankedMetrics {
		header = append(header, schema.RankColumnPrefix+string(key))
	}
	return append(header,
		"scoring",
		"competitiveness",
		"highlights",
		"pace",
		"star_power",
		"watch_index",
		"label",
	)
}

func gameCSVRow(rank int, g *schema.RankedGame, fmtFloat func(float64) string, intFmt string) []string {
	row := []string{
		strconv.Itoa(rank),
		g.GameID,
		g.GameDate.Format(contract.DateFormat),
		g.HomeTeam,
		g.AwayTeam,
		fmt.Sprintf(intFmt, g.HomeScore),
		fmt.Sprintf(intFmt, g.AwayScore),
		fmt.Sprintf(intFmt, g.TotalScore),
		fmtFloat(g.PtsPerPoss),
		fmt.Sprintf(intFmt, g.ThreesMade),
		fmt.Sprintf(intFmt, g.ThreesAttempted),
		fmtFloat(g.ThreePtPct),
		fmtFloat(g.AvgTS),
		fmt.Sprintf(intFmt, g.LeadChanges),
		fmt.Sprintf(intFmt, g.ScoreDiff),
		fmtFloat(g.Closeness),
		fmtFloat(g.ClutchTime),
		fmt.Sprintf(intFmt, g.Overtime),
		fmt.Sprintf(intFmt, g.Dunks),
		fmt.Sprintf(intFmt, g.Blocks),
		fmt.Sprintf(intFmt, g.Turnovers),
		fmt.Sprintf(intFmt, g.Steals),
		fmt.Sprintf(intFmt, g.FreeThrowsAttempted),
		fmtFloat(g.NetRatingDiff),
		g.StarPlayer,
		fmtFloat(g.MaxGameScore),
	}
	for _, key := range schema.RankedMetrics {
		row = append(row, fmtFloat(g.Ranks[key]))
	}
	return append(row,
		fmtFloat(g.Scoring),
		fmtFloat(g.Competitiveness),
		fmtFloat(g.Highlights),
		fmtFloat(g.Pace),
		fmtFloat(g.StarPower),
		fmtFloat(g.WatchIndex),
		contract.GetPlainLabel(g.WatchIndex),
	)
}

// getMaxStarNameWidth calculates the maximum width for star-player names in
// table output based on terminal width and the fixed columns.
func getMaxStarNameWidth(cfg *contract.Config) int {
	// Reserve space for the fixed columns with table formatting:
	// Rank + Date + Matchup + Final + six index columns + Label,
	// with borders, separators, and padding.
	baseWidth := 100

	available := terminalWidth(cfg) - baseWidth
	if available < 12 {
		// Minimum reasonable name width
		return 12
	}
	if available > 28 {
		// Maximum name width to prevent one long name stretching the table
		return 28
	}
	return available
}

// writeGameTable generates and writes the human-readable table, limited to
// the configured result count.
func writeGameTable(games []schema.RankedGame, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	shown := games
	if len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{
		"Rank", "Date", "Matchup", "Final", "Scoring", "Comp", "High", "Pace", "Star", "Index", "Label", "Star Player",
	})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	starWidth := getMaxStarNameWidth(cfg)

	var data [][]string
	for i, g := range shown {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			g.GameDate.Format(contract.DateFormat),
			g.Matchup(),
			fmt.Sprintf("%d-%d", g.AwayScore, g.HomeScore),
			fmtFloat(g.Scoring),
			fmtFloat(g.Competitiveness),
			fmtFloat(g.Highlights),
			fmtFloat(g.Pace),
			fmtFloat(g.StarPower),
			fmtFloat(g.WatchIndex),
			label(g.WatchIndex),
			contract.TruncateName(g.StarPlayer, starWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d of %d games by watch index\n", len(shown), len(games)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Ranking completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
