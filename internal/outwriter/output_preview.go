package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePreview outputs the day's scoreboard, dispatching based on the
// configured output format.
func WritePreview(games []schema.ScoreboardGame, date time.Time, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writePreviewJSON(games, date, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writePreviewCSV(games, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePreviewTable(games, date, w)
		}, "Wrote table")
	}
	return nil
}

func writePreviewJSON(games []schema.ScoreboardGame, date time.Time, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type jsonPreview struct {
			Date  string                  `json:"date"`
			Games []schema.ScoreboardGame `json:"games"`
		}
		return writeJSON(w, jsonPreview{
			Date:  date.Format(contract.DateFormat),
			Games: games,
		})
	}, "Wrote JSON")
}

func writePreviewCSV(games []schema.ScoreboardGame, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"game_id", "away_team", "home_team", "status"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, g := range games {
				rec := []string{g.GameID, g.AwayTeam, g.HomeTeam, g.StatusText}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writePreviewTable generates and writes the human-readable scoreboard.
func writePreviewTable(games []schema.ScoreboardGame, date time.Time, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Games on %s\n", date.Format(contract.DateFormat)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Matchup", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, g := range games {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam),
			g.StatusText,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d games scheduled\n", len(games))
	return err
}
