package iocache

import (
	"fmt"

	"github.com/courtside/watchdex/internal/contract"
)

// PrintCacheStatus prints response cache status information.
func PrintCacheStatus(status contract.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Total Entries: %d\n", status.Entries)
	fmt.Printf("Payload Size: %d bytes\n", status.TotalBytes)
}

// PrintRuns prints run store contents, newest first.
func PrintRuns(runs []contract.RunInfo) {
	if len(runs) == 0 {
		fmt.Println("No ranking runs recorded.")
		return
	}
	for _, run := range runs {
		end := "in progress"
		if run.EndTime != nil {
			end = run.EndTime.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("Run %d: started %s, ended %s, %d games ranked\n",
			run.RunID, run.StartTime.Format("2006-01-02 15:04:05"), end, run.GamesRanked)
		if run.ConfigParams != "" {
			fmt.Printf("  Params: %s\n", run.ConfigParams)
		}
	}
}
