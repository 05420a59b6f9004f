package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"pocket-tracker/common"
	"pocket-tracker/config"
	"pocket-tracker/database"
	"pocket-tracker/log"
)

// Prints the latest 30 ledger days of the configured project.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Init(&cfg.Log)

	db := database.New(&cfg.DB)
	project, err := db.GetProject(cfg.Tracker.Project)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	days, err := db.GetLatestDays(project.ID, 30)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var data [][]string
	var total float64
	for _, day := range days {
		data = append(data, []string{
			common.FormatDay(time.Unix(day.Date, 0)),
			humanize.CommafWithDigits(day.Revenue, 2),
		})
		total += day.Revenue
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"Date", "Revenue (USD)"})
	table.Bulk(data)
	table.Render()

	fmt.Printf("Project [%s], [%d] days, total revenue [%s] USD\n",
		project.Name, len(days), humanize.CommafWithDigits(total, 2))
}
