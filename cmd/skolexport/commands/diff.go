package commands

import (
	"fmt"

	"skolexport/services/snapshots"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	diffCmd.Flags().IntVar(&flagYear, "year", 0, "target year")
	diffCmd.Flags().IntVar(&flagWeekStart, "week-start", 0, "first week number to fetch")
	diffCmd.Flags().IntVar(&flagWeekEnd, "week-end", 0, "last week number to fetch")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Extract the timetable and report changes against the last stored snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.SnapshotDb == "" {
			return fmt.Errorf("diff needs snapshot_db set in the config")
		}

		client, session, err := establishSession(ctx, cfg)
		if err != nil {
			return err
		}

		year, weeks, err := resolveRange()
		if err != nil {
			return err
		}

		db, err := snapshots.Open(cfg.SnapshotDb)
		if err != nil {
			return err
		}
		defer db.Close()
		store := snapshots.NewStore(db)

		results := client.FetchWeeks(ctx, year, session.Selection, weeks)
		printWeekSummary(results)

		t := newTable()
		t.AppendHeader(table.Row{"Week", "Change", "Course", "Start", "End", "Location"})
		changes := 0
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			stored, err := store.Pull(ctx, year, r.Week)
			if err != nil {
				return err
			}
			d := snapshots.Diff(r.Week, stored, r.Lessons)
			if d.Empty() {
				continue
			}
			changes += len(d.Added) + len(d.Removed)
			for _, l := range d.Added {
				t.AppendRow(table.Row{d.Week, "+", l.Course, l.Start.Format("2006-01-02 15:04"), l.End.Format("15:04"), l.Location})
			}
			for _, l := range d.Removed {
				t.AppendRow(table.Row{d.Week, "-", l.Course, l.Start.Format("2006-01-02 15:04"), l.End.Format("15:04"), l.Location})
			}
		}
		if changes > 0 {
			t.Render()
		} else {
			fmt.Println("no changes since last snapshot")
		}

		return store.Push(ctx, year, results)
	},
}
