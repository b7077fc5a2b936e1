package commands

import (
	"fmt"
	"log/slog"
	"os"

	"skolexport/lib/export"
	"skolexport/lib/scrapers/skola24"
	"skolexport/lib/uploader"
	"skolexport/services/snapshots"

	"github.com/spf13/cobra"
)

func init() {
	exportCmd.Flags().IntVar(&flagYear, "year", 0, "target year")
	exportCmd.Flags().IntVar(&flagWeekStart, "week-start", 0, "first week number to fetch")
	exportCmd.Flags().IntVar(&flagWeekEnd, "week-end", 0, "last week number to fetch")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract the timetable and write the calendar artifacts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, session, err := establishSession(ctx, cfg)
		if err != nil {
			return err
		}

		year, weeks, err := resolveRange()
		if err != nil {
			return err
		}

		results := client.FetchWeeks(ctx, year, session.Selection, weeks)
		printWeekSummary(results)

		lessons, err := skola24.Flatten(results)
		if err != nil {
			// nothing gets written on a partial batch
			return fmt.Errorf("extraction failed: %w", err)
		}
		slog.Info("parsed lessons", "count", len(lessons))

		output := cfg.output()
		err = os.WriteFile(output, []byte(export.LessonsCSV(lessons)), 0644)
		if err != nil {
			return err
		}
		slog.Info("wrote artifact", "path", output)

		if cfg.IcsOutput != "" {
			err = os.WriteFile(cfg.IcsOutput, []byte(export.LessonsICS(lessons)), 0644)
			if err != nil {
				return err
			}
			slog.Info("wrote artifact", "path", cfg.IcsOutput)
		}

		if cfg.SnapshotDb != "" {
			db, err := snapshots.Open(cfg.SnapshotDb)
			if err != nil {
				return err
			}
			defer db.Close()
			err = snapshots.NewStore(db).Push(ctx, year, results)
			if err != nil {
				return err
			}
		}

		if cfg.Uploader.Host != "" {
			err = uploader.UploadFile(ctx, cfg.Uploader, output)
			if err != nil {
				return err
			}
		}

		return nil
	},
}
