package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "skolexport",
	Short: "skolexport extracts a student timetable from the school portal into calendar files.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "skolexport.json5",
		"path to the configuration file",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
