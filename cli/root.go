package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lemmego/appkit/config"
)

var (
	debug bool
	disk  string
)

// RootCmd is the entry point of the appkit binary
var RootCmd = &cobra.Command{
	Use:   "appkit",
	Short: config.String("app.name", "appkit"),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug || config.Bool("app.debug", false) {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		if disk != "" {
			config.Set("storage.disk", disk)
		}
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&disk, "disk", "", "storage driver: local, memory, s3 or gcs")

	RootCmd.AddCommand(demoCmd)
	RootCmd.AddCommand(aboutCmd)
	RootCmd.AddCommand(viewCmd)
}

// Execute the command
func Execute() error {
	return RootCmd.Execute()
}
