package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/eternal/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "eternal",
	Short: "Talk with figures from history",
	Long:  "Eternal Dialogue: a terminal app where students question a simulated historical figure while teachers follow the learning analysis.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ETERNAL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/eternal/config.yaml)")

	rootCmd.Flags().String("person", "", "Historical figure to prefill on the setup form")
	rootCmd.Flags().String("grade", "", "Student grade to prefill on the setup form")
	rootCmd.Flags().String("language", "", "Reply language tag to prefill on the setup form")
	rootCmd.Flags().Bool("start", false, "Skip the setup form and start the dialogue immediately")
	rootCmd.Flags().Bool("no-intro", false, "Skip the opening splash")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (which includes ETERNAL_DB), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
