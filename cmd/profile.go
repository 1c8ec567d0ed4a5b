package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <name>",
	Short: "Generate a historical profile and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		language, _ := cmd.Flags().GetString("language")
		if language == "" {
			language = d.cfg.Session.Language
		}

		p, err := d.client.GenerateProfile(ctx, args[0], language)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		return nil
	},
}

func init() {
	profileCmd.Flags().String("language", "", "Language of the profile text")
}
