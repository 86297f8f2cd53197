package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/bind/pkg/bind"
)

func formatCmd() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "format <RFC3339 time>",
		Short: "Render a time the way a bound input displays it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return fmt.Errorf("invalid time %q: %w", args[0], err)
			}
			if !cmd.Flags().Changed("format") {
				pattern = settings.Format
			}
			text, err := bind.GetTimeValue(value, pattern)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "format", "f", "", "date pattern (default: defaults.format from bindcheck.yaml)")
	return cmd
}
