package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/bind/pkg/bind"
)

func layoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <pattern>",
		Short: "Print the Go time layout for a date pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := bind.TimeLayout(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), layout)
			return nil
		},
	}
}
