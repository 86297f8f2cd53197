// Package commands implements the bindcheck CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/bind/cmd/bindcheck/internal/config"
	"github.com/go-drift/bind/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	verbose  bool
	dir      string
	settings *config.Resolved
	logger   *slog.Logger
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	verbose, dir = false, ""

	root := &cobra.Command{
		Use:          "bindcheck",
		Short:        "Check two-way binding coercions",
		Version:      Version + " (built " + BuildTime + ")",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			projectDir := dir
			if projectDir == "" {
				found, err := config.FindProjectRoot()
				if err != nil {
					found, err = os.Getwd()
					if err != nil {
						return err
					}
				}
				projectDir = found
			}

			resolved, err := config.Resolve(projectDir)
			if err != nil {
				return err
			}
			if verbose {
				resolved.Verbose = true
			}
			settings = resolved

			level := slog.LevelInfo
			if settings.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: settings.Verbose})
			logger.Debug("configuration resolved",
				slog.String("project", settings.ProjectName),
				slog.String("root", settings.Root),
				slog.String("format", settings.Format),
			)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log setter invocations and error details")
	root.PersistentFlags().StringVar(&dir, "dir", "", "project directory holding bindcheck.yaml (default: nearest go.mod)")

	root.AddCommand(runCmd(), layoutCmd(), formatCmd())
	return root
}
