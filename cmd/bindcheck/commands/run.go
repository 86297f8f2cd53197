package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/go-drift/bind/cmd/bindcheck/internal/manifest"
	"github.com/go-drift/bind/pkg/errors"
)

func runCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <manifest.yaml>...",
		Short: "Run binding cases from YAML manifests",
		Long: `Run delivers each case's payload to a fresh binding of the declared type
and compares the value the setter receives with the expectation.

Example manifest:

  name: profile
  cases:
    - name: age
      type: int32
      payload: "42"
      expect: "42"
    - name: birthday
      type: time
      format: yyyy-MM-dd
      payload: "1990-06-15"
      expect: "1990-06-15"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !watch {
				return runManifests(out, args)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := runManifests(out, args); err != nil {
				fmt.Fprintln(out, err)
			}
			return watchManifests(ctx, out, args)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rerun a manifest whenever it changes")
	return cmd
}

func runManifests(out io.Writer, paths []string) error {
	runLogger := logger.With(slog.String("run", uuid.NewString()))
	runner := &manifest.Runner{Format: settings.Format, Logger: runLogger}

	failed, total := 0, 0
	for _, path := range paths {
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", m.Name, path)
		results := runner.Run(m)
		total += len(results)
		failed += manifest.Failed(results)
		for _, res := range results {
			if res.Passed {
				fmt.Fprintf(out, "  ok    %-24s %s\n", res.Case, res.Got)
				continue
			}
			fmt.Fprintf(out, "  FAIL  %-24s %s\n", res.Case, res.Reason)
			var berr *errors.BindError
			if stderrors.As(res.Err, &berr) {
				errors.Report(berr)
			}
		}
	}

	fmt.Fprintf(out, "%d passed, %d failed\n", total-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, total)
	}
	return nil
}

func watchManifests(ctx context.Context, out io.Writer, paths []string) error {
	logger.Info("watching manifests", slog.Int("count", len(paths)))
	return manifest.Watch(ctx, logger, paths, func(path string) {
		fmt.Fprintf(out, "\n%s changed\n", path)
		if err := runManifests(out, []string{path}); err != nil {
			fmt.Fprintln(out, err)
		}
	})
}
