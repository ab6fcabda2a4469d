package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kawafuchieirin/team-workspace/internal/app"
	"github.com/kawafuchieirin/team-workspace/internal/config"
	"github.com/kawafuchieirin/team-workspace/internal/logger"
	"github.com/spf13/cobra"
)

func ExportCmd() *cobra.Command {
	var (
		userID  string
		out     string
		archive bool
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Export a user's goals and records as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.AppEnv, cfg.SentryDSN)
			defer logger.Flush()

			if userID == "" {
				userID = cfg.DefaultUserID
			}

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if archive {
				result, err := a.ExportService.Archive(cmd.Context(), userID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", result.Key, result.URL)
				return nil
			}

			export, err := a.ExportService.Snapshot(cmd.Context(), userID)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return writeJSON(nopCloser{cmd.OutOrStdout()}, export)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			err = writeJSON(f, export)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			return nil
		},
	}

	c.Flags().StringVar(&userID, "user", "", "user id (defaults to DEFAULT_USER_ID)")
	c.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	c.Flags().BoolVar(&archive, "archive", false, "upload to the configured S3 bucket instead of writing locally")
	return c
}

// writeJSON encodes v indented and closes w. A failed close is reported.
func writeJSON(w io.WriteCloser, v any) (err error) {
	defer func() {
		closeErr := w.Close()
		if err == nil {
			err = closeErr
		}
	}()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
