package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/trackplay/internal/formatter"
	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/shared"
	"github.com/urfave/cli/v3"
)

// History fetches and prints the combined watch history, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	format := cmd.String("format")
	outputFile := cmd.String("output")

	if err := r.requireSignIn(); err != nil {
		return err
	}

	r.logger.Info("fetching watch history")

	entries, err := r.engine.History(ctx, nil)
	if err != nil {
		return r.describeFetchError(err)
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	if useJSON {
		return r.writeJSON(entries, pretty)
	}

	data, err := formatHistory(entries, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ History written to %s (%d entries)\n", outputFile, len(entries))
		return nil
	}

	return r.writePlain("%s", string(data))
}

func formatHistory(entries []models.HistoryEntry, format string) ([]byte, error) {
	switch format {
	case "csv":
		return formatter.HistoryToCSV(entries)
	case "markdown", "md":
		return formatter.HistoryToMarkdown(entries)
	case "text", "":
		return formatter.HistoryToText(entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// requireSignIn rejects data commands when no session is active.
func (r *Runner) requireSignIn() error {
	if r.session == nil {
		return fmt.Errorf("%w: authentication not configured", shared.ErrServiceUnavailable)
	}
	if !r.session.Current().IsSignedIn {
		return fmt.Errorf("%w: run 'trackplay auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// describeFetchError rewraps API errors with user-facing guidance.
func (r *Runner) describeFetchError(err error) error {
	switch {
	case errors.Is(err, shared.ErrTokenExpired):
		return fmt.Errorf("%w: session expired, run 'trackplay auth login' to reauthorize", shared.ErrTokenExpired)
	case errors.Is(err, shared.ErrNetwork):
		return fmt.Errorf("%w: check your connection and try again", shared.ErrNetwork)
	default:
		return err
	}
}
