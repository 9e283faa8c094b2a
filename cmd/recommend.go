package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/trackplay/internal/formatter"
	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/shared"
	"github.com/urfave/cli/v3"
)

// Recommend fetches recommendations, enriches them with poster artwork, and
// prints them. With --open N the Nth entry is handed to the external player
// via its deep link instead.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	format := cmd.String("format")
	outputFile := cmd.String("output")
	openIndex := cmd.Int("open")

	if err := r.requireSignIn(); err != nil {
		return err
	}

	r.logger.Info("fetching recommendations")

	recs, err := r.engine.Recommendations(ctx, nil)
	if err != nil {
		return r.describeFetchError(err)
	}

	if openIndex > 0 {
		return r.openRecommendation(recs, openIndex)
	}

	if useJSON {
		return r.writeJSON(recs, pretty)
	}

	data, err := formatRecommendations(recs, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ Recommendations written to %s\n", outputFile)
		return nil
	}

	return r.writePlain("%s", string(data))
}

// openRecommendation opens the 1-based Nth recommendation in the player.
func (r *Runner) openRecommendation(recs models.Recommendations, n int) error {
	all := recs.All()
	if n > len(all) {
		return fmt.Errorf("%w: only %d recommendations available", shared.ErrInvalidArgument, len(all))
	}

	entry := all[n-1]
	link, err := entry.DeepLink()
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", entry.Title, err)
	}

	r.logger.Infof("opening %v in player", entry.Title)
	if err := shared.OpenBrowser(link); err != nil {
		return fmt.Errorf("failed to open player: %w", err)
	}

	r.writePlain("✓ Opened %s\n", entry.Title)
	return nil
}

func formatRecommendations(recs models.Recommendations, format string) ([]byte, error) {
	switch format {
	case "csv":
		return formatter.RecommendationsToCSV(recs)
	case "markdown", "md":
		return formatter.RecommendationsToMarkdown(recs)
	case "text", "":
		return formatter.RecommendationsToText(recs)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}
