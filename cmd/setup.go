package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/trackplay/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig creates a configuration file from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.writePlain("Config file already exists at %s\n", configPath)
		return nil
	}

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config file created at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Add your Trakt client_id and client_secret to %s\n", configPath)
	r.writePlain("2. Add your TMDB api_key for poster artwork\n")
	r.writePlain("3. Run 'trackplay auth login' to authorize\n")

	return nil
}
