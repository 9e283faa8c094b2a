package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trackplay/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin performs the OAuth2 authorization flow for Trakt.
//
// Starts a local HTTP server, opens the browser for user consent, exchanges
// the auth code for tokens, and persists them before activating the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.flow == nil || r.session == nil {
		return fmt.Errorf("%w: authentication not configured", shared.ErrServiceUnavailable)
	}

	if r.config.Credentials.Trakt.ClientID == "" || r.config.Credentials.Trakt.ClientSecret == "" {
		return fmt.Errorf("%w: Trakt client_id and client_secret must be set in config.toml", shared.ErrMissingConfig)
	}

	state := r.session.Current()
	if state.IsSignedIn {
		r.writePlain("Already signed in. Run 'trackplay auth logout' first to reauthorize.\n")
		return nil
	}

	r.writePlain("→ Opening browser for Trakt authorization...\n")
	r.writePlain("→ Waiting for authorization...\n")

	pair, err := r.flow.Authorize(ctx)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	if err := r.session.SignIn(ctx, pair); err != nil {
		return fmt.Errorf("failed to activate session: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("You can now use: trackplay history\n")

	return nil
}

// AuthLogout clears stored credentials and deactivates the session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: authentication not configured", shared.ErrServiceUnavailable)
	}

	r.session.SignOut(ctx)
	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthStatus reports the current session phase.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: authentication not configured", shared.ErrServiceUnavailable)
	}

	state := r.session.Current()
	r.writePlain("Session: %s\n", state.Phase())
	if state.IsSignedIn {
		r.writePlain("Authentication: ✓ Authenticated\n")
	} else {
		r.writePlain("Authentication: ✗ Not authenticated\n")
	}
	return nil
}
