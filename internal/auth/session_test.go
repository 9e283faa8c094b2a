package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/trackplay/internal/models"
	tu "github.com/desertthunder/trackplay/internal/testing"
)

func TestSessionManager(t *testing.T) {
	ctx := context.Background()

	validPair := models.TokenPair{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
	}

	t.Run("Starts In Initializing Phase", func(t *testing.T) {
		manager := NewSessionManager(&tu.MockStore{}, nil)

		state := manager.Current()
		if !state.IsLoading {
			t.Error("expected new session manager to be loading")
		}
		if state.Phase() != "initializing" {
			t.Errorf("expected phase 'initializing', got %s", state.Phase())
		}
	})

	t.Run("Init", func(t *testing.T) {
		t.Run("With Stored Pair", func(t *testing.T) {
			store := &tu.MockStore{Pair: validPair, HasPair: true}
			sink := &tu.MockTracking{}
			manager := NewSessionManager(store, nil, sink)

			state := manager.Init(ctx)
			if !state.IsSignedIn {
				t.Error("expected signed-in state with a stored pair")
			}
			if state.Token != validPair.AccessToken {
				t.Errorf("expected token %s, got %s", validPair.AccessToken, state.Token)
			}
			if sink.Token != validPair.AccessToken {
				t.Error("expected access token to be injected into the client")
			}
		})

		t.Run("With Empty Store", func(t *testing.T) {
			sink := &tu.MockTracking{}
			manager := NewSessionManager(&tu.MockStore{}, nil, sink)

			state := manager.Init(ctx)
			if state.IsSignedIn || state.IsLoading {
				t.Error("expected signed-out state with an empty store")
			}
			if sink.Token != "" {
				t.Error("expected no token injection without a stored pair")
			}
		})

		t.Run("With Failing Store", func(t *testing.T) {
			store := &tu.MockStore{Pair: validPair, HasPair: true, GetFails: true}
			manager := NewSessionManager(store, nil)

			state := manager.Init(ctx)
			if state.IsSignedIn {
				t.Error("expected storage failure to resolve as signed-out")
			}
		})
	})

	t.Run("SignIn", func(t *testing.T) {
		t.Run("Persists Then Activates", func(t *testing.T) {
			store := &tu.MockStore{}
			sink := &tu.MockTracking{}
			manager := NewSessionManager(store, nil, sink)
			manager.Init(ctx)

			if err := manager.SignIn(ctx, validPair); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !store.HasPair || store.Pair != validPair {
				t.Error("expected exact pair to be persisted")
			}
			if sink.Token != validPair.AccessToken {
				t.Error("expected access token to be injected")
			}
			if !manager.Current().IsSignedIn {
				t.Error("expected signed-in state")
			}
		})

		t.Run("Rejects Partial Pair", func(t *testing.T) {
			manager := NewSessionManager(&tu.MockStore{}, nil)
			manager.Init(ctx)

			if err := manager.SignIn(ctx, models.TokenPair{AccessToken: "only_access"}); err == nil {
				t.Error("expected error for partial pair")
			}
		})

		t.Run("Persist Failure Leaves State Unchanged", func(t *testing.T) {
			store := &tu.MockStore{SetErr: errors.New("disk full")}
			sink := &tu.MockTracking{}
			manager := NewSessionManager(store, nil, sink)
			manager.Init(ctx)

			if err := manager.SignIn(ctx, validPair); err == nil {
				t.Fatal("expected persistence error to surface")
			}

			if manager.Current().IsSignedIn {
				t.Error("expected state to stay signed-out after persist failure")
			}
			if sink.Token != "" {
				t.Error("expected no token injection after persist failure")
			}
		})

		t.Run("Survives Restart", func(t *testing.T) {
			store := &tu.MockStore{}
			manager := NewSessionManager(store, nil)
			manager.Init(ctx)

			if err := manager.SignIn(ctx, validPair); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			// A fresh manager over the same store simulates a restart.
			restarted := NewSessionManager(store, nil)
			state := restarted.Init(ctx)
			if !state.IsSignedIn || state.Token != validPair.AccessToken {
				t.Error("expected sign-in to survive a restart")
			}
		})
	})

	t.Run("SignOut", func(t *testing.T) {
		t.Run("Clears Store And Token", func(t *testing.T) {
			store := &tu.MockStore{Pair: validPair, HasPair: true}
			sink := &tu.MockTracking{}
			manager := NewSessionManager(store, nil, sink)
			manager.Init(ctx)

			manager.SignOut(ctx)

			if store.HasPair {
				t.Error("expected stored pair to be cleared")
			}
			if sink.Token != "" {
				t.Error("expected token to be cleared from the client")
			}
			state := manager.Current()
			if state.IsSignedIn || state.Phase() != "signed-out" {
				t.Error("expected signed-out state")
			}
		})

		t.Run("Transitions Despite Clear Failure", func(t *testing.T) {
			store := &tu.MockStore{Pair: validPair, HasPair: true, ClearErr: errors.New("unlink failed")}
			manager := NewSessionManager(store, nil)
			manager.Init(ctx)

			manager.SignOut(ctx)

			if manager.Current().IsSignedIn {
				t.Error("expected signed-out state despite clear failure")
			}
		})
	})

	t.Run("Subscribe", func(t *testing.T) {
		t.Run("Receives Transitions", func(t *testing.T) {
			manager := NewSessionManager(&tu.MockStore{}, nil)

			ch, cancel := manager.Subscribe()
			defer cancel()

			manager.Init(ctx)

			state := <-ch
			if state.IsLoading || state.IsSignedIn {
				t.Error("expected signed-out transition from init")
			}

			if err := manager.SignIn(ctx, validPair); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			state = <-ch
			if !state.IsSignedIn {
				t.Error("expected signed-in transition")
			}
		})

		t.Run("Cancel Closes Channel", func(t *testing.T) {
			manager := NewSessionManager(&tu.MockStore{}, nil)

			ch, cancel := manager.Subscribe()
			cancel()

			if _, ok := <-ch; ok {
				t.Error("expected channel to be closed after cancel")
			}
		})

		t.Run("Slow Subscriber Never Blocks", func(t *testing.T) {
			manager := NewSessionManager(&tu.MockStore{}, nil)

			_, cancel := manager.Subscribe()
			defer cancel()

			// More transitions than the subscriber buffer holds; none of
			// these may block.
			for range 20 {
				manager.SignOut(ctx)
			}
		})
	})
}
