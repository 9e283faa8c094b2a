package auth

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/trackplay/internal/models"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	validPair := models.TokenPair{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		ExpiresIn:    7200,
	}

	t.Run("Get On Empty Store", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), nil)

		if _, ok := store.Get(ctx); ok {
			t.Error("expected no pair from an empty store")
		}
	})

	t.Run("Set Then Get Roundtrip", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, ok := store.Get(ctx)
		if !ok {
			t.Fatal("expected stored pair to be readable")
		}
		if got != validPair {
			t.Errorf("expected %+v, got %+v", validPair, got)
		}
	})

	t.Run("Set Rejects Partial Pair", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), nil)

		if err := store.Set(ctx, models.TokenPair{AccessToken: "only_access"}); err == nil {
			t.Error("expected error for pair missing refresh token")
		}
		if err := store.Set(ctx, models.TokenPair{RefreshToken: "only_refresh"}); err == nil {
			t.Error("expected error for pair missing access token")
		}
	})

	t.Run("Set Overwrites Previous Pair", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		updated := models.TokenPair{AccessToken: "new_access", RefreshToken: "new_refresh"}
		if err := store.Set(ctx, updated); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, ok := store.Get(ctx)
		if !ok || got.AccessToken != "new_access" {
			t.Errorf("expected updated pair, got %+v", got)
		}
	})

	t.Run("Clear Removes Pair", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := store.Get(ctx); ok {
			t.Error("expected no pair after clear")
		}
	})

	t.Run("Clear On Empty Store", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), nil)

		if err := store.Clear(ctx); err != nil {
			t.Errorf("expected clear on empty store to succeed, got %v", err)
		}
	})

	t.Run("Corrupted Blob Reads As Absent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir, nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		path := filepath.Join(dir, "credentials.enc")
		blob, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read blob: %v", err)
		}
		blob[len(blob)-1] ^= 0xFF
		if err := os.WriteFile(path, blob, 0600); err != nil {
			t.Fatalf("failed to write tampered blob: %v", err)
		}

		if _, ok := store.Get(ctx); ok {
			t.Error("expected tampered blob to read as absent")
		}
	})

	t.Run("Truncated Blob Reads As Absent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir, nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		path := filepath.Join(dir, "credentials.enc")
		if err := os.WriteFile(path, []byte("short"), 0600); err != nil {
			t.Fatalf("failed to truncate blob: %v", err)
		}

		if _, ok := store.Get(ctx); ok {
			t.Error("expected truncated blob to read as absent")
		}
	})

	t.Run("Missing Key File Reads As Absent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir, nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := os.Remove(filepath.Join(dir, "credentials.key")); err != nil {
			t.Fatalf("failed to remove key file: %v", err)
		}

		if _, ok := store.Get(ctx); ok {
			t.Error("expected pair to be unreadable without the key file")
		}
	})

	t.Run("Stored Blob Is Not Plaintext", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir, nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		blob, err := os.ReadFile(filepath.Join(dir, "credentials.enc"))
		if err != nil {
			t.Fatalf("failed to read blob: %v", err)
		}

		if string(blob) == "" {
			t.Fatal("expected blob to be written")
		}
		for _, token := range []string{validPair.AccessToken, validPair.RefreshToken} {
			if bytes.Contains(blob, []byte(token)) {
				t.Errorf("expected token %q not to appear in the stored blob", token)
			}
		}
	})

	t.Run("Credential File Permissions", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir, nil)

		if err := store.Set(ctx, validPair); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(filepath.Join(dir, "credentials.enc"))
		if err != nil {
			t.Fatalf("failed to stat credential file: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}
	})
}
