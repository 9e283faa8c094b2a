package auth

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackplay/internal/models"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	keyFileName  = "credentials.key"
	pairFileName = "credentials.enc"
)

// CredentialStore persists the access/refresh token pair durably.
//
// Get never returns an error: any storage failure (missing file, corrupted
// entry, undecryptable blob) is reported as an absent pair, so the session
// manager treats it identically to "no session".
type CredentialStore interface {
	// Get retrieves the stored pair. The second return is false when no
	// usable pair exists.
	Get(ctx context.Context) (models.TokenPair, bool)

	// Set persists the pair atomically: a reader never observes only one
	// of the two tokens written.
	Set(ctx context.Context, pair models.TokenPair) error

	// Clear removes the stored pair.
	Clear(ctx context.Context) error
}

// FileStore implements [CredentialStore] with a single encrypted file.
//
// The pair is JSON-encoded and sealed with XChaCha20-Poly1305. The cipher
// key is derived via HKDF-SHA256 from a random 32-byte key file created on
// first use, so the stored blob is resistant to casual inspection. Writes
// go through a temp file and rename.
type FileStore struct {
	dir    string
	logger *log.Logger
}

var _ CredentialStore = (*FileStore)(nil)

// NewFileStore creates a credential store rooted at dir.
func NewFileStore(dir string, logger *log.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

// Get retrieves and unseals the stored pair. Returns false on any failure.
func (s *FileStore) Get(ctx context.Context) (models.TokenPair, bool) {
	blob, err := os.ReadFile(filepath.Join(s.dir, pairFileName))
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Debugf("credential read failed: %v", err)
		}
		return models.TokenPair{}, false
	}

	aead, err := s.cipher(false)
	if err != nil {
		if s.logger != nil {
			s.logger.Debugf("credential key unavailable: %v", err)
		}
		return models.TokenPair{}, false
	}

	if len(blob) < aead.NonceSize() {
		return models.TokenPair{}, false
	}

	nonce, sealed := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Debugf("credential unseal failed: %v", err)
		}
		return models.TokenPair{}, false
	}

	var pair models.TokenPair
	if err := json.Unmarshal(plain, &pair); err != nil || !pair.Valid() {
		return models.TokenPair{}, false
	}

	return pair, true
}

// Set seals and persists the pair. Rejects partial pairs.
func (s *FileStore) Set(ctx context.Context, pair models.TokenPair) error {
	if !pair.Valid() {
		return fmt.Errorf("refusing to persist a partial token pair")
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	aead, err := s.cipher(true)
	if err != nil {
		return err
	}

	plain, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to encode token pair: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	blob := append(nonce, aead.Seal(nil, nonce, plain, nil)...)

	// Temp file + rename keeps the pair atomic on disk.
	tmp, err := os.CreateTemp(s.dir, pairFileName+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set credential permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, pairFileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	return nil
}

// Clear removes the stored pair. A missing file is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(filepath.Join(s.dir, pairFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// cipher loads (or, when create is set, creates) the key file and derives
// the AEAD used to seal the pair.
func (s *FileStore) cipher(create bool) (cipher.AEAD, error) {
	keyPath := filepath.Join(s.dir, keyFileName)

	material, err := os.ReadFile(keyPath)
	if err != nil {
		if !os.IsNotExist(err) || !create {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		material = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, material); err != nil {
			return nil, fmt.Errorf("failed to generate key material: %w", err)
		}
		if err := os.WriteFile(keyPath, material, 0600); err != nil {
			return nil, fmt.Errorf("failed to write key file: %w", err)
		}
	}

	h := hkdf.New(sha256.New, material, nil, []byte("token-pair"))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return chacha20poly1305.NewX(key)
}
