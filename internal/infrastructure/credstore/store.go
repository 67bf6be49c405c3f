// Package credstore persists the signed-in user's token and profile
// under the application home directory so sessions survive restarts.
package credstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/am24/brickshop/internal/domain/session"
)

const credentialsFile = "credentials.yaml"

// Store reads and writes stored credentials.
type Store struct {
	fs   afero.Fs
	home string
}

// NewStore creates a credential store rooted at home.
func NewStore(fs afero.Fs, home string) *Store {
	return &Store{fs: fs, home: home}
}

type storedCredentials struct {
	Token    string `yaml:"token"`
	UserID   int    `yaml:"user_id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
}

// Load restores credentials into the session. A missing file is not an
// error; the session is simply marked loaded with no token.
func (s *Store) Load(sess *session.Session) error {
	defer sess.MarkLoaded()

	path := filepath.Join(s.home, credentialsFile)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read credentials failed: %w", err)
	}

	var creds storedCredentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("parse credentials failed: %w", err)
	}

	sess.SetToken(creds.Token)
	sess.SetUser(session.User{
		ID:       creds.UserID,
		Username: creds.Username,
		Email:    creds.Email,
	})
	return nil
}

// Save writes the session's current credentials to disk.
func (s *Store) Save(sess *session.Session) error {
	if err := s.fs.MkdirAll(s.home, 0o755); err != nil {
		return fmt.Errorf("create home directory failed: %w", err)
	}

	creds := storedCredentials{
		Token:    sess.Token(),
		UserID:   sess.UserID(),
		Username: sess.Username(),
		Email:    sess.Email(),
	}
	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials failed: %w", err)
	}

	// Write to temp file first, then atomic rename: a crash mid-write must
	// not leave a truncated credentials file behind.
	path := filepath.Join(s.home, credentialsFile)
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write credentials failed: %w", err)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		s.fs.Remove(tmpPath)
		return fmt.Errorf("rename credentials failed: %w", err)
	}
	return nil
}

// Delete removes stored credentials. Deleting a file that does not
// exist is not an error.
func (s *Store) Delete() error {
	path := filepath.Join(s.home, credentialsFile)
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete credentials failed: %w", err)
	}
	return nil
}
