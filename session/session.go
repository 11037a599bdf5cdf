package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fazhza18-web/japanese-game-code/model"
)

// Store holds the bearer token and the resolved current user for the
// lifetime of the program. The token is persisted to a file so a restart
// does not force a new login, the way the browser client kept it in local
// storage under a fixed key.
type Store struct {
	path  string
	token string
	user  model.User
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load restores a previously saved token. A missing file is not an error;
// it just means nobody is logged in.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	s.token = strings.TrimSpace(string(data))
	return nil
}

func (s *Store) Token() string {
	return s.token
}

func (s *Store) LoggedIn() bool {
	return s.token != ""
}

// SetToken stores the token and persists it.
func (s *Store) SetToken(token string) error {
	s.token = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear forgets the token and removes the persisted copy. Used on logout
// and when the backend rejects the token.
func (s *Store) Clear() error {
	s.token = ""
	s.user = model.User{}
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) SetUser(u model.User) {
	s.user = u
}

func (s *Store) User() model.User {
	return s.user
}
