package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// tokenFromFile reads a cached token. An expired token is still returned:
// the refresh token inside it is what matters.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to parse cached token %s: %w", path, err)
	}

	return tok, nil
}

// saveToken writes the token cache with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// savingSource wraps a refreshing TokenSource and persists every rotated
// token, so the next invocation of the program starts from the newest
// refresh token instead of an already-consumed one.
type savingSource struct {
	mu   sync.Mutex
	src  oauth2.TokenSource
	path string
	last *oauth2.Token
}

func newSavingSource(src oauth2.TokenSource, path string, current *oauth2.Token) oauth2.TokenSource {
	return &savingSource{src: src, path: path, last: current}
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := saveToken(s.path, tok); err != nil {
			slog.Warn("failed to persist refreshed token", "error", err)
		}

		s.last = tok
	}

	return tok, nil
}
