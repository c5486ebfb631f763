// Package session resolves the bearer credential a request publishes with.
// The credential itself is owned by the external OAuth flow (see the auth
// command); this package only reads it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNotAuthenticated means no usable bearer credential was found.
var ErrNotAuthenticated = errors.New("not authenticated")

// FromRequest extracts a bearer token from the Authorization header.
func FromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// TokenFile reads the oauth2 token JSON written by the auth command and
// serves its access token while it remains valid. One instance backs every
// request goroutine, so the cached token is guarded by a mutex.
type TokenFile struct {
	path string

	mu    sync.Mutex
	token *oauth2.Token
}

func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Token returns the stored access token, or ErrNotAuthenticated when the
// file is missing, unreadable, or the token has expired. Safe for concurrent
// use.
func (t *TokenFile) Token() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token == nil || !t.token.Valid() {
		if err := t.load(); err != nil {
			return "", err
		}
	}
	if !t.token.Valid() {
		return "", fmt.Errorf("token at %s expired: %w", t.path, ErrNotAuthenticated)
	}
	return t.token.AccessToken, nil
}

func (t *TokenFile) load() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read token file: %w", ErrNotAuthenticated)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("parse token file: %w", ErrNotAuthenticated)
	}

	t.token = &token
	return nil
}
