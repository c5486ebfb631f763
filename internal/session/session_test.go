package session

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"bearer", "Bearer abc123", "abc123", true},
		{"missing", "", "", false},
		{"wrongScheme", "Basic abc123", "", false},
		{"emptyToken", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/upload", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, ok := FromRequest(r)
			if ok != tt.wantOK {
				t.Fatalf("FromRequest() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("FromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func writeToken(t *testing.T, path string, token *oauth2.Token) {
	t.Helper()
	data, err := json.Marshal(token)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
}

func TestTokenFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, path string)
		want    string
		wantErr bool
	}{
		{
			name: "validToken",
			setup: func(t *testing.T, path string) {
				writeToken(t, path, &oauth2.Token{
					AccessToken: "live-token",
					Expiry:      time.Now().Add(time.Hour),
				})
			},
			want: "live-token",
		},
		{
			name: "expiredToken",
			setup: func(t *testing.T, path string) {
				writeToken(t, path, &oauth2.Token{
					AccessToken: "stale-token",
					Expiry:      time.Now().Add(-time.Hour),
				})
			},
			wantErr: true,
		},
		{
			name:    "missingFile",
			setup:   func(t *testing.T, path string) {},
			wantErr: true,
		},
		{
			name: "invalidJSON",
			setup: func(t *testing.T, path string) {
				_ = os.WriteFile(path, []byte("not json"), 0600)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			tt.setup(t, path)

			got, err := NewTokenFile(path).Token()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Token() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNotAuthenticated) {
					t.Errorf("Token() error = %v, want ErrNotAuthenticated", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenFileConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	writeToken(t, path, &oauth2.Token{
		AccessToken: "live-token",
		Expiry:      time.Now().Add(time.Hour),
	})

	tf := NewTokenFile(path)

	const goroutines = 8
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := tf.Token()
				if err != nil {
					t.Errorf("Token() error: %v", err)
					return
				}
				if got != "live-token" {
					t.Errorf("Token() = %q, want live-token", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
