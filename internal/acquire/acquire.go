package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"seostudio/pkg/httputil"
)

// MaxUploadBytes caps incoming request bodies at 2 GiB.
const MaxUploadBytes = 2 << 30

// ErrNoVideo is returned when a request carries neither an uploaded file nor
// a remote link.
var ErrNoVideo = errors.New("no video provided")

// Source is a video file on local disk, ready to stream to the platform.
// Owned marks files this process created; caller-supplied paths are never
// deleted.
type Source struct {
	Path  string
	Owned bool
}

// Remove deletes the file if this request created it.
func (s *Source) Remove() error {
	if !s.Owned {
		return nil
	}
	return os.Remove(s.Path)
}

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Store persists incoming video streams into a temp directory.
type Store struct {
	dir    string
	client doer
}

func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		client: httputil.NewRetryClient(nil, httputil.DefaultRetryConfig()),
	}
}

// FromUpload streams an uploaded multipart part to a uniquely named file.
// The original filename only contributes its extension.
func (s *Store) FromUpload(r io.Reader, filename string) (*Source, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".mp4"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("upload-%s%s", uuid.NewString(), ext))

	if err := writeStream(path, r); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	return &Source{Path: path, Owned: true}, nil
}

// FromLink downloads a remote video to the temp directory. Transient
// failures (timeouts, 429, 5xx) are retried with backoff.
func (s *Store) FromLink(ctx context.Context, url string) (*Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download video: unexpected status %s", resp.Status)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("download-%s%s", uuid.NewString(), linkExt(url)))
	if err := writeStream(path, resp.Body); err != nil {
		return nil, fmt.Errorf("save download: %w", err)
	}
	return &Source{Path: path, Owned: true}, nil
}

func writeStream(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func linkExt(url string) string {
	url = strings.SplitN(url, "?", 2)[0]
	if ext := filepath.Ext(url); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ".mp4"
}
