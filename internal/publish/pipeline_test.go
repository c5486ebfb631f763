package publish

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"seostudio/internal/acquire"
	"seostudio/internal/seo"
	"seostudio/internal/uploader"
)

type fakeUploader struct {
	lastCredential string
	lastRequest    uploader.UploadRequest
	response       *uploader.UploadResponse
	err            error
}

func (f *fakeUploader) Upload(ctx context.Context, credential string, req uploader.UploadRequest) (*uploader.UploadResponse, error) {
	f.lastCredential = credential
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeArchive struct {
	savedPath string
	savedID   string
}

func (f *fakeArchive) Save(ctx context.Context, localPath, videoID string) error {
	f.savedPath = localPath
	f.savedID = videoID
	return nil
}

func newTestPublisher(up uploader.Uploader, archive Archiver) *Publisher {
	gen := seo.NewGenerator(seo.DefaultLibrary(), rand.New(rand.NewSource(7)))
	return NewPublisher(gen, up, archive)
}

func tempVideo(t *testing.T) *acquire.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(path, []byte("bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return &acquire.Source{Path: path, Owned: true}
}

func TestPublishSuccess(t *testing.T) {
	up := &fakeUploader{response: &uploader.UploadResponse{ID: "vid-123", URL: "https://youtube.com/watch?v=vid-123"}}
	archive := &fakeArchive{}
	pub := newTestPublisher(up, archive)
	src := tempVideo(t)

	result, err := pub.Publish(context.Background(), Request{
		Source:     src,
		Category:   "gaming",
		Language:   "en",
		Credential: "bearer-token",
	})
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if result.VideoID != "vid-123" {
		t.Errorf("VideoID = %q, want vid-123", result.VideoID)
	}
	if up.lastCredential != "bearer-token" {
		t.Errorf("credential = %q, want bearer-token", up.lastCredential)
	}
	if up.lastRequest.CategoryID != uploader.DefaultCategoryID {
		t.Errorf("CategoryID = %q, want the fixed constant %q", up.lastRequest.CategoryID, uploader.DefaultCategoryID)
	}
	if up.lastRequest.PrivacyStatus != "public" {
		t.Errorf("PrivacyStatus = %q, want public", up.lastRequest.PrivacyStatus)
	}
	if up.lastRequest.PublishAt != "" {
		t.Errorf("PublishAt = %q, want empty", up.lastRequest.PublishAt)
	}
	if result.Metadata.Title == "" || len(result.Metadata.Tags) == 0 {
		t.Error("metadata not populated")
	}

	if archive.savedID != "vid-123" {
		t.Errorf("archive saved id = %q, want vid-123", archive.savedID)
	}

	if _, err := os.Stat(src.Path); !os.IsNotExist(err) {
		t.Error("owned temp file should be removed after a successful upload")
	}
}

func TestPublishScheduled(t *testing.T) {
	up := &fakeUploader{response: &uploader.UploadResponse{ID: "vid-sched"}}
	pub := newTestPublisher(up, nil)

	result, err := pub.Publish(context.Background(), Request{
		Source:       tempVideo(t),
		Category:     "tech",
		Language:     "en",
		ScheduleTime: "2026-09-01T15:04",
		Credential:   "tok",
	})
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if up.lastRequest.PrivacyStatus != "private" {
		t.Errorf("PrivacyStatus = %q, want private for scheduled upload", up.lastRequest.PrivacyStatus)
	}
	if up.lastRequest.PublishAt == "" {
		t.Error("PublishAt should be set for scheduled upload")
	}
	if result.ScheduledTime != "2026-09-01T15:04" {
		t.Errorf("ScheduledTime = %q, want raw input echoed", result.ScheduledTime)
	}
}

func TestPublishInvalidSchedule(t *testing.T) {
	up := &fakeUploader{response: &uploader.UploadResponse{ID: "x"}}
	pub := newTestPublisher(up, nil)

	_, err := pub.Publish(context.Background(), Request{
		Source:       tempVideo(t),
		Category:     "tech",
		ScheduleTime: "next tuesday",
		Credential:   "tok",
	})
	if err == nil {
		t.Fatal("Publish() should fail on unparseable schedule time")
	}
}

func TestPublishUploadFailureLeavesTempFile(t *testing.T) {
	up := &fakeUploader{err: errors.New("quota exceeded")}
	pub := newTestPublisher(up, nil)
	src := tempVideo(t)

	_, err := pub.Publish(context.Background(), Request{
		Source:     src,
		Category:   "tech",
		Credential: "tok",
	})
	if err == nil {
		t.Fatal("Publish() should propagate upload failure")
	}

	if _, statErr := os.Stat(src.Path); statErr != nil {
		t.Error("temp file should remain on disk after a failed upload")
	}
}

func TestPublishCallerSuppliedPathKept(t *testing.T) {
	up := &fakeUploader{response: &uploader.UploadResponse{ID: "vid-keep"}}
	pub := newTestPublisher(up, nil)

	path := filepath.Join(t.TempDir(), "precious.mp4")
	if err := os.WriteFile(path, []byte("bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := pub.Publish(context.Background(), Request{
		Source:     &acquire.Source{Path: path, Owned: false},
		Category:   "tech",
		Credential: "tok",
	})
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Error("caller-supplied file must never be deleted")
	}
}

func TestParseSchedule(t *testing.T) {
	// Zone-less inputs are read in server-local time, so their expected UTC
	// form depends on the zone the test runs in.
	localUTC := func(h, m, s int) string {
		return time.Date(2026, 9, 1, h, m, s, 0, time.Local).UTC().Format(time.RFC3339)
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"rfc3339", "2026-09-01T12:00:00Z", "2026-09-01T12:00:00Z", false},
		{"rfc3339Offset", "2026-09-01T12:00:00+02:00", "2026-09-01T10:00:00Z", false},
		{"datetimeLocal", "2026-09-01T12:00", localUTC(12, 0, 0), false},
		{"withSeconds", "2026-09-01T12:00:30", localUTC(12, 0, 30), false},
		{"garbage", "soon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSchedule(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSchedule(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSchedule(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
