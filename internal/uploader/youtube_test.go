package uploader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/api/option"
)

func TestBuildVideo(t *testing.T) {
	tests := []struct {
		name          string
		req           UploadRequest
		wantPrivacy   string
		wantPublishAt string
		wantCategory  string
		wantForceKids bool
	}{
		{
			name: "immediate",
			req: UploadRequest{
				Title:         "A title",
				PrivacyStatus: "public",
			},
			wantPrivacy:  "public",
			wantCategory: DefaultCategoryID,
		},
		{
			name: "scheduled",
			req: UploadRequest{
				Title:         "A title",
				PrivacyStatus: "private",
				PublishAt:     "2026-09-01T12:00:00Z",
			},
			wantPrivacy:   "private",
			wantPublishAt: "2026-09-01T12:00:00Z",
			wantCategory:  DefaultCategoryID,
		},
		{
			name: "monetization",
			req: UploadRequest{
				Title:         "A title",
				PrivacyStatus: "public",
				Monetization:  true,
			},
			wantPrivacy:   "public",
			wantCategory:  DefaultCategoryID,
			wantForceKids: true,
		},
		{
			name: "explicitCategoryKept",
			req: UploadRequest{
				Title:         "A title",
				CategoryID:    "28",
				PrivacyStatus: "public",
			},
			wantPrivacy:  "public",
			wantCategory: "28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := buildVideo(tt.req)

			if video.Status.PrivacyStatus != tt.wantPrivacy {
				t.Errorf("PrivacyStatus = %q, want %q", video.Status.PrivacyStatus, tt.wantPrivacy)
			}
			if video.Status.PublishAt != tt.wantPublishAt {
				t.Errorf("PublishAt = %q, want %q", video.Status.PublishAt, tt.wantPublishAt)
			}
			if video.Snippet.CategoryId != tt.wantCategory {
				t.Errorf("CategoryId = %q, want %q", video.Snippet.CategoryId, tt.wantCategory)
			}
			if video.Status.SelfDeclaredMadeForKids {
				t.Error("SelfDeclaredMadeForKids should be false")
			}

			forced := false
			for _, field := range video.Status.ForceSendFields {
				if field == "MadeForKids" {
					forced = true
				}
			}
			if forced != tt.wantForceKids {
				t.Errorf("MadeForKids force-sent = %v, want %v", forced, tt.wantForceKids)
			}
		})
	}
}

func TestBuildVideoTagsAndText(t *testing.T) {
	req := UploadRequest{
		Title:         "Generated title",
		Description:   "Generated description",
		Tags:          []string{"gaming", "gameplay"},
		PrivacyStatus: "public",
	}

	video := buildVideo(req)

	if video.Snippet.Title != req.Title {
		t.Errorf("Title = %q, want %q", video.Snippet.Title, req.Title)
	}
	if video.Snippet.Description != req.Description {
		t.Errorf("Description = %q, want %q", video.Snippet.Description, req.Description)
	}
	if len(video.Snippet.Tags) != 2 || video.Snippet.Tags[0] != "gaming" {
		t.Errorf("Tags = %v, want %v", video.Snippet.Tags, req.Tags)
	}
}

func TestUploadNoCredential(t *testing.T) {
	yt := NewYouTube()

	_, err := yt.Upload(context.Background(), "", UploadRequest{Path: "/tmp/video.mp4"})
	if err == nil {
		t.Fatal("Upload() should fail without a credential")
	}
}

func TestUploadMissingFile(t *testing.T) {
	yt := NewYouTube()

	_, err := yt.Upload(context.Background(), "token", UploadRequest{
		Path:          filepath.Join(t.TempDir(), "nope.mp4"),
		PrivacyStatus: "public",
	})
	if err == nil {
		t.Fatal("Upload() should fail for a nonexistent file")
	}
}

func TestUploadAgainstFakePlatform(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("platform got method %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"fake-video-id"}`))
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(path, []byte("bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	yt := NewYouTube(option.WithEndpoint(ts.URL))

	resp, err := yt.Upload(context.Background(), "test-token", UploadRequest{
		Path:          path,
		Title:         "Test upload",
		PrivacyStatus: "public",
	})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if resp.ID != "fake-video-id" {
		t.Errorf("ID = %q, want fake-video-id", resp.ID)
	}
	if resp.URL != "https://youtube.com/watch?v=fake-video-id" {
		t.Errorf("URL = %q", resp.URL)
	}
}
