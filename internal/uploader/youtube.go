package uploader

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

// DefaultCategoryID is sent with every insert call ("People & Blogs"). The
// user-selected category only shapes the generated text, not the platform
// category.
const DefaultCategoryID = "22"

const privacyPublic = "public"

// YouTube uploads videos through the Data API v3. A fresh service is built
// per call because the bearer credential is request-scoped.
type YouTube struct {
	opts []option.ClientOption
}

// NewYouTube returns an uploader. Extra client options are appended after
// the per-request token source, which lets tests point the service at a
// fake endpoint.
func NewYouTube(opts ...option.ClientOption) *YouTube {
	return &YouTube{opts: opts}
}

// Upload streams the file at req.Path in a single blocking videos.insert
// call and returns the platform-assigned id. No retries, no resumable
// chunking.
func (y *YouTube) Upload(ctx context.Context, credential string, req UploadRequest) (*UploadResponse, error) {
	if credential == "" {
		return nil, fmt.Errorf("missing bearer credential")
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential})
	opts := append([]option.ClientOption{option.WithTokenSource(source)}, y.opts...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	file, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("open video file: %w", err)
	}
	defer func() { _ = file.Close() }()

	call := service.Videos.Insert([]string{"snippet", "status"}, buildVideo(req))
	call = call.Media(file)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	return &UploadResponse{
		ID:  resp.Id,
		URL: fmt.Sprintf("https://youtube.com/watch?v=%s", resp.Id),
	}, nil
}

func buildVideo(req UploadRequest) *youtube.Video {
	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = DefaultCategoryID
	}

	status := &youtube.VideoStatus{
		PrivacyStatus:           req.PrivacyStatus,
		PublishAt:               req.PublishAt,
		SelfDeclaredMadeForKids: false,
		ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
	}
	if status.PrivacyStatus == "" {
		status.PrivacyStatus = privacyPublic
	}
	if req.Monetization {
		status.MadeForKids = false
		status.ForceSendFields = append(status.ForceSendFields, "MadeForKids")
	}

	return &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
			CategoryId:  categoryID,
		},
		Status: status,
	}
}
