package uploader

import "context"

// UploadRequest carries everything needed for one insert-video call. The
// bearer credential is passed separately because it is request-scoped.
type UploadRequest struct {
	Path          string
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
	// PublishAt is an RFC3339 timestamp; empty when the video is not
	// scheduled.
	PublishAt    string
	Monetization bool
}

type UploadResponse struct {
	ID  string
	URL string
}

type Uploader interface {
	Upload(ctx context.Context, credential string, req UploadRequest) (*UploadResponse, error)
}
