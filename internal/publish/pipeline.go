// Package publish runs one upload request through its stages: generate SEO
// metadata, stream the video to the platform, archive a copy, clean up.
// Every stage reports failure through an explicit error return; there is no
// retry and no way backward once a stage has run.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seostudio/internal/acquire"
	"seostudio/internal/seo"
	"seostudio/internal/uploader"
)

// Archiver keeps a copy of a published video somewhere durable. Optional.
type Archiver interface {
	Save(ctx context.Context, localPath, videoID string) error
}

// Request is one publication job. Source points at a video already on local
// disk (the server's acquisition step produced it).
type Request struct {
	Source       *acquire.Source
	Category     string
	Language     string
	Monetization bool
	// ScheduleTime is the raw form value; accepted layouts are RFC3339 and
	// the HTML datetime-local form.
	ScheduleTime string
	Credential   string
}

type Result struct {
	VideoID       string
	Metadata      seo.Metadata
	ScheduledTime string
}

type Publisher struct {
	generator *seo.Generator
	uploader  uploader.Uploader
	archive   Archiver
}

func NewPublisher(generator *seo.Generator, up uploader.Uploader, archive Archiver) *Publisher {
	return &Publisher{generator: generator, uploader: up, archive: archive}
}

// Publish blocks until the platform acknowledges the video or a stage
// fails. The temp file is only removed after a successful upload; a failure
// mid-pipeline leaves it on disk.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	meta := p.generator.Generate(req.Category, req.Language)

	publishAt, err := parseSchedule(req.ScheduleTime)
	if err != nil {
		return nil, err
	}

	privacy := "public"
	if publishAt != "" {
		privacy = "private"
	}

	slog.Info("Uploading video",
		"path", req.Source.Path,
		"category", req.Category,
		"privacy", privacy,
	)

	resp, err := p.uploader.Upload(ctx, req.Credential, uploader.UploadRequest{
		Path:          req.Source.Path,
		Title:         meta.Title,
		Description:   meta.Description,
		Tags:          meta.Tags,
		CategoryID:    uploader.DefaultCategoryID,
		PrivacyStatus: privacy,
		PublishAt:     publishAt,
		Monetization:  req.Monetization,
	})
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	if p.archive != nil {
		if err := p.archive.Save(ctx, req.Source.Path, resp.ID); err != nil {
			slog.Warn("Archive copy failed", "video_id", resp.ID, "error", err)
		}
	}

	if err := req.Source.Remove(); err != nil {
		slog.Warn("Failed to remove temp file", "path", req.Source.Path, "error", err)
	}

	slog.Info("Upload complete", "video_id", resp.ID, "url", resp.URL)

	return &Result{
		VideoID:       resp.ID,
		Metadata:      meta,
		ScheduledTime: req.ScheduleTime,
	}, nil
}

var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseSchedule normalizes the form value to RFC3339 UTC for the platform's
// publishAt field. An empty input means "publish now". Zone-less inputs
// (the HTML datetime-local form) are read in server-local time.
func parseSchedule(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("parse schedule time %q", value)
}
