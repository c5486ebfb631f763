// Package server exposes the upload pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/googleapi"

	"seostudio/internal/acquire"
	"seostudio/internal/publish"
	"seostudio/internal/session"
)

type Server struct {
	publisher *publish.Publisher
	store     *acquire.Store
	tokens    *session.TokenFile
}

// New wires the handlers. tokens may be nil, in which case only the
// Authorization header can authenticate a request.
func New(publisher *publish.Publisher, store *acquire.Store, tokens *session.TokenFile) *Server {
	return &Server{publisher: publisher, store: store, tokens: tokens}
}

// Router constructs the gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})

	r.GET("/healthz", handleHealth)
	r.POST("/api/upload", s.handleUpload)
	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

type uploadResponse struct {
	Success         bool     `json:"success"`
	VideoID         string   `json:"videoId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	Hashtags        string   `json:"hashtags"`
	ThumbnailPrompt string   `json:"thumbnailPrompt"`
	ScheduledTime   string   `json:"scheduledTime,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// handleUpload runs one request through acquisition, metadata generation and
// the platform upload. POST /api/upload, multipart/form-data.
func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, acquire.MaxUploadBytes)

	credential, err := s.credential(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Not authenticated"})
		return
	}

	source, err := s.acquireSource(c)
	if errors.Is(err, acquire.ErrNoVideo) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No video provided"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.publisher.Publish(c.Request.Context(), publish.Request{
		Source:       source,
		Category:     formValue(c, "category", "tech"),
		Language:     formValue(c, "language", "en"),
		Monetization: c.PostForm("monetization") == "true",
		ScheduleTime: c.PostForm("scheduleTime"),
		Credential:   credential,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   err.Error(),
			Details: platformDetails(err),
		})
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Success:         true,
		VideoID:         result.VideoID,
		Title:           result.Metadata.Title,
		Description:     result.Metadata.Description,
		Tags:            result.Metadata.Tags,
		Hashtags:        result.Metadata.Hashtags,
		ThumbnailPrompt: result.Metadata.ThumbnailPrompt,
		ScheduledTime:   result.ScheduledTime,
	})
}

// credential prefers the request's bearer header, then the stored token
// file written by the auth command.
func (s *Server) credential(r *http.Request) (string, error) {
	if token, ok := session.FromRequest(r); ok {
		return token, nil
	}
	if s.tokens != nil {
		return s.tokens.Token()
	}
	return "", session.ErrNotAuthenticated
}

// acquireSource resolves the request's video onto local disk. An uploaded
// file silently wins over a link when both are present. Only a genuinely
// absent file part falls through to the link; a body that fails to parse is
// an error in its own right.
func (s *Server) acquireSource(c *gin.Context) (*acquire.Source, error) {
	header, err := c.FormFile("video")
	if err == nil {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return s.store.FromUpload(f, header.Filename)
	}
	if !errors.Is(err, http.ErrMissingFile) {
		return nil, fmt.Errorf("parse upload form: %w", err)
	}

	if link := c.PostForm("videoLink"); link != "" {
		return s.store.FromLink(c.Request.Context(), link)
	}

	return nil, acquire.ErrNoVideo
}

// formValue treats an empty field the same as an absent one.
func formValue(c *gin.Context, key, fallback string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return fallback
}

// platformDetails passes the platform's diagnostic payload through verbatim
// when the failure came from the upload API.
func platformDetails(err error) any {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return nil
	}
	if json.Valid([]byte(apiErr.Body)) {
		return json.RawMessage(apiErr.Body)
	}
	if apiErr.Body != "" {
		return apiErr.Body
	}
	return apiErr.Message
}
