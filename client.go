package ragchat

import (
	"context"
	"io"
)

// Client is the boundary to the question-answering service.
type Client interface {
	// Chat opens a streaming answer for req. A non-nil error means the
	// stream never opened.
	Chat(ctx context.Context, req ChatRequest) (Stream, error)
	// Documents lists the documents indexed by the service.
	Documents(ctx context.Context) ([]Document, error)
	// Upload sends one file for indexing.
	Upload(ctx context.Context, name string, r io.Reader) (UploadResult, error)
}

// ChatRequest is one question sent to the service.
type ChatRequest struct {
	Message    string
	Comparison bool
}

// Document describes one document known to the service's index.
type Document struct {
	ID             string `json:"id"`
	Source         string `json:"source"`
	Status         string `json:"status"`
	ContentSummary string `json:"content_summary"`
}

// UploadResult is the service's verdict on an uploaded file. Status is
// "success" or "error"; Message is shown to the user as-is.
type UploadResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// OK reports whether the service indexed the file.
func (r UploadResult) OK() bool {
	return r.Status == "success"
}
