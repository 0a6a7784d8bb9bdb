// Package api implements [ragchat.Client] for the question-answering
// service's HTTP API.
//
// Chat answers arrive as a streamed response body decoded by package sse.
// Documents and Upload are plain JSON calls.
package api

const (
	defaultBaseURL = "http://localhost:8000/api"
	chatPath       = "/chat"
	documentsPath  = "/documents"
	uploadPath     = "/upload"
	healthPath     = "/health"
)

// apiChatRequest is the JSON body sent to the chat endpoint.
type apiChatRequest struct {
	Message        string `json:"message"`
	ComparisonMode bool   `json:"comparison_mode"`
	Stream         bool   `json:"stream"`
}

// apiErrorResponse is the JSON body returned on non-2xx responses.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

type apiHealth struct {
	Status string `json:"status"`
}
