package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/sse"
	"github.com/rs/zerolog"
)

// Interface compliance check.
var _ ragchat.Client = (*Client)(nil)

// Client implements [ragchat.Client] over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The client must not set a total
// request timeout shorter than the longest expected answer, since the chat
// body streams for the whole exchange.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a [Client] for the API rooted at baseURL, for example
// "http://localhost:8000/api". An empty baseURL selects that default.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat posts a question and returns a [ragchat.Stream] over the streamed
// answer. Any non-200 response is an error; the stream never opened.
func (c *Client) Chat(ctx context.Context, req ragchat.ChatRequest) (ragchat.Stream, error) {
	body, err := json.Marshal(apiChatRequest{
		Message:        req.Message,
		ComparisonMode: req.Comparison,
		Stream:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	c.log.Debug().
		Bool("comparison", req.Comparison).
		Int("message_len", len(req.Message)).
		Msg("opening chat stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return sse.NewStream(ctx, resp.Body), nil
}

// Documents lists the documents indexed by the service.
func (c *Client) Documents(ctx context.Context) ([]ragchat.Document, error) {
	var docs []ragchat.Document
	if err := c.getJSON(ctx, documentsPath, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Upload sends one file for indexing under name. Only ".pdf" and ".txt"
// files are accepted; others fail with [ragchat.ErrUnsupportedFile] before
// any request is made. An indexing failure reported by the service is not an
// error: it comes back as an UploadResult whose OK method returns false.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (ragchat.UploadResult, error) {
	if !Uploadable(name) {
		return ragchat.UploadResult{}, fmt.Errorf("api: %s: %w", name, ragchat.ErrUnsupportedFile)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("api: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("api: read %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("api: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("api: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	c.log.Info().Str("file", name).Int("bytes", buf.Len()).Msg("uploading document")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ragchat.UploadResult{}, parseHTTPError(resp)
	}

	var result ragchat.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("api: decode upload response: %w", err)
	}
	return result, nil
}

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) error {
	var h apiHealth
	if err := c.getJSON(ctx, healthPath, &h); err != nil {
		return err
	}
	if h.Status != "healthy" {
		return fmt.Errorf("api: service reports status %q", h.Status)
	}
	return nil
}

// Uploadable reports whether the service accepts files named like name.
func Uploadable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseHTTPError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("api: decode %s response: %w", path, err)
	}
	return nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
}
