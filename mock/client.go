// Package mock provides test doubles for ragchat interfaces using function fields.
package mock

import (
	"context"
	"io"

	"github.com/fwojciec/ragchat"
)

// Interface compliance check.
var _ ragchat.Client = (*Client)(nil)

// Client is a test double for ragchat.Client.
// Set the function fields for the methods you need; unset ones panic.
type Client struct {
	ChatFn      func(ctx context.Context, req ragchat.ChatRequest) (ragchat.Stream, error)
	DocumentsFn func(ctx context.Context) ([]ragchat.Document, error)
	UploadFn    func(ctx context.Context, name string, r io.Reader) (ragchat.UploadResult, error)
}

// Chat delegates to ChatFn.
func (c *Client) Chat(ctx context.Context, req ragchat.ChatRequest) (ragchat.Stream, error) {
	return c.ChatFn(ctx, req)
}

// Documents delegates to DocumentsFn.
func (c *Client) Documents(ctx context.Context) ([]ragchat.Document, error) {
	return c.DocumentsFn(ctx)
}

// Upload delegates to UploadFn.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (ragchat.UploadResult, error) {
	return c.UploadFn(ctx, name, r)
}
