// Package sse decodes the service's streamed chat responses.
//
// The response body is newline-delimited text. Each application event is one
// line carrying a "data: " prefix and a JSON payload discriminated by its
// "type" field. Decoding happens in three layers that mirror the wire: a
// [Decoder] turns arbitrarily split byte chunks into complete lines, [Parse]
// turns a line into a [ragchat.Event] or drops it, and the stream returned by
// [NewStream] pulls both over an HTTP response body.
package sse

import "github.com/fwojciec/ragchat"

const dataPrefix = "data: "

// payload is the union of every event shape on the wire.
type payload struct {
	Type    string              `json:"type"`
	Mode    ragchat.Mode        `json:"mode,omitempty"`
	Content string              `json:"content,omitempty"`
	Message string              `json:"message,omitempty"`
	Sources []ragchat.Reference `json:"sources,omitempty"`
}
