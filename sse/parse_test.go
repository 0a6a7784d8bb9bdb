package sse_test

import (
	"testing"

	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/sse"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	distance := 0.12

	tests := []struct {
		name string
		line string
		want ragchat.Event
		ok   bool
	}{
		{
			name: "hybrid chunk",
			line: `data: {"type":"chunk","mode":"hybrid","content":"Hel"}`,
			want: ragchat.EventChunk{Mode: ragchat.ModeHybrid, Text: "Hel"},
			ok:   true,
		},
		{
			name: "naive chunk",
			line: `data: {"type":"chunk","mode":"naive","content":"lo"}`,
			want: ragchat.EventChunk{Mode: ragchat.ModeNaive, Text: "lo"},
			ok:   true,
		},
		{
			name: "chunk preserves inner whitespace",
			line: `data: {"type":"chunk","mode":"naive","content":"  two spaces\n"}`,
			want: ragchat.EventChunk{Mode: ragchat.ModeNaive, Text: "  two spaces\n"},
			ok:   true,
		},
		{
			name: "surrounding whitespace and carriage return are trimmed",
			line: "  data: {\"type\":\"chunk\",\"mode\":\"hybrid\",\"content\":\"x\"}\r",
			want: ragchat.EventChunk{Mode: ragchat.ModeHybrid, Text: "x"},
			ok:   true,
		},
		{
			name: "error",
			line: `data: {"type":"error","message":"LLM unavailable"}`,
			want: ragchat.EventError{Message: "LLM unavailable"},
			ok:   true,
		},
		{
			name: "error attributed to a track",
			line: `data: {"type":"error","mode":"naive","message":"timeout"}`,
			want: ragchat.EventError{Mode: ragchat.ModeNaive, Message: "timeout"},
			ok:   true,
		},
		{
			name: "error with unknown mode drops the mode",
			line: `data: {"type":"error","mode":"local","message":"timeout"}`,
			want: ragchat.EventError{Message: "timeout"},
			ok:   true,
		},
		{
			name: "start",
			line: `data: {"type":"start","mode":"hybrid"}`,
			want: ragchat.EventStart{Mode: ragchat.ModeHybrid},
			ok:   true,
		},
		{
			name: "done",
			line: `data: {"type":"done"}`,
			want: ragchat.EventDone{},
			ok:   true,
		},
		{
			name: "sources",
			line: `data: {"type":"sources","mode":"hybrid","sources":[{"id":"r1","content":"Điều 5","source":"nd100.pdf","distance":0.12}]}`,
			want: ragchat.EventSources{Mode: ragchat.ModeHybrid, Sources: []ragchat.Reference{
				{ID: "r1", Content: "Điều 5", Source: "nd100.pdf", Distance: &distance},
			}},
			ok: true,
		},
		{name: "blank line", line: "", ok: false},
		{name: "whitespace only", line: "   \t", ok: false},
		{name: "comment", line: ": ping", ok: false},
		{name: "event field", line: "event: message", ok: false},
		{name: "prefix without space", line: `data:{"type":"done"}`, ok: false},
		{name: "prefix with nothing after it", line: "data: ", ok: false},
		{name: "malformed json", line: `data: {"type":"chunk","mode":`, ok: false},
		{name: "json that is not an object", line: `data: [1,2]`, ok: false},
		{name: "unknown type", line: `data: {"type":"heartbeat"}`, ok: false},
		{name: "missing type", line: `data: {"mode":"hybrid","content":"x"}`, ok: false},
		{name: "chunk without mode", line: `data: {"type":"chunk","content":"x"}`, ok: false},
		{name: "chunk with unknown mode", line: `data: {"type":"chunk","mode":"local","content":"x"}`, ok: false},
		{name: "start without mode", line: `data: {"type":"start"}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := sse.Parse(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
