package sse

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/ragchat"
)

// Parse maps one decoded line to an event. It returns false for lines that
// carry no event: blank keep-alives, lines without the "data: " prefix,
// payloads that are not JSON, unknown types and chunks for an unknown mode.
// None of these are errors; the protocol tolerates stray control lines.
func Parse(line string) (ragchat.Event, bool) {
	line = strings.TrimSpace(line)
	data, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return nil, false
	}

	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, false
	}

	switch p.Type {
	case "chunk":
		if !p.Mode.Valid() {
			return nil, false
		}
		return ragchat.EventChunk{Mode: p.Mode, Text: p.Content}, true
	case "error":
		mode := p.Mode
		if !mode.Valid() {
			mode = ""
		}
		return ragchat.EventError{Mode: mode, Message: p.Message}, true
	case "start":
		if !p.Mode.Valid() {
			return nil, false
		}
		return ragchat.EventStart{Mode: p.Mode}, true
	case "sources":
		if !p.Mode.Valid() {
			return nil, false
		}
		return ragchat.EventSources{Mode: p.Mode, Sources: p.Sources}, true
	case "done":
		return ragchat.EventDone{}, true
	default:
		return nil, false
	}
}
