package sse

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// defaultChunkSize is how many bytes a Scanner asks the reader for at once.
const defaultChunkSize = 4096

// Decoder reassembles newline-delimited lines from byte chunks that may split
// lines, or multi-byte characters, at any position. A Decoder serves one
// stream; its buffered fragment is never shared.
type Decoder struct {
	buf  []byte
	utf8 *encoding.Decoder
}

// NewDecoder returns a Decoder with an empty buffer.
func NewDecoder() *Decoder {
	return &Decoder{utf8: unicode.UTF8.NewDecoder()}
}

// Feed appends chunk to the buffer and returns every line it completes, in
// order, without the trailing "\n". The fragment after the last delimiter
// stays buffered for the next call.
//
// Lines are cut in the byte domain before decoding. "\n" never occurs inside
// a UTF-8 sequence, so a character split across chunks is decoded only once
// all of its bytes arrived. Invalid bytes decode to U+FFFD.
func (d *Decoder) Feed(chunk []byte) []string {
	d.buf = append(d.buf, chunk...)
	var lines []string
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, d.decode(d.buf[:idx]))
		d.buf = d.buf[idx+1:]
	}
	if len(d.buf) == 0 {
		// Drop the backing array once fully consumed.
		d.buf = nil
	}
	return lines
}

// Pending returns the number of buffered bytes not yet terminated by "\n".
func (d *Decoder) Pending() int {
	return len(d.buf)
}

// Reset discards the buffered fragment. A stream that ended mid-line carries
// no complete frame, so its residue is never emitted.
func (d *Decoder) Reset() {
	d.buf = nil
}

func (d *Decoder) decode(line []byte) string {
	out, err := d.utf8.Bytes(line)
	if err != nil {
		// The UTF-8 decoder substitutes instead of failing; keep the raw
		// bytes if that ever changes.
		return string(line)
	}
	return string(out)
}

// Scanner yields complete lines lazily from a reader.
type Scanner struct {
	r       io.Reader
	dec     *Decoder
	chunk   []byte
	pending []string
	err     error
}

// NewScanner returns a Scanner reading r in chunks of 4 KiB.
func NewScanner(r io.Reader) *Scanner {
	return NewScannerSize(r, defaultChunkSize)
}

// NewScannerSize returns a Scanner reading r in chunks of at most size bytes.
func NewScannerSize(r io.Reader, size int) *Scanner {
	if size <= 0 {
		size = defaultChunkSize
	}
	return &Scanner{r: r, dec: NewDecoder(), chunk: make([]byte, size)}
}

// Next returns the next complete line. It reads from the underlying reader
// only when no decoded line is queued. At the end of input it discards any
// unterminated fragment and returns io.EOF; a read error is returned as is,
// after the lines decoded before it. Later calls repeat the terminal error.
func (s *Scanner) Next() (string, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return "", s.err
		}
		n, err := s.r.Read(s.chunk)
		if n > 0 {
			s.pending = s.dec.Feed(s.chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.dec.Reset()
				err = io.EOF
			}
			s.err = err
		}
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, nil
}
