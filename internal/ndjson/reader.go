// Package ndjson provides newline-delimited JSON line framing for
// subprocess pipes.
package ndjson

import (
	"bufio"
	"bytes"
	"io"
)

// Reader frames an underlying byte stream into newline-delimited lines.
// A trailing chunk without a final newline is still delivered as one
// complete line before io.EOF.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next non-empty line with the line terminator
// stripped. Blank lines are skipped. Returns io.EOF once the stream is
// exhausted.
func (r *Reader) ReadLine() ([]byte, error) {
	for {
		line, err := r.br.ReadBytes('\n')
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 {
			// Swallow a simultaneous io.EOF: the partial final line is
			// delivered now and EOF is reported on the next call.
			return line, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
