// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package pulse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// The bridge wire format is a plain text stream of signed integer
// durations in microseconds: positive for mark, negative for space,
// separated by whitespace or commas. It is what the reference bridge
// sketch prints and trivially inspectable with a terminal.

// A StreamReader incrementally parses the signed-duration text format
// into pulse pairs.
type StreamReader struct {
	scanner *bufio.Scanner
	pending time.Duration
	hasMark bool
}

// NewStreamReader wraps r for reading signed-duration pulse text.
func NewStreamReader(r io.Reader) *StreamReader {
	sc := bufio.NewScanner(r)
	sc.Split(scanDurations)
	return &StreamReader{scanner: sc}
}

// scanDurations splits on whitespace and commas.
func scanDurations(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSep(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if isSep(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

func isSep(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ','
}

// Next returns the next complete pulse pair from the stream. It returns
// io.EOF once the stream is exhausted; a trailing unmatched mark is
// returned as a pair with zero space.
func (sr *StreamReader) Next() (Pair, error) {
	for sr.scanner.Scan() {
		tok := strings.TrimSpace(sr.scanner.Text())
		if tok == "" {
			continue
		}
		us, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return Pair{}, fmt.Errorf("bad duration %q: %w", tok, err)
		}
		d := time.Duration(us) * time.Microsecond
		if us >= 0 {
			if sr.hasMark {
				// Two marks in a row; the receiver missed a gap.
				// Emit the dangling mark with zero space.
				p := Pair{Mark: sr.pending}
				sr.pending = d
				return p, nil
			}
			sr.pending = d
			sr.hasMark = true
			continue
		}
		if !sr.hasMark {
			// Leading space with no mark; skip it.
			continue
		}
		sr.hasMark = false
		return Pair{Mark: sr.pending, Space: -d}, nil
	}
	if err := sr.scanner.Err(); err != nil {
		return Pair{}, err
	}
	if sr.hasMark {
		sr.hasMark = false
		return Pair{Mark: sr.pending}, nil
	}
	return Pair{}, io.EOF
}

// ReadPairs consumes the whole stream and returns every pulse pair.
func ReadPairs(r io.Reader) ([]Pair, error) {
	sr := NewStreamReader(r)
	var pairs []Pair
	for {
		p, err := sr.Next()
		if err == io.EOF {
			return pairs, nil
		}
		if err != nil {
			return pairs, err
		}
		pairs = append(pairs, p)
	}
}

// WritePairs writes a pulse train in the signed-duration text format,
// one pair per line.
func WritePairs(w io.Writer, pairs []Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		_, err := fmt.Fprintf(bw, "%d -%d\n",
			p.Mark.Microseconds(), p.Space.Microseconds())
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
