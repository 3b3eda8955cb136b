// Package records splits pipe-delimited catalog files into trimmed fields.
package records

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Separator delimits fields within one record.
const Separator = "|"

// Line is one non-blank record with its 1-based line number.
type Line struct {
	Number int
	Text   string
	Fields []string
}

// MaxLineLength bounds a single record, newline included.
const MaxLineLength = 64 * 1024

// ErrLineTooLong reports a record longer than MaxLineLength. The record is
// discarded and reading resumes on the next line.
var ErrLineTooLong = errors.New("line too long")

// Lines yields every non-blank line of r split on Separator, each field
// trimmed of surrounding white space. An over-long line is yielded as an
// error wrapping ErrLineTooLong and the sequence continues; a read failure
// is yielded once and ends the sequence.
func Lines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		br := bufio.NewReader(r)
		for n := 1; ; n++ {
			raw, tooLong, err := readLine(br)
			if tooLong {
				if !yield(Line{Number: n}, fmt.Errorf("line %d: %w", n, ErrLineTooLong)) {
					return
				}
			} else if text := strings.TrimSpace(raw); text != "" {
				fields := strings.Split(text, Separator)
				for i := range fields {
					fields[i] = strings.TrimSpace(fields[i])
				}
				if !yield(Line{Number: n, Text: text, Fields: fields}, nil) {
					return
				}
			}

			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Line{Number: n}, fmt.Errorf("read line %d: %w", n, err))
				return
			}
		}
	}
}

// readLine reads through the next newline, holding at most MaxLineLength
// bytes. Anything longer is drained and reported as tooLong.
func readLine(br *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > MaxLineLength {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(buf), tooLong, err
	}
}
