// Package linescan reads newline-delimited records. Unlike bufio.Scanner it
// never stops at an oversized line: the line is discarded and counted, and
// reading resumes after the next newline.
package linescan

import (
	"bufio"
	"errors"
	"io"
)

const readSize = 64 * 1024

// Each calls fn for every line of r shorter than limit bytes, with the line
// terminator removed. The slice passed to fn is reused between calls.
// Lines of limit bytes or more are skipped and counted in oversized. err is
// only set for read failures of r itself.
func Each(r io.Reader, limit int, fn func(line []byte)) (oversized int, err error) {
	br := bufio.NewReaderSize(r, readSize)
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return oversized, nil
			}
			return oversized, err
		}
		if !tooLong {
			if len(buf)+len(chunk) >= limit {
				tooLong = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if isPrefix {
			continue
		}
		if tooLong {
			oversized++
		} else {
			fn(buf)
		}
		buf = buf[:0]
		tooLong = false
	}
}
