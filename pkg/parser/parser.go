// Package parser defines the capability every diagnostic format implements
// and the static registry used to dispatch input files to a format by name.
package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/octocheck/pkg/annotation"
)

// Parser consumes raw tool output and accumulates annotations and a status
// across every Parse call made on the same instance.
//
// Parse fails with *annotation.FormatError only when the stream's envelope is
// unrecognized; malformed individual records are skipped.
type Parser interface {
	Parse(r io.Reader) error
	Annotations() annotation.Set
	Status() annotation.Status
}

// Skipper is implemented by parsers that count the records they dropped.
type Skipper interface {
	Skipped() int
}

// ParseFile parses the file at path with p. The file is closed on every exit
// path; a failure closing it after a successful parse is only logged.
func ParseFile(p Parser, path string, log logrus.FieldLogger) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && log != nil {
			log.WithField("file", path).WithError(cerr).Warn("closing input file")
		}
	}()

	if err := p.Parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if s, ok := p.(Skipper); ok && s.Skipped() > 0 && log != nil {
		log.WithField("file", path).Debugf("skipped %d unrecognized record(s)", s.Skipped())
	}
	return nil
}
