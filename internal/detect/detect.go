// Package detect sniffs report files to guess which parser applies.
package detect

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown Format = iota
	Cargo          // cargo --message-format=json NDJSON stream
	PEP8           // path:line:col: message lines
	XUnit          // JUnit/xUnit XML report
	SARIF          // SARIF 2.1.0 log
)

// Name returns the parser registry name, or "" for Unknown.
func (f Format) Name() string {
	switch f {
	case Cargo:
		return "cargo"
	case PEP8:
		return "pep8"
	case XUnit:
		return "xunit"
	case SARIF:
		return "sarif"
	default:
		return ""
	}
}

func (f Format) String() string {
	if n := f.Name(); n != "" {
		return n
	}
	return "unknown"
}

// sniffLen bounds how much of a file SniffFile reads.
const sniffLen = 8 * 1024

// SniffFile reads the head of path and sniffs it.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Unknown, err
	}
	return Sniff(buf[:n]), nil
}

// Sniff examines the first bytes of input to determine format.
// The data may be truncated mid-record.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '<':
		if isXUnit(data) {
			return XUnit
		}
		return Unknown
	case '{':
		if isSARIF(data) {
			return SARIF
		}
		if isCargo(data) {
			return Cargo
		}
		return Unknown
	}

	if isPEP8(data) {
		return PEP8
	}
	return Unknown
}

func isXUnit(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local == "testsuites" || start.Name.Local == "testsuite"
		}
	}
}

// isSARIF walks the top-level keys of a JSON object looking for a string
// version and a runs array. Logs are often larger than the sniff window, so
// the walk stops at the first value it cannot skip.
func isSARIF(data []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return false
	}
	var version, runs bool
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := tok.(string)
		switch key {
		case "version":
			var v string
			if dec.Decode(&v) != nil {
				return false
			}
			version = v != ""
		case "runs":
			tok, err := dec.Token()
			if err != nil || tok != json.Delim('[') {
				return false
			}
			runs = true
			if version {
				return true
			}
			if !skipArray(dec) {
				return false
			}
		default:
			var skip json.RawMessage
			if dec.Decode(&skip) != nil {
				return false
			}
		}
		if version && runs {
			return true
		}
	}
	return version && runs
}

// skipArray consumes array elements up to and including the closing bracket.
func skipArray(dec *json.Decoder) bool {
	for dec.More() {
		var skip json.RawMessage
		if dec.Decode(&skip) != nil {
			return false
		}
	}
	_, err := dec.Token()
	return err == nil
}

func isCargo(data []byte) bool {
	// Cargo emits one object per line; the first complete one decides.
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var probe struct {
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			return false
		}
		return probe.Reason != ""
	}
	return false
}

func isPEP8(data []byte) bool {
	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		end = len(data)
	}
	parts := strings.SplitN(string(data[:end]), ":", 4)
	if len(parts) < 4 || parts[0] == "" {
		return false
	}
	for _, p := range parts[1:3] {
		if n, err := strconv.Atoi(p); err != nil || n <= 0 {
			return false
		}
	}
	return strings.TrimSpace(parts[3]) != ""
}
