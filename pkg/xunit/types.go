// Package xunit parses JUnit/xUnit-style XML test reports.
package xunit

// Root element names accepted by the parser.
const (
	rootSuites = "testsuites"
	rootSuite  = "testsuite"
)

type suites struct {
	Suites []suite `xml:"testsuite"`
}

type suite struct {
	Name  string     `xml:"name,attr"`
	Cases []testCase `xml:"testcase"`
}

// testCase carries the source location; its error and failure children carry
// the text.
type testCase struct {
	Name     string   `xml:"name,attr"`
	File     string   `xml:"file,attr"`
	Line     string   `xml:"line,attr"`
	Errors   []result `xml:"error"`
	Failures []result `xml:"failure"`
}

type result struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}
