package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/octocheck/internal/config"
	"github.com/dkoosis/octocheck/internal/version"
)

const headSHA = "0123456789abcdef0123456789abcdef01234567"

type harness struct {
	dir            string
	stdout, stderr bytes.Buffer
	env            map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{dir: t.TempDir(), env: map[string]string{}}
}

func (h *harness) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	a := &app{stdout: &h.stdout, stderr: &h.stderr, log: newLogger(&h.stderr)}
	a.resolver = config.Resolver{
		LookupEnv: func(k string) (string, bool) { v, ok := h.env[k]; return v, ok },
		DotEnv:    filepath.Join(h.dir, "absent.env"),
		Files:     []string{},
		Head:      func() (string, error) { return headSHA, nil },
	}
	root := a.rootCommand()
	root.SetArgs(args)
	return a.execute(context.Background(), root)
}

const pep8Report = "src/a.py:3:5: E101 indentation contains mixed spaces and tabs\nsrc/b.py:1:80: W291 trailing whitespace\n"

func TestFormats(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("formats"))
	assert.Equal(t, "cargo   Cargo JSON\npep8    PEP8\nxunit   xUnit\nsarif   SARIF\n", h.stdout.String())
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("version"))
	assert.Equal(t, version.String()+"\n", h.stdout.String())
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("bogus"))
	assert.Contains(t, h.stderr.String(), "unknown command")

	assert.Equal(t, 2, h.run("--no-such-flag"))
	assert.Equal(t, 2, h.run("preview", "--output", "html", "x"))
	assert.Equal(t, 2, h.run("preview"))
	assert.Contains(t, h.stderr.String(), "nothing to preview")
	assert.Equal(t, 2, h.run("preview", "--format", "nope", "x"))
}

func TestPreview_ExplicitFilesDetected(t *testing.T) {
	h := newHarness(t)
	pep := h.file(t, "flake8.txt", pep8Report)
	junit := h.file(t, "junit.xml", `<testsuites><testsuite><testcase name="ok"/></testsuite></testsuites>`)
	junk := h.file(t, "notes.md", "# hello\n")

	code := h.run("preview", pep, junit, junk)
	assert.Equal(t, 1, code, "pep8 findings fail the run")

	out := h.stdout.String()
	assert.Contains(t, out, "SCOPE: 2 annotations in 2 files\n")
	assert.Contains(t, out, "STATUS: FAILURE\n")
	assert.Contains(t, out, "## src/a.py\n  ERR 3:5 E101 indentation contains mixed spaces and tabs\n")
	assert.Contains(t, out, "## src/b.py\n  WARN 1:80 W291 trailing whitespace\n")
	assert.Contains(t, h.stderr.String(), "unrecognized format")
}

func TestPreview_SARIFNotesAreNeutral(t *testing.T) {
	h := newHarness(t)
	log := h.file(t, "lint.sarif", `{"version":"2.1.0","runs":[{"tool":{"driver":{"name":"golangci-lint"}},"results":[
	  {"ruleId":"godot","level":"note","message":{"text":"Comment should end in a period"},
	   "locations":[{"physicalLocation":{"artifactLocation":{"uri":"main.go"},"region":{"startLine":7}}}]}]}]}`)

	require.Equal(t, 0, h.run("preview", log))
	out := h.stdout.String()
	assert.Contains(t, out, "STATUS: NEUTRAL\n")
	assert.Contains(t, out, "## main.go\n  NOTE 7 Comment should end in a period (golangci-lint: godot)\n")
}

func TestPreview_ForcedFormatAndJSON(t *testing.T) {
	h := newHarness(t)
	junit := h.file(t, "report.txt", `<testsuite><testcase/></testsuite>`)

	require.Equal(t, 0, h.run("preview", "--format", "xunit", "--output", "json", junit))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &doc))
	assert.Equal(t, "1", doc["version"])
}

func TestPreview_ConfiguredPatterns(t *testing.T) {
	h := newHarness(t)
	h.file(t, "a.txt", pep8Report)
	h.env["OC_PEP8"] = filepath.Join(h.dir, "*.txt")

	assert.Equal(t, 1, h.run("preview", "--output", "llm"))
	assert.Contains(t, h.stdout.String(), "SCOPE: 2 annotations in 2 files")
}

func TestConfigCommand(t *testing.T) {
	h := newHarness(t)
	h.env["OC_GH_OWNER"] = "octo"

	assert.Equal(t, 2, h.run("config"))
	out := h.stdout.String()
	assert.Contains(t, out, "gh_owner=octo (env)")
	assert.Contains(t, out, "commit="+headSHA+" (git)")
	assert.Contains(t, h.stderr.String(), "missing required configuration")
}

func TestSubmit_MissingConfig(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("--gh-owner", "octo"))
	assert.Contains(t, h.stderr.String(), "--app-id (OC_APP_ID)")
	assert.NotContains(t, h.stderr.String(), "--gh-owner (")
}

// fakeGitHub serves the endpoints submit touches.
type fakeGitHub struct {
	mu           sync.Mutex
	installation int
	created      []map[string]any
	updates      int
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/repos/octo/widgets/installation":
		if f.installation == 0 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Not Found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id": 12}`)
	case r.URL.Path == "/app/installations/12/access_tokens":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"token":"ghs_test"}`)
	case r.URL.Path == "/repos/octo/widgets" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"id":1,"full_name":"octo/widgets"}`)
	case r.URL.Path == "/repos/octo/widgets/check-runs" && r.Method == http.MethodPost:
		var req map[string]any
		_ = json.Unmarshal(body, &req)
		f.created = append(f.created, req)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":99,"html_url":"https://github.test/runs/99"}`)
	case strings.HasPrefix(r.URL.Path, "/repos/octo/widgets/check-runs/") && r.Method == http.MethodPatch:
		f.updates++
		_, _ = io.WriteString(w, `{"id":99}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"unexpected `+r.Method+" "+r.URL.Path+`"}`)
	}
}

func writeKey(t *testing.T, h *harness) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return h.file(t, "app.pem", string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})))
}

func submitArgs(t *testing.T, h *harness, apiURL string) []string {
	return []string{
		"--app-id", "42",
		"--priv-key-file", writeKey(t, h),
		"--gh-owner", "octo",
		"--gh-repo", "widgets",
		"--api-url", apiURL,
		"--del-prefix", "src/",
		"--add-prefix", "python/",
		"--pep8", filepath.Join(h.dir, "*.txt"),
	}
}

func TestSubmit_EndToEnd(t *testing.T) {
	h := newHarness(t)
	h.file(t, "flake8.txt", pep8Report)
	gh := &fakeGitHub{installation: 12}
	srv := httptest.NewServer(gh)
	defer srv.Close()

	code := h.run(submitArgs(t, h, srv.URL)...)
	require.Equal(t, 0, code, h.stderr.String())
	assert.Equal(t, "1 files parsed, 2 annotations in total.\n", h.stdout.String())

	require.Len(t, gh.created, 1)
	assert.Zero(t, gh.updates)
	req := gh.created[0]
	assert.Equal(t, headSHA, req["head_sha"])
	assert.Equal(t, "octocheck", req["name"])
	assert.Equal(t, "failure", req["conclusion"])
	assert.NotEmpty(t, req["external_id"])

	output := req["output"].(map[string]any)
	assert.Equal(t, "OctoCheck reporter", output["title"])
	assert.Equal(t, "1 PEP8 files parsed, 2 PEP8 annotations.\n\n", output["text"])
	anns := output["annotations"].([]any)
	require.Len(t, anns, 2)
	assert.Equal(t, "python/a.py", anns[0].(map[string]any)["path"])
}

func TestSubmit_NoInstallation(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(&fakeGitHub{})
	defer srv.Close()

	assert.Equal(t, 1, h.run(submitArgs(t, h, srv.URL)...))
	assert.Contains(t, h.stderr.String(), "Couldn't find an installation of this GitHub app on that repository")
}

func TestSubmit_BadKey(t *testing.T) {
	h := newHarness(t)
	args := submitArgs(t, h, "http://127.0.0.1:0")
	h.file(t, "app.pem", "garbage")

	assert.Equal(t, 1, h.run(args...))
	assert.Contains(t, h.stderr.String(), "Couldn't authenticate as a GitHub app")
}
