// Package github is a small client for the parts of the GitHub REST API
// octocheck needs: GitHub App authentication, installation lookup, and the
// Checks API.
package github

// Repository is the subset of the repository resource octocheck reads.
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Installation identifies an installation of the app on an account.
type Installation struct {
	ID int64 `json:"id"`
}

type accessToken struct {
	Token string `json:"token"`
}

// CheckRun is the subset of the check-run resource returned by the API.
type CheckRun struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	HeadSHA    string `json:"head_sha"`
	HTMLURL    string `json:"html_url"`
	Conclusion string `json:"conclusion"`
}

// Annotation is one check-run annotation. Optional fields are omitted from
// the payload when absent.
type Annotation struct {
	Path            string `json:"path"`
	StartLine       int    `json:"start_line"`
	EndLine         int    `json:"end_line"`
	AnnotationLevel string `json:"annotation_level"`
	Message         string `json:"message"`
	StartColumn     int    `json:"start_column,omitempty"`
	EndColumn       int    `json:"end_column,omitempty"`
	Title           string `json:"title,omitempty"`
	RawDetails      string `json:"raw_details,omitempty"`
}

// Output is the check-run output block. Annotations is always sent, even
// when empty.
type Output struct {
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Text        string       `json:"text,omitempty"`
	Annotations []Annotation `json:"annotations"`
}

// CreateCheckRun is the body of POST /repos/{owner}/{repo}/check-runs.
type CreateCheckRun struct {
	Name        string  `json:"name"`
	HeadSHA     string  `json:"head_sha"`
	DetailsURL  string  `json:"details_url,omitempty"`
	ExternalID  string  `json:"external_id,omitempty"`
	Status      string  `json:"status,omitempty"`
	Conclusion  string  `json:"conclusion,omitempty"`
	CompletedAt string  `json:"completed_at,omitempty"`
	Output      *Output `json:"output,omitempty"`
}

// UpdateCheckRun is the body of PATCH /repos/{owner}/{repo}/check-runs/{id}.
type UpdateCheckRun struct {
	Output *Output `json:"output"`
}
