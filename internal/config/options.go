package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkoosis/octocheck/pkg/parser"
)

// Kind is the value shape of an option.
type Kind int

const (
	KindString Kind = iota
	KindList
)

// Option describes one setting.
type Option struct {
	Key      string
	Kind     Kind
	Required bool
	Default  string
	Help     string
}

// Flag is the long flag name: the key with underscores replaced by dashes.
func (o Option) Flag() string {
	return strings.ReplaceAll(o.Key, "_", "-")
}

// Env is the environment variable carrying the option.
func (o Option) Env() string {
	return "OC_" + strings.ToUpper(o.Key)
}

// Keys used by the submit command.
const (
	KeyAppID       = "app_id"
	KeyPrivKeyFile = "priv_key_file"
	KeyOwner       = "gh_owner"
	KeyRepo        = "gh_repo"
	KeyCommit      = "commit"
	KeyAddPrefix   = "add_prefix"
	KeyDelPrefix   = "del_prefix"
	KeyCheckName   = "check_name"
	KeyDetailsURL  = "details_url"
	KeyTitle       = "title"
	KeyAPIURL      = "api_url"
)

// Options returns the full table: the fixed settings followed by one pattern
// list per format.
func Options(formats []parser.Format) []Option {
	table := []Option{
		{Key: KeyAppID, Required: true,
			Help: "GitHub App ID, from the app's developer settings"},
		{Key: KeyPrivKeyFile, Required: true,
			Help: "GitHub App private key file (PEM), from the app's developer settings"},
		{Key: KeyOwner, Required: true,
			Help: "repository owner (user or organization)"},
		{Key: KeyRepo, Required: true,
			Help: "repository name"},
		{Key: KeyCommit, Required: true,
			Help: "commit SHA to attach the check to (default: HEAD of the current git repository)"},
		{Key: KeyAddPrefix,
			Help: "prefix added to every annotated path; results must be relative to the repository root"},
		{Key: KeyDelPrefix,
			Help: "prefix removed, when present, from every annotated path (e.g. ./ or an absolute build dir)"},
		{Key: KeyCheckName, Default: "octocheck",
			Help: "check name shown in the GitHub UI"},
		{Key: KeyDetailsURL,
			Help: "URL with more details about this check, e.g. the CI build page"},
		{Key: KeyTitle, Default: "OctoCheck reporter",
			Help: "check title shown in the GitHub UI"},
		{Key: KeyAPIURL, Default: "https://api.github.com",
			Help: "GitHub API base URL (set for GitHub Enterprise)"},
	}
	for _, f := range formats {
		table = append(table, Option{
			Key:  f.Name,
			Kind: KindList,
			Help: fmt.Sprintf("glob pattern for %s input files (repeatable, ** matches directories)", f.Label),
		})
	}
	return table
}

// Bind registers one flag per option on cmd. Defaults are not attached to
// flags so resolution can tell an explicit value from an unset one.
func Bind(cmd *cobra.Command, table []Option) {
	flags := cmd.Flags()
	for _, o := range table {
		help := o.Help
		if o.Default != "" {
			help = fmt.Sprintf("%s (default %q)", help, o.Default)
		}
		help = fmt.Sprintf("%s [%s]", help, o.Env())
		switch o.Kind {
		case KindList:
			flags.StringArray(o.Flag(), nil, help)
		default:
			flags.String(o.Flag(), "", help)
		}
	}
}

// splitList splits an environment or file value on commas and whitespace.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
