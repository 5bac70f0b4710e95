// Package config resolves octocheck's settings from a declarative option
// table.
//
// # Precedence
//
// Each option is resolved independently, highest priority first:
//
//  1. CLI flags (--app-id, --gh-owner, --pep8, ...)
//  2. Environment variables (OC_APP_ID, OC_GH_OWNER, OC_PEP8, ...)
//  3. A .env file in the working directory
//  4. YAML config file (.octocheck.yaml in the working directory, or
//     octocheck/config.yaml under the user config directory)
//  5. Defaults, including the HEAD commit of the enclosing git repository
//
// The winning source is recorded for every value so `octocheck config` can
// show where each setting came from.
//
// # Lists
//
// Pattern options take one glob per flag occurrence. In the environment,
// .env and YAML string form they are split on commas and whitespace; YAML may
// also use a sequence.
package config
