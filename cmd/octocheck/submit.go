package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/octocheck/internal/config"
	"github.com/dkoosis/octocheck/internal/github"
	"github.com/dkoosis/octocheck/internal/version"
	"github.com/dkoosis/octocheck/pkg/check"
	"github.com/dkoosis/octocheck/pkg/parser"
)

// inputs pairs each registered format with its resolved patterns, in
// registry order.
func inputs(res *config.Resolved) []check.Input {
	var in []check.Input
	for _, f := range parser.Formats() {
		if patterns := res.List(f.Name); len(patterns) > 0 {
			in = append(in, check.Input{Format: f, Patterns: patterns})
		}
	}
	return in
}

// submit authenticates as the app installation, parses every configured
// report and publishes the result as one check run.
func (a *app) submit(cmd *cobra.Command, table []config.Option) error {
	ctx := cmd.Context()

	res, err := a.resolver.Resolve(cmd, table)
	if err != nil {
		return usageErr(err)
	}
	owner, repo := res.String(config.KeyOwner), res.String(config.KeyRepo)

	opts := []github.Option{
		github.WithBaseURL(res.String(config.KeyAPIURL)),
		github.WithUserAgent("octocheck/" + version.Version),
	}

	key, err := github.ReadPrivateKey(res.String(config.KeyPrivKeyFile))
	if err != nil {
		a.log.WithError(err).Debug("loading app key")
		return failure("Couldn't authenticate as a GitHub app: %v", err)
	}
	gh := github.NewApp(res.String(config.KeyAppID), key, opts...)

	inst, err := gh.InstallationForRepo(ctx, owner, repo)
	if err != nil {
		a.log.WithError(err).Debug("looking up installation")
		if isAuthError(err) {
			return failure("Couldn't authenticate as a GitHub app: %v", err)
		}
		return failure("Couldn't find an installation of this GitHub app on that repository: %v", err)
	}

	client, err := gh.InstallationClient(ctx, inst.ID)
	if err != nil {
		a.log.WithError(err).Debug("creating installation token")
		return failure("Couldn't authenticate as app installation: %v", err)
	}

	if _, err := client.Repository(ctx, owner, repo); err != nil {
		a.log.WithError(err).Debug("fetching repository")
		return failure("Couldn't find repository: %v", err)
	}

	result, err := check.NewAggregator(a.log).Run(inputs(res))
	if err != nil {
		return failure("%v", err)
	}

	req := check.Request{
		Name:       res.String(config.KeyCheckName),
		HeadSHA:    res.String(config.KeyCommit),
		DetailsURL: res.String(config.KeyDetailsURL),
		Title:      res.String(config.KeyTitle),
		Rewrite: check.PathRewrite{
			Strip: res.String(config.KeyDelPrefix),
			Add:   res.String(config.KeyAddPrefix),
		},
	}
	run, err := check.Submit(ctx, client.Repo(owner, repo), req, result, a.log)
	if err != nil {
		return failure("Couldn't submit check run: %v", err)
	}

	a.log.WithField("check_run", run.ID).Infof("submitted %s check run (%s)", result.Status.Conclusion(), run.HTMLURL)
	fmt.Fprintln(a.stdout, result.Output(req.Title).Summary)
	return nil
}

// isAuthError reports whether GitHub rejected the app JWT itself.
func isAuthError(err error) bool {
	var apiErr *github.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
