// octocheck reports linter, compiler and test results as a GitHub check run.
//
// Usage:
//
//	octocheck --app-id 1234 --priv-key-file app.pem \
//	    --gh-owner acme --gh-repo widgets \
//	    --pep8 'build/flake8.txt' --xunit 'reports/**/*.xml'
//	octocheck preview --pep8 'build/flake8.txt'
//	octocheck preview target/cargo.json junit.xml
//
// Every option can also come from OC_* environment variables, a .env file,
// or .octocheck.yaml. Input formats:
//   - cargo  (cargo build --message-format=json)
//   - pep8   (flake8 / pycodestyle path:line:col: message)
//   - xunit  (JUnit-style XML reports)
//   - sarif  (SARIF 2.1.0 logs from golangci-lint, semgrep and friends)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dkoosis/octocheck/internal/config"
	"github.com/dkoosis/octocheck/internal/version"
	"github.com/dkoosis/octocheck/pkg/parser"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitError carries a process exit code and the message reported on stderr.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: 2, err: err} }

func failure(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

// silentExit sets an exit code without printing anything.
type silentExit int

func (s silentExit) Error() string { return fmt.Sprintf("exit status %d", int(s)) }

// app holds the state shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger

	verbose bool
	quiet   bool

	// resolver is swapped in tests.
	resolver config.Resolver
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, log: newLogger(stderr)}
	root := a.rootCommand()
	root.SetArgs(args)
	return a.execute(ctx, root)
}

func (a *app) execute(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var silent silentExit
	if errors.As(err, &silent) {
		return int(silent)
	}
	var ee *exitError
	if errors.As(err, &ee) {
		fmt.Fprintln(a.stderr, ee.err)
		return ee.code
	}
	// Anything else comes from cobra itself: bad flags or unknown commands.
	fmt.Fprintf(a.stderr, "octocheck: %v\n", err)
	fmt.Fprintf(a.stderr, "Run 'octocheck --help' for usage.\n")
	return 2
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

func (a *app) rootCommand() *cobra.Command {
	table := config.Options(parser.Formats())

	root := &cobra.Command{
		Use:   "octocheck [flags]",
		Short: "Report linter, compiler and test results as a GitHub check run",
		Long: "octocheck parses cargo JSON, pep8-style, xUnit XML and SARIF reports and\n" +
			"submits the findings to GitHub as a check run with line annotations.",
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			switch {
			case a.verbose:
				a.log.SetLevel(logrus.DebugLevel)
			case a.quiet:
				a.log.SetLevel(logrus.WarnLevel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.submit(cmd, table)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate(version.String() + "\n")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug detail to stderr")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log warnings and errors")
	config.Bind(root, table)

	root.AddCommand(
		a.previewCommand(),
		a.formatsCommand(),
		a.configCommand(table),
		a.versionCommand(),
	)
	return root
}

func (a *app) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, f := range parser.Formats() {
				fmt.Fprintf(a.stdout, "%-6s  %s\n", f.Name, f.Label)
			}
		},
	}
}

func (a *app) configCommand(table []config.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show resolved settings and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.resolver.Resolve(cmd, table)
			var missing *config.MissingError
			if err != nil && !errors.As(err, &missing) {
				return usageErr(err)
			}
			if res.File != "" {
				fmt.Fprintf(a.stdout, "# config file: %s\n", res.File)
			}
			for _, line := range res.Describe() {
				fmt.Fprintln(a.stdout, line)
			}
			if missing != nil {
				return usageErr(missing)
			}
			return nil
		},
	}
	config.Bind(cmd, table)
	return cmd
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.stdout, version.String())
		},
	}
}
