package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/octocheck/internal/config"
	"github.com/dkoosis/octocheck/internal/detect"
	"github.com/dkoosis/octocheck/internal/pager"
	"github.com/dkoosis/octocheck/pkg/annotation"
	"github.com/dkoosis/octocheck/pkg/check"
	"github.com/dkoosis/octocheck/pkg/mapper"
	"github.com/dkoosis/octocheck/pkg/parser"
	"github.com/dkoosis/octocheck/pkg/render"
)

type previewFlags struct {
	format string
	output string
	theme  string
	pager  bool
}

func (a *app) previewCommand() *cobra.Command {
	var flags previewFlags
	var table []config.Option
	for _, o := range config.Options(parser.Formats()) {
		if o.Kind == config.KindList {
			table = append(table, o)
		}
	}

	cmd := &cobra.Command{
		Use:   "preview [FILES...]",
		Short: "Parse reports and show the annotations locally without submitting",
		Long: "preview parses the configured report patterns, or the files given as\n" +
			"arguments, and renders the annotations octocheck would submit.\n" +
			"It exits 1 when the overall status is FAILURE.",
		RunE: func(cmd *cobra.Command, files []string) error {
			return a.preview(cmd, flags, table, files)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "", "parser for FILES (default: detect per file)")
	f.StringVar(&flags.output, "output", "auto", "output mode: auto, terminal, llm, json")
	f.StringVar(&flags.theme, "theme", "default", "terminal theme: default, orca, mono")
	f.BoolVar(&flags.pager, "pager", false, "page terminal output")
	config.Bind(cmd, table)
	return cmd
}

func (a *app) preview(cmd *cobra.Command, flags previewFlags, table []config.Option, files []string) error {
	mode, err := resolveMode(flags.output, a.stdout)
	if err != nil {
		return usageErr(err)
	}

	var agg *check.Aggregator
	var in []check.Input
	if len(files) > 0 {
		in, err = a.explicitInputs(flags.format, files)
		if err != nil {
			return usageErr(err)
		}
		// Explicit files are taken literally, not as globs.
		agg = &check.Aggregator{Expand: func(p string) ([]string, error) { return []string{p}, nil }, Log: a.log}
	} else {
		if flags.format != "" {
			return usageErr(fmt.Errorf("--format only applies to FILES arguments"))
		}
		res, err := a.resolver.Resolve(cmd, table)
		if err != nil {
			return usageErr(err)
		}
		in = inputs(res)
		if len(in) == 0 {
			return usageErr(fmt.Errorf("nothing to preview: pass FILES or set --cargo, --pep8, --xunit or --sarif"))
		}
		agg = check.NewAggregator(a.log)
	}

	result, err := agg.Run(in)
	if err != nil {
		return failure("%v", err)
	}

	width, height := termSize(a.stdout)
	theme := render.ThemeByName(flags.theme)
	if os.Getenv("NO_COLOR") != "" {
		theme = render.MonoTheme()
	}
	out := render.New(mode, theme, width).Render(mapper.FromCheck(result))

	if flags.pager && mode == render.ModeTerminal && isTTYWriter(a.stdout) && lineCount(out) > height {
		if err := pager.Run(cmd.Context(), "octocheck preview", out, nil, nil); err != nil {
			return failure("%v", err)
		}
	} else {
		fmt.Fprint(a.stdout, out)
	}

	if result.Status == annotation.StatusFailure {
		return silentExit(1)
	}
	return nil
}

// explicitInputs groups files by parser, in registry order. Without a forced
// format each file is sniffed; unrecognized files are skipped with a warning.
func (a *app) explicitInputs(format string, files []string) ([]check.Input, error) {
	if format != "" {
		f, ok := parser.Lookup(format)
		if !ok {
			return nil, fmt.Errorf("unknown format %q (see 'octocheck formats')", format)
		}
		return []check.Input{{Format: f, Patterns: files}}, nil
	}

	byName := map[string][]string{}
	for _, path := range files {
		kind, err := detect.SniffFile(path)
		if err != nil {
			a.log.WithField("file", path).WithError(err).Warn("cannot read file")
			continue
		}
		if kind == detect.Unknown {
			a.log.WithField("file", path).Warn("unrecognized format, use --format")
			continue
		}
		byName[kind.Name()] = append(byName[kind.Name()], path)
	}

	var in []check.Input
	for _, f := range parser.Formats() {
		if paths := byName[f.Name]; len(paths) > 0 {
			in = append(in, check.Input{Format: f, Patterns: paths})
		}
	}
	return in, nil
}

// resolveMode maps "auto" to terminal on a TTY and llm when piped.
func resolveMode(output string, w io.Writer) (render.Mode, error) {
	if output == "auto" {
		if isTTYWriter(w) {
			return render.ModeTerminal, nil
		}
		return render.ModeLLM, nil
	}
	return render.ParseMode(output)
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

func lineCount(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
