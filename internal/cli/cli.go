package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line.
type Options struct {
	File            string
	UseLabelAsValue bool

	Check   []string // Paths to check, in order
	Uncheck []string // Paths to uncheck, after Check
	Select  []string // Leaf values to check, before Check
	Filter  string

	Collect     bool
	JSON        bool
	Paths       bool
	NoColor     bool
	Interactive bool

	LogLevel string
}

// listFlag collects repeated flag values.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Parse processes command-line arguments. It returns the options, whether
// the program should exit cleanly (help was requested), or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	fs := flag.NewFlagSet("checktree", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
checktree - tri-state checkbox trees from the command line.

Usage:
  checktree [options] FILE

Arguments:
  FILE
    A .json, .yaml, .toml, .md, .txt, .csv, .html, .docx or .pdf checklist.

Options:
`)
		fs.PrintDefaults()
	}

	opts := &Options{}
	var check, uncheck listFlag
	var selectValues string
	fs.BoolVar(&opts.UseLabelAsValue, "labels", false, "Use labels as leaf values.")
	fs.Var(&check, "check", "Check the node at `PATH` (repeatable).")
	fs.Var(&uncheck, "uncheck", "Uncheck the node at `PATH` (repeatable).")
	fs.StringVar(&selectValues, "select", "", "Check exactly the leaves with these comma-separated `VALUES`.")
	fs.StringVar(&opts.Filter, "filter", "", "Hide nodes not matching `QUERY`.")
	fs.BoolVar(&opts.Collect, "collect", false, "Print the checked leaf values instead of the tree.")
	fs.BoolVar(&opts.JSON, "json", false, "Print JSON.")
	fs.BoolVar(&opts.Paths, "paths", false, "Show node paths.")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable colors.")
	fs.BoolVar(&opts.Interactive, "i", false, "Start an interactive session.")
	fs.StringVar(&opts.LogLevel, "log-level", "warn", "Logging level: debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if fs.NArg() != 1 {
		fs.Usage()
		if fs.NArg() == 0 {
			return nil, false, &ExitError{Code: 2, Message: "missing FILE argument"}
		}
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one FILE argument"}
	}
	opts.File = fs.Arg(0)
	opts.Check = check
	opts.Uncheck = uncheck
	if selectValues != "" {
		for _, v := range strings.Split(selectValues, ",") {
			if v = strings.TrimSpace(v); v != "" {
				opts.Select = append(opts.Select, v)
			}
		}
	}

	opts.LogLevel = strings.ToLower(opts.LogLevel)
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if opts.Interactive && (opts.Collect || opts.JSON) {
		return nil, false, &ExitError{Code: 2, Message: "-i cannot be combined with -collect or -json"}
	}
	return opts, false, nil
}
