package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/checktree/internal/parser"
	"github.com/dgallion1/checktree/internal/render"
	"github.com/dgallion1/checktree/internal/widget"
	"github.com/muesli/termenv"
)

// App holds one loaded tree and where to print it.
type App struct {
	opts    *Options
	w       *widget.Widget
	title   string
	out     io.Writer
	profile termenv.Profile
	log     *slog.Logger
}

// Load reads opts.File into a new widget.
func Load(opts *Options, out io.Writer, log *slog.Logger) (*App, error) {
	f, err := os.Open(opts.File)
	if err != nil {
		return nil, &ExitError{Code: 1, Message: err.Error()}
	}
	defer f.Close()

	p, err := parser.ForFile(opts.File)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	doc, err := p.Parse(f, opts.File)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", opts.File, err)
	}

	wopts := widget.DefaultOptions()
	wopts.UseLabelAsValue = opts.UseLabelAsValue
	wopts.Filterable = true
	wopts.Collapse.Enabled = true
	wopts.OnChange = func(c widget.Change) {
		attrs := []any{"kind", c.Kind}
		if c.Node != nil {
			attrs = append(attrs, "path", c.Node.Path(), "checked", c.Node.Checked)
		}
		log.Debug("tree changed", attrs...)
	}

	a := &App{
		opts:    opts,
		w:       widget.New(wopts),
		title:   doc.Title,
		out:     out,
		profile: termenv.EnvColorProfile(),
		log:     log,
	}
	if opts.NoColor {
		a.profile = termenv.Ascii
	}
	if err := a.w.Load(doc.Items); err != nil {
		return nil, err
	}
	if len(doc.Checked) > 0 {
		a.w.Select(doc.Checked)
	}
	log.Debug("tree loaded", "file", opts.File, "title", doc.Title, "nodes", a.w.Len())
	return a, nil
}

// Widget returns the loaded widget.
func (a *App) Widget() *widget.Widget { return a.w }

// Apply runs the -select, -check, -uncheck and -filter options in that
// order.
func (a *App) Apply() error {
	if len(a.opts.Select) > 0 {
		n := a.w.Select(a.opts.Select)
		a.log.Debug("selected values", "requested", len(a.opts.Select), "matched", n)
	}
	for _, path := range a.opts.Check {
		if err := a.w.Toggle(path, true); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
	}
	for _, path := range a.opts.Uncheck {
		if err := a.w.Toggle(path, false); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
	}
	if a.opts.Filter != "" {
		a.w.Filter(a.opts.Filter)
	}
	return nil
}

// Print writes the result selected by the options.
func (a *App) Print() error {
	switch {
	case a.opts.Collect && a.opts.JSON:
		return a.writeJSON(a.w.Collect())
	case a.opts.Collect:
		for _, v := range a.w.Collect() {
			if _, err := fmt.Fprintln(a.out, v); err != nil {
				return err
			}
		}
		return nil
	case a.opts.JSON:
		return a.writeJSON(render.Views(a.w.Roots()))
	default:
		return a.show()
	}
}

func (a *App) show() error {
	return render.Text(a.out, a.w.Roots(), render.TextOptions{
		Profile:   a.profile,
		ShowPaths: a.opts.Paths,
	})
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Run loads the file, applies the options and prints the result, or
// starts an interactive session reading from in.
func Run(opts *Options, in io.Reader, out io.Writer, log *slog.Logger) error {
	a, err := Load(opts, out, log)
	if err != nil {
		return err
	}
	if err := a.Apply(); err != nil {
		return err
	}
	if opts.Interactive {
		return a.Interactive(in)
	}
	return a.Print()
}
