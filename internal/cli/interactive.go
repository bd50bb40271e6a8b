package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
)

const interactiveHelp = `Commands:
  check PATH...     check nodes
  uncheck PATH...   uncheck nodes
  select VALUE...   check exactly the leaves with these values
  filter [QUERY]    hide nodes not matching QUERY; no query shows all
  collapse PATH     hide the children of a branch
  expand PATH       show the children of a branch
  collect           print the checked leaf values
  show              print the tree
  help              print this help
  quit              leave
Quote arguments that contain spaces.
`

var errQuit = errors.New("quit")

// Interactive reads commands from in until EOF or "quit". Command errors
// are printed and the session continues.
func (a *App) Interactive(in io.Reader) error {
	fmt.Fprintf(a.out, "%s: %d nodes. Type \"help\" for commands.\n", a.title, a.w.Len())
	if err := a.show(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(a.out)
			return sc.Err()
		}
		args, err := shellwords.Parse(sc.Text())
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		err = a.exec(args[0], args[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *App) exec(cmd string, args []string) error {
	cmd = strings.ToLower(cmd)
	switch cmd {
	case "check", "uncheck":
		if len(args) == 0 {
			return fmt.Errorf("%s needs at least one path", cmd)
		}
		for _, path := range args {
			if err := a.w.Toggle(path, cmd == "check"); err != nil {
				return err
			}
		}
		return a.show()
	case "select":
		n := a.w.Select(args)
		fmt.Fprintf(a.out, "%d of %d values matched\n", n, len(args))
		return a.show()
	case "filter":
		visible := a.w.Filter(strings.Join(args, " "))
		fmt.Fprintf(a.out, "%d of %d nodes visible\n", visible, a.w.Len())
		return a.show()
	case "collapse", "expand":
		if len(args) != 1 {
			return fmt.Errorf("%s needs exactly one path", cmd)
		}
		var err error
		if cmd == "collapse" {
			err = a.w.Collapse(args[0])
		} else {
			err = a.w.Expand(args[0])
		}
		if err != nil {
			return err
		}
		return a.show()
	case "collect":
		for _, v := range a.w.Collect() {
			fmt.Fprintln(a.out, v)
		}
		return nil
	case "show":
		return a.show()
	case "help", "?":
		fmt.Fprint(a.out, interactiveHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
