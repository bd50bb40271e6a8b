package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/checktree/internal/cli"
	"github.com/dgallion1/checktree/internal/config"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the program logic so it can be tested without exiting.
func run(in io.Reader, out, errW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	log := config.NewLogger(opts.LogLevel, "text", errW)
	return cli.Run(opts, in, out, log)
}
