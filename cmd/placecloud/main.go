// Command placecloud inspects, generates and packs placement event archives.
//
// Usage:
//
//	placecloud inspect [flags] [name...]
//	placecloud legend
//	placecloud gen [flags]
//	placecloud pack [flags] file.bin...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/placecloud"
	"github.com/arloliu/placecloud/config"
)

const usage = `usage: placecloud <command> [flags] [args]

commands:
  inspect   decode datasets and print event, chunk and color statistics
  legend    print the color palette
  gen       write a synthetic dataset archive
  pack      compress .bin archives
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "inspect":
		err = runInspect(args[1:], stdout, stderr)
	case "legend":
		err = runLegend(stdout)
	case "gen":
		err = runGen(args[1:], stdout, stderr)
	case "pack":
		err = runPack(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "placecloud %s: %v\n", args[0], err)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "placecloud %s: %v\n", args[0], err)
		return 1
	}

	return 0
}

// usageError marks a bad flag or argument; run exits with status 2 for it.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// parseFlags parses args into fs. Parse failures other than -h are usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}

	return &usageError{err: err}
}

// setupLogger installs a text logger on stderr at the named level.
func setupLogger(stderr io.Writer, level string) error {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return err
	}

	placecloud.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})))

	return nil
}
