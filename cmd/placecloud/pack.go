package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/placecloud/dataset"
	"github.com/arloliu/placecloud/event"
	"github.com/arloliu/placecloud/format"
)

func runPack(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	codec := fs.String("codec", "zstd", "compression: zstd, s2, lz4")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ct, ok := format.ParseCompression(*codec)
	if !ok || ct == format.CompressionNone {
		return fmt.Errorf("unknown codec %q", *codec)
	}
	if fs.NArg() == 0 {
		return errors.New("no input files")
	}

	for _, in := range fs.Args() {
		if err := packFile(stdout, in, ct); err != nil {
			return err
		}
	}

	return nil
}

// packFile validates a raw archive and writes its compressed sibling.
func packFile(stdout io.Writer, in string, ct format.CompressionType) error {
	base := filepath.Base(in)
	name, ok := strings.CutSuffix(base, format.ArchiveExt)
	if !ok || name == "" {
		return fmt.Errorf("%s: not a %s archive", in, format.ArchiveExt)
	}

	raw, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if _, err := event.Split(raw); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	path, stats, err := dataset.Write(filepath.Dir(in), name, raw, ct)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s -> %s: %d -> %d bytes (%.1f%% saved)\n",
		in, path, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings())

	return nil
}
