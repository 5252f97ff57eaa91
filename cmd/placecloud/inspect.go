package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/arloliu/placecloud"
	"github.com/arloliu/placecloud/attribute"
	"github.com/arloliu/placecloud/config"
	"github.com/arloliu/placecloud/dataset"
	"github.com/arloliu/placecloud/palette"
)

const topColors = 5

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	dataDir := fs.String("data", "", "dataset directory (overrides config)")
	chunks := fs.Int("chunks", 1, "chunk count (overrides config)")
	maxItems := fs.Int("max-chunk-items", 0, "max events per chunk, 0 disables (overrides config)")
	timeScale := fs.Float64("time-scale", 1, "time scale (overrides config)")
	logLevel := fs.String("log-level", "", "log level (overrides config)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	switch {
	case explicit["chunks"] && *chunks < 1:
		return usageErrorf("-chunks must be at least 1, got %d", *chunks)
	case explicit["max-chunk-items"] && *maxItems < 0:
		return usageErrorf("-max-chunk-items must not be negative, got %d", *maxItems)
	case explicit["time-scale"] && attribute.ValidateTimeScale(*timeScale) != nil:
		return usageErrorf("-time-scale must be a finite positive number, got %v", *timeScale)
	}

	cfg, err := inspectConfig(*configPath)
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if explicit["chunks"] {
		cfg.ChunkCount = *chunks
	}
	if explicit["max-chunk-items"] {
		cfg.MaxChunkItems = *maxItems
	}
	if explicit["time-scale"] {
		cfg.TimeScale = *timeScale
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := setupLogger(stderr, cfg.LogLevel); err != nil {
		return err
	}

	loader := dataset.NewDirLoader(cfg.DataDir)
	names := fs.Args()
	if len(names) == 0 {
		names = cfg.Datasets
	}
	if len(names) == 0 {
		if names, err = loader.Names(); err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no datasets in %s", cfg.DataDir)
	}

	p, err := placecloud.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	sets, err := p.Load(context.Background(), loader, names...)
	if err != nil {
		return err
	}

	for _, ds := range sets {
		printDataset(stdout, ds)
	}

	return nil
}

// inspectConfig reads the config file without validating it, or starts from
// the defaults when no path is given. Flag overrides are applied afterwards.
func inspectConfig(path string) (config.Config, error) {
	if path == "" {
		cfg := config.Default()
		cfg.TimeScale = 1

		return cfg, nil
	}

	return config.Read(path)
}

func printDataset(w io.Writer, ds placecloud.Dataset) {
	lo, hi := ds.Buffers.TimeRange()

	fmt.Fprintf(w, "dataset %s\n", ds.Name)
	fmt.Fprintf(w, "  file         %s (%s, %d bytes)\n", ds.Path, ds.Compression, ds.StoredSize)
	fmt.Fprintf(w, "  raw bytes    %d\n", len(ds.Raw))
	fmt.Fprintf(w, "  fingerprint  %016x\n", ds.Fingerprint)
	fmt.Fprintf(w, "  events       %d\n", ds.Len())
	fmt.Fprintf(w, "  time range   %d .. %d\n", lo, hi)
	fmt.Fprintf(w, "  chunks       %d\n", len(ds.Chunks))
	for _, c := range ds.Chunks {
		fmt.Fprintf(w, "    #%-3d [%d, %d) %d events\n", c.Index, c.Start, c.End, c.Len())
	}

	fmt.Fprintf(w, "  top colors\n")
	for _, cc := range colorHistogram(ds.Buffers.Color)[:topColorCount(ds.Buffers.Color)] {
		hex, _ := palette.Hex(cc.index)
		fmt.Fprintf(w, "    %2d %s %d\n", cc.index, hex, cc.count)
	}
}

type colorCount struct {
	index int
	count int
}

// colorHistogram counts events per palette entry, most used first.
func colorHistogram(colors []uint8) []colorCount {
	counts := make([]colorCount, palette.Size)
	for i := range counts {
		counts[i].index = i
	}
	for _, c := range colors {
		if int(c) < palette.Size {
			counts[c].count++
		}
	}

	slices.SortStableFunc(counts, func(a, b colorCount) int {
		return cmp.Compare(b.count, a.count)
	})

	return counts
}

func topColorCount(colors []uint8) int {
	used := map[uint8]struct{}{}
	for _, c := range colors {
		used[c] = struct{}{}
	}

	return min(topColors, len(used))
}
