package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/arloliu/placecloud/dataset"
	"github.com/arloliu/placecloud/event"
	"github.com/arloliu/placecloud/format"
	"github.com/arloliu/placecloud/palette"
)

// canvasSize is the edge length of the synthetic canvas; it is centered on
// the origin by the coordinate offset.
const canvasSize = 2 * format.CoordOffset

func runGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", ".", "output directory")
	name := fs.String("name", "synthetic", "dataset name")
	count := fs.Int("n", 100_000, "number of events")
	users := fs.Int("users", 5_000, "number of distinct users")
	seed := fs.Uint64("seed", 1, "random seed")
	codec := fs.String("codec", "none", "compression: none, zstd, s2, lz4")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ct, ok := format.ParseCompression(*codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", *codec)
	}
	if *count < 1 || *users < 1 {
		return errors.New("-n and -users must be positive")
	}

	raw, err := synthesize(*count, *users, *seed)
	if err != nil {
		return err
	}

	path, stats, err := dataset.Write(*dir, *name, raw, ct)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s: %d events, %d bytes (%.1f%% of raw)\n",
		path, *count, stats.CompressedSize, stats.Ratio()*100)

	return nil
}

// synthesize builds an event buffer with monotonically increasing times,
// users drawn from a fixed pool, and uniformly spread positions and colors.
func synthesize(count, users int, seed uint64) ([]byte, error) {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	enc, err := event.NewEncoder(event.WithCapacity(count))
	if err != nil {
		return nil, err
	}

	var t uint32
	for range count {
		t += uint32(rng.IntN(1000))
		rec := event.Record{
			Time:   t,
			UserID: uint32(rng.IntN(users)),
			X:      uint16(rng.IntN(canvasSize)),
			Y:      uint16(rng.IntN(canvasSize)),
			Color:  uint8(rng.IntN(palette.Size)),
		}
		if err := enc.Add(rec); err != nil {
			return nil, err
		}
	}

	return enc.Finish()
}
