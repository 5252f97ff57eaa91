// Package dataset loads named placement archives from a directory.
//
// A dataset named "2022" is stored as one of
//
//	2022.bin  2022.bin.zst  2022.bin.s2  2022.bin.lz4
//
// and the first of those found (in that order) is used. The loader returns
// the raw, decompressed event buffer; decoding is left to package event.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/placecloud/compress"
	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/format"
	"github.com/arloliu/placecloud/internal/hash"
	"github.com/arloliu/placecloud/internal/logger"
)

// DefaultConcurrency is the number of archives LoadAll reads at once.
const DefaultConcurrency = 4

// Archive is a loaded dataset.
type Archive struct {
	Name        string
	Path        string                 // file the archive was read from, relative to the loader root
	Compression format.CompressionType // how the file was stored
	StoredSize  int                    // file size in bytes
	Raw         []byte                 // decompressed event buffer
	Fingerprint uint64                 // xxHash64 of Raw
}

// Loader reads archives from a file system.
//
// A Loader is safe for concurrent use if its fs.FS is.
type Loader struct {
	fsys        fs.FS
	concurrency int
}

// NewLoader creates a Loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, concurrency: DefaultConcurrency}
}

// NewDirLoader creates a Loader over a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// SetConcurrency sets how many archives LoadAll reads at once. Values below 1 mean 1.
func (l *Loader) SetConcurrency(n int) {
	l.concurrency = max(n, 1)
}

// Load reads and decompresses the archive for name.
//
// Returns errs.ErrDatasetNotFound when no archive file exists for name.
func (l *Loader) Load(ctx context.Context, name string) (Archive, error) {
	if err := ctx.Err(); err != nil {
		return Archive{}, err
	}
	if !fs.ValidPath(name) || name == "." || strings.ContainsRune(name, '/') {
		return Archive{}, fmt.Errorf("%w: invalid dataset name %q", errs.ErrDatasetNotFound, name)
	}

	for _, ct := range format.Compressions {
		path := name + ct.Ext()
		stored, err := fs.ReadFile(l.fsys, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Archive{}, fmt.Errorf("read dataset %q: %w", path, err)
		}

		return l.open(ctx, name, path, ct, stored)
	}

	return Archive{}, fmt.Errorf("%w: %q", errs.ErrDatasetNotFound, name)
}

func (l *Loader) open(ctx context.Context, name, path string, ct format.CompressionType, stored []byte) (Archive, error) {
	if err := ctx.Err(); err != nil {
		return Archive{}, err
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return Archive{}, err
	}

	raw, err := codec.Decompress(stored)
	if err != nil {
		return Archive{}, fmt.Errorf("decompress dataset %q: %w", path, err)
	}

	a := Archive{
		Name:        name,
		Path:        path,
		Compression: ct,
		StoredSize:  len(stored),
		Raw:         raw,
		Fingerprint: Fingerprint(raw),
	}

	logger.Get().Debug("loaded dataset",
		"name", name,
		"path", path,
		"compression", ct.String(),
		"stored_bytes", a.StoredSize,
		"raw_bytes", len(raw),
	)

	return a, nil
}

// LoadAll loads several datasets concurrently. Results are in names order.
// The first failure cancels the remaining loads and is returned.
func (l *Loader) LoadAll(ctx context.Context, names []string) ([]Archive, error) {
	archives := make([]Archive, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.concurrency, 1))
	for i, name := range names {
		g.Go(func() error {
			a, err := l.Load(gctx, name)
			if err != nil {
				return err
			}
			archives[i] = a

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return archives, nil
}

// Names lists the datasets present at the loader root, sorted.
func (l *Loader) Names() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := datasetName(e.Name()); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return slices.Compact(names), nil
}

func datasetName(file string) (string, bool) {
	for _, ct := range format.Compressions {
		if name, ok := strings.CutSuffix(file, ct.Ext()); ok && name != "" {
			return name, true
		}
	}

	return "", false
}

// Fingerprint returns the xxHash64 of a raw event buffer. Two archives with the
// same fingerprint hold the same events regardless of how they are compressed.
func Fingerprint(raw []byte) uint64 {
	return hash.Sum(raw)
}
