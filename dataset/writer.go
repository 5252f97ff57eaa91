package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/placecloud/compress"
	"github.com/arloliu/placecloud/format"
)

// Write stores raw as dataset name in dir using compression ct.
// It returns the written path and the compression stats.
func Write(dir, name string, raw []byte, ct format.CompressionType) (string, compress.Stats, error) {
	if _, ok := datasetName(name + ct.Ext()); !ok {
		return "", compress.Stats{}, fmt.Errorf("invalid dataset name %q", name)
	}

	stored, stats, err := compress.CompressWithStats(ct, raw)
	if err != nil {
		return "", compress.Stats{}, err
	}

	path := filepath.Join(dir, name+ct.Ext())
	if err := os.WriteFile(path, stored, 0o644); err != nil {
		return "", compress.Stats{}, fmt.Errorf("write dataset %q: %w", path, err)
	}

	return path, stats, nil
}
