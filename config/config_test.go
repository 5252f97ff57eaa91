package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/placecloud/errs"
)

func TestParse(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		cfg, err := Parse([]byte(`
time_scale: 1000000
chunk_count: 8
max_chunk_items: 250000
data_dir: /srv/place-data
datasets: ["2017", "2022"]
log_level: debug
`))
		require.NoError(t, err)
		require.Equal(t, Config{
			TimeScale:     1e6,
			ChunkCount:    8,
			MaxChunkItems: 250000,
			DataDir:       "/srv/place-data",
			Datasets:      []string{"2017", "2022"},
			LogLevel:      "debug",
		}, cfg)
		require.Equal(t, slog.LevelDebug, cfg.Level())
	})

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("time_scale: 3600\n"))
		require.NoError(t, err)
		require.Equal(t, 3600.0, cfg.TimeScale)
		require.Equal(t, DefaultChunkCount, cfg.ChunkCount)
		require.Equal(t, DefaultDataDir, cfg.DataDir)
		require.Equal(t, slog.LevelInfo, cfg.Level())
	})

	t.Run("Invalid", func(t *testing.T) {
		tests := map[string]string{
			"Empty":            "",
			"MissingTimeScale": "chunk_count: 2\n",
			"ZeroTimeScale":    "time_scale: 0\n",
			"NegativeScale":    "time_scale: -5\n",
			"ZeroChunks":       "time_scale: 1\nchunk_count: 0\n",
			"NegativeMaxItems": "time_scale: 1\nmax_chunk_items: -1\n",
			"BadLevel":         "time_scale: 1\nlog_level: loud\n",
			"UnknownKey":       "time_scale: 1\ntimescale: 2\n",
			"BadYAML":          "time_scale: [1\n",
		}

		for name, doc := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := Parse([]byte(doc))
				require.ErrorIs(t, err, errs.ErrInvalidConfig)
			})
		}
	})

	t.Run("TimeScaleErrorChain", func(t *testing.T) {
		_, err := Parse([]byte("time_scale: 0\n"))
		require.ErrorIs(t, err, errs.ErrInvalidTimeScale)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "placecloud.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_scale: 60\nchunk_count: 3\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 60.0, cfg.TimeScale)
	require.Equal(t, 3, cfg.ChunkCount)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	partial := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(partial, []byte("chunk_count: 5\n"), 0o600))

	_, err = Load(partial)
	require.ErrorIs(t, err, errs.ErrInvalidTimeScale)

	cfg, err = Read(partial)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.ChunkCount)
	require.Zero(t, cfg.TimeScale)

	cfg.TimeScale = 2
	require.NoError(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
