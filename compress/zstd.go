package compress

// ZstdCompressor is the Zstandard codec for .bin.zst archives.
//
// The implementation is chosen at build time: pure Go (klauspost/compress)
// by default, or the cgo gozstd binding with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
