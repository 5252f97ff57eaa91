// Package compress provides the codecs used for compressed event archives.
//
// An archive on disk is either a raw event buffer (.bin) or one wrapped in a
// general-purpose compressor:
//
//	.bin      NoOpCompressor  format.CompressionNone
//	.bin.zst  ZstdCompressor  format.CompressionZstd  best ratio, for cold storage and transfer
//	.bin.s2   S2Compressor    format.CompressionS2    balanced
//	.bin.lz4  LZ4Compressor   format.CompressionLZ4   fastest decompression
//
// The time and user-id sections of a placement archive are highly repetitive
// (monotonic times, a long tail of repeat authors), so zstd typically shrinks
// an archive to a fraction of its raw size.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	raw, err := codec.Decompress(fileBytes)
//
// All codecs are stateless values and safe for concurrent use. The zstd codec
// pools its encoders and decoders internally.
//
// Building with the gozstd tag (and cgo enabled) swaps the pure-Go zstd
// implementation for the cgo binding to the reference C library.
package compress
