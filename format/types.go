package format

// CompressionType identifies how an archive file wraps the raw event buffer.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a raw .bin archive.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a .bin.zst archive.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents a .bin.s2 archive.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents a .bin.lz4 archive.
)

// ArchiveExt is the file extension of an uncompressed archive.
const ArchiveExt = ".bin"

// Compressions lists the archive compressions in dataset lookup order.
var Compressions = []CompressionType{
	CompressionNone,
	CompressionZstd,
	CompressionS2,
	CompressionLZ4,
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the archive file suffix for the compression, e.g. ".bin.zst".
// It returns "" for an unknown compression.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionNone:
		return ArchiveExt
	case CompressionZstd:
		return ArchiveExt + ".zst"
	case CompressionS2:
		return ArchiveExt + ".s2"
	case CompressionLZ4:
		return ArchiveExt + ".lz4"
	default:
		return ""
	}
}

// ParseCompression maps a codec name as used on the command line
// ("none", "zstd", "s2", "lz4") to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "raw":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
