package mapfile

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload codec.
type Compression uint8

const (
	// CompressionNone stores the alphabet block as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 favors decode speed.
	CompressionLZ4 Compression = 1
	// CompressionZSTD favors compression ratio.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Compressed payloads carry the uncompressed size so the decoder can
// allocate the exact result buffer.
const sizePrefixLen = 4

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compressPayload encodes the raw block for storage and returns the
// codec actually used: when compression does not shrink the payload,
// it falls back to CompressionNone.
func compressPayload(raw []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("mapfile: lz4 compress: %w", err)
		}
		if n == 0 || n+sizePrefixLen >= len(raw) {
			return raw, CompressionNone, nil
		}
		return prefixed(raw, dst[:n]), CompressionLZ4, nil

	case CompressionZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)

		dst := enc.EncodeAll(raw, nil)
		if len(dst)+sizePrefixLen >= len(raw) {
			return raw, CompressionNone, nil
		}
		return prefixed(raw, dst), CompressionZSTD, nil

	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}

func prefixed(raw, compressed []byte) []byte {
	out := make([]byte, sizePrefixLen+len(compressed))
	binary.LittleEndian.PutUint32(out[:sizePrefixLen], uint32(len(raw)))
	copy(out[sizePrefixLen:], compressed)
	return out
}

// decompressPayload reverses compressPayload. The payload has already
// passed the container checksum, so size mismatches here mean a buggy
// encoder rather than bit rot.
func decompressPayload(stored []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return stored, nil

	case CompressionLZ4, CompressionZSTD:
		if len(stored) < sizePrefixLen {
			return nil, fmt.Errorf("mapfile: payload too small for size prefix")
		}
		rawLen := binary.LittleEndian.Uint32(stored[:sizePrefixLen])
		data := stored[sizePrefixLen:]

		if c == CompressionLZ4 {
			out := make([]byte, rawLen)
			n, err := lz4.UncompressBlock(data, out)
			if err != nil {
				return nil, fmt.Errorf("mapfile: lz4 decompress: %w", err)
			}
			if uint32(n) != rawLen {
				return nil, fmt.Errorf("mapfile: decompressed size mismatch: got %d want %d", n, rawLen)
			}
			return out, nil
		}

		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(data, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("mapfile: zstd decompress: %w", err)
		}
		if uint32(len(out)) != rawLen {
			return nil, fmt.Errorf("mapfile: decompressed size mismatch: got %d want %d", len(out), rawLen)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}
