// Package mapfile stores an alphabet map as a standalone, checksummed
// container file with optional payload compression.
//
// Layout (all integers little-endian):
//
//	magic       uint32  0x414C504D ("ALPM")
//	version     uint32  currently 1
//	compression uint8 + 3 reserved bytes
//	checksum    uint32  CRC-32 (IEEE) of the stored payload
//	payload_len uint32
//	payload     the alphabet block, optionally compressed
//
// The payload is the alphamap binary block, so a container round trip
// preserves the range order bit-exactly.
package mapfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/triekit/alphamap"
)

const (
	// Magic identifies a mapfile container ("ALPM").
	Magic uint32 = 0x414C504D
	// Version is the current container version.
	Version uint32 = 1

	headerSize = 20
)

var (
	// ErrInvalidMagic is returned when the container magic does not match.
	ErrInvalidMagic = errors.New("mapfile: invalid magic")
	// ErrUnsupportedVersion is returned for container versions this
	// build cannot decode.
	ErrUnsupportedVersion = errors.New("mapfile: unsupported version")
	// ErrChecksum is returned when the payload fails CRC validation.
	ErrChecksum = errors.New("mapfile: checksum mismatch")
	// ErrUnknownCompression is returned for an unrecognized payload codec.
	ErrUnknownCompression = errors.New("mapfile: unknown compression")
	// ErrMissingBlock is returned when a valid container payload does
	// not begin with the alphabet block signature.
	ErrMissingBlock = errors.New("mapfile: alphabet block missing from payload")
)

type options struct {
	compression Compression
}

// Option configures container encoding.
type Option func(*options)

// WithCompression selects the payload codec. The encoder falls back to
// CompressionNone when compression does not shrink the payload; the
// header always names the codec actually used.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{compression: CompressionNone}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Write encodes m as a container.
func Write(w io.Writer, m *alphamap.Map, optFns ...Option) error {
	o := applyOptions(optFns)

	var raw bytes.Buffer
	raw.Grow(int(m.BinarySize()))
	if err := m.WriteBinary(&raw); err != nil {
		return fmt.Errorf("mapfile: encode alphabet block: %w", err)
	}

	stored, comp, err := compressPayload(raw.Bytes(), o.compression)
	if err != nil {
		return err
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Magic)
	binary.LittleEndian.PutUint32(hdr[4:8], Version)
	hdr[8] = byte(comp) // hdr[9:12] reserved
	binary.LittleEndian.PutUint32(hdr[12:16], crc32.ChecksumIEEE(stored))
	binary.LittleEndian.PutUint32(hdr[16:20], uint32(len(stored)))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("mapfile: write header: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("mapfile: write payload: %w", err)
	}
	return nil
}

// Read decodes a container. The payload checksum is verified before
// any decoding happens.
func Read(r io.Reader) (*alphamap.Map, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("mapfile: read header: %w", err)
	}

	if magic := binary.LittleEndian.Uint32(hdr[0:4]); magic != Magic {
		return nil, fmt.Errorf("%w: %#08x", ErrInvalidMagic, magic)
	}
	if version := binary.LittleEndian.Uint32(hdr[4:8]); version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	comp := Compression(hdr[8])
	checksum := binary.LittleEndian.Uint32(hdr[12:16])
	payloadLen := binary.LittleEndian.Uint32(hdr[16:20])

	stored := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("mapfile: read payload: %w", err)
	}
	if crc32.ChecksumIEEE(stored) != checksum {
		return nil, ErrChecksum
	}

	block, err := decompressPayload(stored, comp)
	if err != nil {
		return nil, err
	}

	m, ok, err := alphamap.ReadBinary(bytes.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("mapfile: decode alphabet block: %w", err)
	}
	if !ok {
		return nil, ErrMissingBlock
	}
	return m, nil
}

// Save writes the container to path atomically: data lands in a temp
// file that is fsynced and renamed over the target, so a crashed save
// never leaves a torn container behind.
func Save(path string, m *alphamap.Map, optFns ...Option) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0o644)

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err := Write(bw, m, optFns...); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// Load reads a container from path.
func Load(path string) (*alphamap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReaderSize(f, 64*1024))
}

// Sniff reports whether data begins with the container magic. It never
// consumes input; callers use it to route between container and text
// decoding.
func Sniff(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == Magic
}
