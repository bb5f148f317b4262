package alphamap

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Signature identifies a serialized alphabet block. The binary layout is
// bit-exact: signature, range count, then (begin, end) pairs in append
// order, all uint32 little-endian.
const Signature uint32 = 0xD9FCD9FC

const (
	signatureSize = 4
	countSize     = 4
	rangeSize     = 8
)

// BinarySize returns the exact encoded size of the binary alphabet
// block, for container offset computation.
func (m *Map) BinarySize() int64 {
	return int64(signatureSize + countSize + len(m.ranges)*rangeSize)
}

// WriteBinary encodes the map as a binary alphabet block. The first
// write failure aborts the encode; the output must then be treated as
// corrupt from that point, there are no partial-write semantics.
func (m *Map) WriteBinary(w io.Writer) error {
	var hdr [signatureSize + countSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Signature)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(m.ranges)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("failed to write alphabet header: %w", err)
	}

	var pair [rangeSize]byte
	for _, r := range m.ranges {
		binary.LittleEndian.PutUint32(pair[0:4], uint32(r.Begin))
		binary.LittleEndian.PutUint32(pair[4:8], uint32(r.End))
		if _, err := w.Write(pair[:]); err != nil {
			return fmt.Errorf("failed to write range: %w", err)
		}
	}
	return nil
}

// ReadBinary probes r for a binary alphabet block at the current
// position. If the signature does not match (including streams too
// short to hold one), the stream position is restored and ReadBinary
// reports (nil, false, nil) rather than an error, so callers can probe
// for the block inside a larger container and hand the untouched stream
// to another decoder. After a matched signature, truncated or unreadable
// data is an error; the position is restored on a best-effort basis.
//
// Decoded pairs are appended as written. The insertion-time
// begin <= end check does not apply here: the decoder trusts the
// encoder, and re-validating would break maps persisted with a
// different policy.
func ReadBinary(r io.ReadSeeker) (*Map, bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, false, fmt.Errorf("failed to locate stream position: %w", err)
	}

	m, ok, err := decodeBlock(r)
	if ok {
		return m, true, nil
	}
	if _, serr := r.Seek(start, io.SeekStart); serr != nil && err == nil {
		return nil, false, fmt.Errorf("failed to restore stream position: %w", serr)
	}
	return nil, false, err
}

func decodeBlock(r io.Reader) (*Map, bool, error) {
	var sig [signatureSize]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read signature: %w", err)
	}
	if binary.LittleEndian.Uint32(sig[:]) != Signature {
		return nil, false, nil
	}

	var cnt [countSize]byte
	if _, err := io.ReadFull(r, cnt[:]); err != nil {
		return nil, false, fmt.Errorf("failed to read range count: %w", err)
	}
	count := binary.LittleEndian.Uint32(cnt[:])

	m := New()
	var pair [rangeSize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, pair[:]); err != nil {
			return nil, false, fmt.Errorf("failed to read range %d: %w", i, err)
		}
		m.appendRange(
			Char(binary.LittleEndian.Uint32(pair[0:4])),
			Char(binary.LittleEndian.Uint32(pair[4:8])),
		)
	}
	return m, true, nil
}
