package alphamap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeBlock builds a raw alphabet block without going through the
// insertion-time validation, for decoder trust tests.
func encodeBlock(pairs ...[2]uint32) []byte {
	buf := make([]byte, 0, 8+len(pairs)*8)
	buf = binary.LittleEndian.AppendUint32(buf, Signature)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pairs)))
	for _, p := range pairs {
		buf = binary.LittleEndian.AppendUint32(buf, p[0])
		buf = binary.LittleEndian.AppendUint32(buf, p[1])
	}
	return buf
}

func TestBinaryRoundTrip(t *testing.T) {
	m := New()
	require.NoError(t, m.AddRange(0x20, 0x7E))
	require.NoError(t, m.AddRange(0x391, 0x3A9))

	var buf bytes.Buffer
	require.NoError(t, m.WriteBinary(&buf))
	assert.Equal(t, m.BinarySize(), int64(buf.Len()))

	got, ok, err := ReadBinary(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m.Ranges(), got.Ranges())

	for _, r := range m.Ranges() {
		for c := r.Begin; c <= r.End; c++ {
			wantIx, wantOK := m.ToIndex(c)
			gotIx, gotOK := got.ToIndex(c)
			require.Equal(t, wantOK, gotOK)
			require.Equal(t, wantIx, gotIx, "ToIndex(%#x)", c)
		}
	}
}

func TestWriteBinary_Layout(t *testing.T) {
	m := New()
	require.NoError(t, m.AddRange(0x41, 0x5A))

	var buf bytes.Buffer
	require.NoError(t, m.WriteBinary(&buf))

	want := []byte{
		0xFC, 0xD9, 0xFC, 0xD9, // signature
		0x01, 0x00, 0x00, 0x00, // range count
		0x41, 0x00, 0x00, 0x00, // begin
		0x5A, 0x00, 0x00, 0x00, // end
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestBinarySize(t *testing.T) {
	m := New()
	assert.Equal(t, int64(8), m.BinarySize())
	require.NoError(t, m.AddRange(1, 2))
	require.NoError(t, m.AddRange(4, 9))
	assert.Equal(t, int64(24), m.BinarySize())
}

func TestReadBinary_ProbeRestoresPosition(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"foreign data", []byte("[41,5A]\n[61,7A]\n")},
		{"short stream", []byte{0xFC, 0xD9}},
		{"empty stream", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)

			m, ok, err := ReadBinary(r)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, m)

			rest, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.data, append([]byte(nil), rest...))
		})
	}
}

func TestReadBinary_ProbeMidStream(t *testing.T) {
	data := append([]byte("HDR:"), []byte("not an alphabet")...)
	r := bytes.NewReader(data)

	var hdr [4]byte
	_, err := io.ReadFull(r, hdr[:])
	require.NoError(t, err)

	_, ok, err := ReadBinary(r)
	require.NoError(t, err)
	assert.False(t, ok)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("not an alphabet"), rest)
}

func TestReadBinary_EmbeddedBlock(t *testing.T) {
	m := New()
	require.NoError(t, m.AddRange(0x41, 0x5A))

	var buf bytes.Buffer
	buf.WriteString("HDR:")
	require.NoError(t, m.WriteBinary(&buf))
	buf.WriteString("trailer")

	r := bytes.NewReader(buf.Bytes())
	var hdr [4]byte
	_, err := io.ReadFull(r, hdr[:])
	require.NoError(t, err)

	got, ok, err := ReadBinary(r)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m.Ranges(), got.Ranges())

	// On success the position sits right after the block.
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("trailer"), rest)
}

func TestReadBinary_TruncatedAfterSignature(t *testing.T) {
	full := encodeBlock([2]uint32{0x41, 0x5A}, [2]uint32{0x61, 0x7A})

	tests := []struct {
		name string
		data []byte
	}{
		{"signature only", full[:4]},
		{"partial count", full[:6]},
		{"missing pair", full[:len(full)-8]},
		{"partial pair", full[:len(full)-3]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok, err := ReadBinary(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.False(t, ok)
			assert.Nil(t, m)
		})
	}
}

func TestReadBinary_TrustsEncoder(t *testing.T) {
	// A (5,3) pair would be rejected by AddRange, but decoded data is
	// replayed exactly as written.
	block := encodeBlock([2]uint32{5, 3})

	m, ok, err := ReadBinary(bytes.NewReader(block))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []Range{{5, 3}}, m.Ranges())

	// Conversions over the degenerate range stay well-defined.
	ix, ok := m.ToIndex(4)
	assert.False(t, ok)
	assert.Equal(t, InvalidIndex, ix)
	assert.Equal(t, 0, m.AlphabetSize())
}

func TestReadBinary_ZeroRanges(t *testing.T) {
	m, ok, err := ReadBinary(bytes.NewReader(encodeBlock()))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, m.RangeCount())
}

// failAfterWriter accepts n bytes, then fails.
type failAfterWriter struct {
	n   int
	err error
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		return 0, w.err
	}
	w.n -= len(p)
	return len(p), nil
}

func TestWriteBinary_WriteFailure(t *testing.T) {
	m := New()
	require.NoError(t, m.AddRange(0x41, 0x5A))
	boom := errors.New("device full")

	err := m.WriteBinary(&failAfterWriter{n: 0, err: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "header")

	err = m.WriteBinary(&failAfterWriter{n: 8, err: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "range")
}
