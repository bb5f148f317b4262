// Package alphamap maps application-facing 32-bit code points onto a
// dense alphabet-index space used as edge labels by trie-based
// dictionary engines.
//
// Applications define the accepted code-point set as a sequence of
// inclusive ranges. The ranges pack, in the order they were added, into
// a contiguous index space starting at 1; index 0 and code point 0 are
// the reserved terminator. Add order is the authoritative definition of
// index assignment: ranges are never sorted, merged, or de-duplicated,
// and persisted maps replay their original order exactly.
//
// # Quick Start
//
//	m := alphamap.New()
//	_ = m.AddRange('a', 'z')
//	_ = m.AddRange('0', '9')
//
//	ix, ok := m.ToIndex('q') // 17, true
//	c, ok := m.ToChar(27)    // '0', true
//
// # Loading and Persistence
//
// Alphabets load from a tolerant, human-editable text format or from a
// compact binary block that supports non-destructive probing:
//
//	m, err := alphamap.ReadText(f)
//	m, ok, err := alphamap.ReadBinary(f) // ok=false leaves f untouched
//
// The mapfile package wraps the binary block in a standalone container
// with a checksum and optional compression. The dictstore package
// abstracts where alphabet resources live (local disk, memory, MinIO,
// S3), and the registry package caches named alphabets on top of any
// store.
package alphamap
