// Package mmap provides read-only memory-mapped file access.
//
// Alphabet resources are opened once and queried many times; mapping
// them keeps reads zero-copy and lets every process holding the same
// dictionary share one set of page-cache pages.
//
//	m, err := mmap.Open("alphabet.txt")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix platforms use mmap(2) with madvise(2) access hints; Windows uses
// CreateFileMapping/MapViewOfFile and treats hints as no-ops. A Mapping
// is safe for concurrent reads; Close is idempotent, but callers must
// not touch Bytes() after Close returns.
package mmap
