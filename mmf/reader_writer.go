// Copyright 2016 Aleksandr Demakin. All rights reserved.

package mmf

import (
	"io"
)

// MemoryRegionReader is a reader for safe operations over a mapped
// region. It holds a reference to the region, so the latter can't be
// gc'ed while the reader is in use.
type MemoryRegionReader struct {
	region *MemoryRegion
	pos    int64
}

// NewMemoryRegionReader creates a new reader for the given region.
func NewMemoryRegionReader(region *MemoryRegion) *MemoryRegionReader {
	return &MemoryRegionReader{region: region}
}

// ReadAt is to implement io.ReaderAt.
func (r *MemoryRegionReader) ReadAt(p []byte, off int64) (n int, err error) {
	data := r.region.Data()
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n = copy(p, data[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// Read is to implement io.Reader.
func (r *MemoryRegionReader) Read(p []byte) (n int, err error) {
	n, err = r.ReadAt(p, r.pos)
	r.pos += int64(n)
	return n, err
}

// MemoryRegionWriter is a writer for safe operations over a mapped
// region. It holds a reference to the region, so the latter can't be
// gc'ed while the writer is in use.
type MemoryRegionWriter struct {
	region *MemoryRegion
	pos    int64
}

// NewMemoryRegionWriter creates a new writer for the given region.
func NewMemoryRegionWriter(region *MemoryRegion) *MemoryRegionWriter {
	return &MemoryRegionWriter{region: region}
}

// WriteAt is to implement io.WriterAt.
func (w *MemoryRegionWriter) WriteAt(p []byte, off int64) (n int, err error) {
	data := w.region.Data()
	if off < int64(len(data)) {
		n = copy(data[off:], p)
	}
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// Write is to implement io.Writer.
func (w *MemoryRegionWriter) Write(p []byte) (n int, err error) {
	n, err = w.WriteAt(p, w.pos)
	w.pos += int64(n)
	return n, err
}

var (
	_ io.ReaderAt = (*MemoryRegionReader)(nil)
	_ io.WriterAt = (*MemoryRegionWriter)(nil)
)
