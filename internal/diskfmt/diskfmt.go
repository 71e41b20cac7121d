// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diskfmt holds the low-level, package-agnostic pieces of
// ngramtool's on-disk artifact format: the byte-order marker, fixed-width
// element encode/decode, and an mmap wrapper in the style of
// sourcegraph-zoekt's indexfile.go. corpus builds artifacts with these
// primitives; the extraction sweep reads them back with the same ones.
package diskfmt

import (
	"encoding/binary"
	"os"
	"runtime"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ElemSize is the on-disk width of one corpus element.
type ElemSize int

const (
	SizeChar ElemSize = 2
	SizeWord ElemSize = 4
)

const (
	markerLittleEndian byte = 0x01
	markerBigEndian    byte = 0x02
)

// HostMarker returns the byte-order marker for this process's native
// order, written once at the head of every .ngram file so readers can
// refuse a file built on a foreign-endian host rather than silently
// misinterpreting it.
func HostMarker() byte {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 0x0102)
	if buf[0] == 0x02 {
		return markerLittleEndian
	}
	return markerBigEndian
}

// CheckMarker validates a marker byte read from an artifact against this
// host's order.
func CheckMarker(got byte) error {
	want := HostMarker()
	if got != want {
		return errors.Errorf("diskfmt: byte-order marker %#x does not match host marker %#x; artifact was built on a foreign-endian host", got, want)
	}
	return nil
}

// PutElem writes v into buf (which must be at least size bytes) in host
// order.
func PutElem(buf []byte, size ElemSize, v uint32) {
	switch size {
	case SizeChar:
		binary.NativeEndian.PutUint16(buf, uint16(v))
	case SizeWord:
		binary.NativeEndian.PutUint32(buf, v)
	default:
		panic("diskfmt: unknown element size")
	}
}

// GetElem reads one element of the given size from the head of buf.
func GetElem(buf []byte, size ElemSize) uint32 {
	switch size {
	case SizeChar:
		return uint32(binary.NativeEndian.Uint16(buf))
	case SizeWord:
		return binary.NativeEndian.Uint32(buf)
	default:
		panic("diskfmt: unknown element size")
	}
}

// MappedFile is a read-only memory-mapped file, in the style of zoekt's
// mmapedIndexFile.
type MappedFile struct {
	name string
	size int64
	data mmap.MMap
}

// BufferSize page-rounds sz up, except on windows where mmap.MapRegion
// cannot be offset, matching zoekt's indexfile.go bufferSize.
func BufferSize(sz int64) int {
	if runtime.GOOS == "windows" {
		return int(sz)
	}
	pageSize := int64(os.Getpagesize())
	return int((sz + pageSize - 1) / pageSize * pageSize)
}

// OpenMapped opens and mmaps path read-only.
func OpenMapped(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	mf := &MappedFile{name: path, size: fi.Size()}
	if fi.Size() == 0 {
		mf.data = mmap.MMap{}
		return mf, nil
	}

	data, err := mmap.MapRegion(f, BufferSize(fi.Size()), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s", path)
	}
	mf.data = data
	return mf, nil
}

// Bytes returns the mapped file's content.
func (m *MappedFile) Bytes() []byte { return []byte(m.data)[:m.size] }

// Size returns the file's size in bytes.
func (m *MappedFile) Size() int64 { return m.size }

// Read returns the sz bytes at off, bounds-checked.
func (m *MappedFile) Read(off, sz int64) ([]byte, error) {
	if off < 0 || sz < 0 || off+sz > m.size {
		return nil, errors.Errorf("diskfmt: read [%d,%d) out of range for %s (size %d)", off, off+sz, m.name, m.size)
	}
	return []byte(m.data)[off : off+sz], nil
}

// Close unmaps the file.
func (m *MappedFile) Close() error {
	if len(m.data) == 0 {
		return nil
	}
	if err := m.data.Unmap(); err != nil {
		zap.L().Warn("unmap failed", zap.String("file", m.name), zap.Error(err))
		return err
	}
	return nil
}
