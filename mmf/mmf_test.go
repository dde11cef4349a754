// Copyright 2015 Aleksandr Demakin. All rights reserved.

package mmf

import (
	"io"
	"io/ioutil"
	"os"
	"testing"

	ipc "github.com/nxgtw/posix-ipc"

	"github.com/stretchr/testify/assert"
)

const testFileSize = 16384

func makeTestFile(t *testing.T) *os.File {
	file, err := ioutil.TempFile("", "mmf.test")
	if err != nil {
		t.Fatal(err)
	}
	data := make([]byte, testFileSize)
	for i := range data {
		data[i] = byte(i)
	}
	if _, err = file.Write(data); err != nil {
		file.Close()
		t.Fatal(err)
	}
	return file
}

func removeTestFile(file *os.File) {
	file.Close()
	os.Remove(file.Name())
}

func TestMmfOpen(t *testing.T) {
	a := assert.New(t)
	file := makeTestFile(t)
	defer removeTestFile(file)
	mr, err := NewMemoryRegion(file, ipc.MEM_READ_ONLY, 0, testFileSize)
	if !a.NoError(err) {
		return
	}
	a.Equal(testFileSize, mr.Size())
	a.NoError(mr.Close())
	mr, err = NewMemoryRegion(file, ipc.MEM_READ_ONLY, 0, WholeObject)
	if a.NoError(err) {
		a.Equal(testFileSize, mr.Size())
		a.NoError(mr.Close())
	}
	mr, err = NewMemoryRegion(file, ipc.MEM_READ_ONLY, testFileSize-1024, 1024)
	if a.NoError(err) {
		a.NoError(mr.Close())
	}
}

func TestMmfOpenOutOfRange(t *testing.T) {
	a := assert.New(t)
	file := makeTestFile(t)
	defer removeTestFile(file)
	_, err := NewMemoryRegion(file, ipc.MEM_READ_ONLY, testFileSize-1024, 1025)
	a.Equal(ipc.OutOfRange, ipc.ErrKind(err))
	_, err = NewMemoryRegion(file, ipc.MEM_READ_ONLY, testFileSize, 1)
	a.Equal(ipc.OutOfRange, ipc.ErrKind(err))
	_, err = NewMemoryRegion(file, ipc.MEM_READ_ONLY, 0, testFileSize+1)
	a.Equal(ipc.OutOfRange, ipc.ErrKind(err))
}

func TestMmfOpenInvalidArgs(t *testing.T) {
	a := assert.New(t)
	file := makeTestFile(t)
	defer removeTestFile(file)
	_, err := NewMemoryRegion(file, ipc.MEM_READ_ONLY, 0, 0)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
	_, err = NewMemoryRegion(file, ipc.MEM_READ_ONLY, 0, -2)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
	_, err = NewMemoryRegion(file, ipc.MEM_READ_ONLY, -1, 1024)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
	_, err = NewMemoryRegion(file, 0x77777, 0, 1024)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
}

func TestMmfOpenReadonly(t *testing.T) {
	const offset = 3746
	a := assert.New(t)
	file := makeTestFile(t)
	defer removeTestFile(file)
	roFile, err := os.Open(file.Name())
	if !a.NoError(err) {
		return
	}
	defer roFile.Close()
	region, err := NewMemoryRegion(roFile, ipc.MEM_READ_ONLY, offset, 1024)
	if !a.NoError(err) {
		return
	}
	defer region.Close()
	a.Equal(1024, region.Size())
	for i := 0; i < 1024; i++ {
		if !a.Equal(byte(i+offset), region.Data()[i]) {
			break
		}
	}
	// a writable mapping over a read-only descriptor must be refused.
	_, err = NewMemoryRegion(roFile, ipc.MEM_READWRITE, 0, 1024)
	a.Equal(ipc.PermissionDenied, ipc.ErrKind(err))
}

func TestMmfWrite(t *testing.T) {
	a := assert.New(t)
	file := makeTestFile(t)
	defer removeTestFile(file)
	region, err := NewMemoryRegion(file, ipc.MEM_READWRITE, 0, 1024)
	if !a.NoError(err) {
		return
	}
	copy(region.Data(), "written via the mapping")
	if !a.NoError(region.Flush(false)) {
		return
	}
	a.NoError(region.Close())
	contents := make([]byte, 23)
	_, err = file.ReadAt(contents, 0)
	a.NoError(err)
	a.Equal("written via the mapping", string(contents))
}

func TestMmfFileCopy(t *testing.T) {
	a := assert.New(t)
	inFile := makeTestFile(t)
	defer removeTestFile(inFile)
	outFile, err := ioutil.TempFile("", "mmf.test")
	if !a.NoError(err) {
		return
	}
	defer removeTestFile(outFile)
	if !a.NoError(outFile.Truncate(testFileSize)) {
		return
	}
	inRegion, err := NewMemoryRegion(inFile, ipc.MEM_READ_ONLY, 0, WholeObject)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(inRegion.Close())
	}()
	outRegion, err := NewMemoryRegion(outFile, ipc.MEM_READWRITE, 0, WholeObject)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(outRegion.Close())
	}()
	rd := NewMemoryRegionReader(inRegion)
	wr := NewMemoryRegionWriter(outRegion)
	written, err := io.Copy(wr, rd)
	a.NoError(err)
	a.Equal(int64(testFileSize), written)
	if !a.NoError(outRegion.Flush(false)) {
		return
	}
	expected, err := ioutil.ReadFile(inFile.Name())
	if !a.NoError(err) {
		return
	}
	actual, err := ioutil.ReadFile(outFile.Name())
	if !a.NoError(err) {
		return
	}
	a.Equal(expected, actual)
}
