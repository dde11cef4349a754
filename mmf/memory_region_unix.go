// Copyright 2015 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd linux

package mmf

import (
	"os"
	"syscall"
	"unsafe"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/allocator"
	"github.com/nxgtw/posix-ipc/internal/common"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func init() {
	mmapOffsetMultiple = int64(os.Getpagesize())
}

type memoryRegion struct {
	data       []byte
	size       int
	pageOffset int64
}

func newMemoryRegion(obj Mappable, mode int, offset int64, size int) (*memoryRegion, error) {
	prot, flags, err := memProtAndFlagsFromMode(mode)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, ipc.NewError(ipc.InvalidArgument, "mapping offset must not be negative")
	}
	if size, err = checkMmapSize(obj, size); err != nil {
		return nil, err
	}
	objSize, sizeKnown, err := fileSizeFromFd(obj)
	if err != nil {
		return nil, errors.Wrap(err, "object size check failed")
	}
	// mmap does not object to mapping more bytes, than the object
	// actually has, but touching them kills the process with SIGBUS.
	if sizeKnown && int64(size)+offset > objSize {
		return nil, ipc.NewError(ipc.OutOfRange, "mapping exceeds the object size")
	}
	pageOffset := calcMmapOffsetFixup(offset)
	data, err := unix.Mmap(int(obj.Fd()), offset-pageOffset, size+int(pageOffset), prot, flags)
	if err != nil {
		return nil, common.NewSyscallError("MMAP", err)
	}
	return &memoryRegion{data: data, size: size, pageOffset: pageOffset}, nil
}

func (region *memoryRegion) Close() error {
	if region.data == nil {
		return nil
	}
	err := unix.Munmap(region.data)
	region.data = nil
	region.pageOffset = 0
	region.size = 0
	if err != nil {
		return errors.Wrap(err, "munmap failed")
	}
	return nil
}

func (region *memoryRegion) Data() []byte {
	return region.data[region.pageOffset:]
}

func (region *memoryRegion) Flush(async bool) error {
	flag := unix.MS_SYNC
	if async {
		flag = unix.MS_ASYNC
	}
	if err := msync(region.data, flag); err != nil {
		return errors.Wrap(err, "msync failed")
	}
	return nil
}

func (region *memoryRegion) Size() int {
	return region.size
}

func memProtAndFlagsFromMode(mode int) (prot, flags int, err error) {
	switch mode {
	case ipc.MEM_READ_ONLY:
		prot = unix.PROT_READ
		flags = unix.MAP_SHARED
	case ipc.MEM_READ_PRIVATE:
		prot = unix.PROT_READ
		flags = unix.MAP_PRIVATE
	case ipc.MEM_READWRITE:
		prot = unix.PROT_READ | unix.PROT_WRITE
		flags = unix.MAP_SHARED
	case ipc.MEM_COPY_ON_WRITE:
		prot = unix.PROT_READ | unix.PROT_WRITE
		flags = unix.MAP_PRIVATE
	default:
		err = ipc.NewError(ipc.InvalidArgument, "invalid memory region flags")
	}
	return
}

// syscalls
func msync(data []byte, flags int) error {
	dataPointer := unsafe.Pointer(&data[0])
	_, _, err := unix.Syscall(unix.SYS_MSYNC, uintptr(dataPointer), uintptr(len(data)), uintptr(flags))
	allocator.Use(dataPointer)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("MSYNC", err)
	}
	return nil
}
