// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build !linux

package shm

import (
	"os"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/mmf"
)

type memoryObject struct{}

func newMemoryObject(rawName string, flag int, perm os.FileMode) (*memoryObject, bool, error) {
	return nil, false, ipc.NewError(ipc.Unsupported, "shared memory objects are not supported on this platform")
}

func (obj *memoryObject) Name() string                { return "" }
func (obj *memoryObject) IsCreator() bool             { return false }
func (obj *memoryObject) Mapped() bool                { return false }
func (obj *memoryObject) Size() int64                 { return 0 }
func (obj *memoryObject) Fd() uintptr                 { return ^uintptr(0) }
func (obj *memoryObject) Truncate(size int64) error   { return errUnsupported() }
func (obj *memoryObject) Close() error                { return errUnsupported() }
func (obj *memoryObject) unmap() error                { return errUnsupported() }
func (obj *memoryObject) destroy() error              { return errUnsupported() }

func (obj *memoryObject) doMap(offset int64, size int, mode int) (*mmf.MemoryRegion, error) {
	return nil, errUnsupported()
}

func destroyMemoryObject(rawName string) error {
	return errUnsupported()
}

func errUnsupported() error {
	return ipc.NewError(ipc.Unsupported, "shared memory objects are not supported on this platform")
}
