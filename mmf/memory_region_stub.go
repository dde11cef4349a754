// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build !darwin,!freebsd,!linux

package mmf

import (
	ipc "github.com/nxgtw/posix-ipc"
)

func init() {
	mmapOffsetMultiple = 1
}

type memoryRegion struct{}

func newMemoryRegion(obj Mappable, mode int, offset int64, size int) (*memoryRegion, error) {
	return nil, errUnsupported()
}

func (region *memoryRegion) Close() error           { return errUnsupported() }
func (region *memoryRegion) Data() []byte           { return nil }
func (region *memoryRegion) Flush(async bool) error { return errUnsupported() }
func (region *memoryRegion) Size() int              { return 0 }

func errUnsupported() error {
	return ipc.NewError(ipc.Unsupported, "memory regions are not supported on this platform")
}
