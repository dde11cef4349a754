// Copyright 2015 Aleksandr Demakin. All rights reserved.

package shm

import (
	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/mmf"
)

// this is to ensure, that all implementations of shm-related structs
// satisfy the same minimal interface.
var (
	_ iSharedMemoryObject = (*MemoryObject)(nil)
	_ ipc.Destroyer       = (*MemoryObject)(nil)
)

type iSharedMemoryObject interface {
	Name() string
	Size() int64
	IsCreator() bool
	Truncate(size int64) error
	Mapped() bool
	Unmap() error
	Close() error
	Destroy() error
	mmf.Mappable
}
