// Copyright 2015 Aleksandr Demakin. All rights reserved.

// +build linux

package shm

import (
	"os"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/common"
	"github.com/nxgtw/posix-ipc/mmf"
)

type memoryObject struct {
	file    *os.File
	name    ipc.Name
	created bool
	region  *mmf.MemoryRegion
}

func newMemoryObject(rawName string, flag int, perm os.FileMode) (*memoryObject, bool, error) {
	name, err := ipc.ValidateName(rawName)
	if err != nil {
		return nil, false, err
	}
	path, err := shmPath(name)
	if err != nil {
		return nil, false, err
	}
	accessFlags, err := common.AccessFlagsToOsFlags(flag)
	if err != nil {
		return nil, false, err
	}
	if _, err = common.CreateFlagsToOsFlags(flag); err != nil {
		return nil, false, err
	}
	var file *os.File
	creator := func(create bool) error {
		osFlags := accessFlags
		if create {
			osFlags |= os.O_CREATE | os.O_EXCL
		}
		var openErr error
		file, openErr = shmOpen(path, osFlags, perm)
		return common.NewSyscallError("SHM_OPEN", openErr)
	}
	created, err := common.OpenOrCreate(creator, flag)
	if err != nil {
		return nil, false, err
	}
	return &memoryObject{file: file, name: name, created: created}, created, nil
}

func (obj *memoryObject) Name() string {
	return string(obj.name)
}

// IsCreator reports whether the object was created by this handle.
func (obj *memoryObject) IsCreator() bool {
	return obj.created
}

// Mapped reports whether a mapping obtained from this handle is active.
func (obj *memoryObject) Mapped() bool {
	return obj.region != nil
}

// Truncate resizes the underlying object. Mappings active in other
// handles or processes are not resized, and resizing under them is
// a kernel-defined hazard, which this layer does not arbitrate.
func (obj *memoryObject) Truncate(size int64) error {
	if size < 0 {
		return ipc.NewError(ipc.InvalidArgument, "object size must not be negative")
	}
	if obj.region != nil {
		return ipc.NewError(ipc.InvalidState, "cannot truncate while a mapping is active")
	}
	return common.NewSyscallError("FTRUNCATE", obj.file.Truncate(size))
}

func (obj *memoryObject) doMap(offset int64, size int, mode int) (*mmf.MemoryRegion, error) {
	if obj.region != nil {
		return nil, ipc.NewError(ipc.InvalidState, "a mapping is already active")
	}
	region, err := mmf.NewMemoryRegion(obj, mode, offset, size)
	if err != nil {
		return nil, err
	}
	obj.region = region
	return region, nil
}

func (obj *memoryObject) unmap() error {
	if obj.region == nil {
		return ipc.NewError(ipc.InvalidState, "no active mapping")
	}
	err := obj.region.Close()
	obj.region = nil
	return err
}

func (obj *memoryObject) Size() int64 {
	fileInfo, err := obj.file.Stat()
	if err != nil {
		return 0
	}
	return fileInfo.Size()
}

func (obj *memoryObject) Fd() uintptr {
	return obj.file.Fd()
}

func (obj *memoryObject) Stat() (os.FileInfo, error) {
	return obj.file.Stat()
}

func (obj *memoryObject) Close() error {
	if obj.region != nil {
		if err := obj.unmap(); err != nil {
			return err
		}
	}
	return obj.file.Close()
}

func (obj *memoryObject) destroy() error {
	if int(obj.Fd()) >= 0 {
		if err := obj.Close(); err != nil {
			return err
		}
	}
	return destroyMemoryObject(string(obj.name))
}

func destroyMemoryObject(rawName string) error {
	name, err := ipc.ValidateName(rawName)
	if err != nil {
		return err
	}
	path, err := shmPath(name)
	if err != nil {
		return err
	}
	return common.NewSyscallError("SHM_UNLINK", os.Remove(path))
}

// glibc/sysdeps/posix/shm_open.c
func shmOpen(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}
