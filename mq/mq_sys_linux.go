// Copyright 2016 Aleksandr Demakin. All rights reserved.

package mq

import (
	"os"
	"syscall"
	"unsafe"

	"github.com/nxgtw/posix-ipc/internal/allocator"

	"golang.org/x/sys/unix"
)

// mqAttr mirrors the kernel mq_attr struct.
type mqAttr struct {
	Flags   int
	Maxmsg  int
	Msgsize int
	Curmsgs int
	_       [4]int
}

func mq_open(name string, flags int, mode uint32, attrs *mqAttr) (int, error) {
	nameBytes, err := syscall.BytePtrFromString(name)
	if err != nil {
		return -1, err
	}
	bytes := unsafe.Pointer(nameBytes)
	attrsP := unsafe.Pointer(attrs)
	id, _, errno := syscall.Syscall6(unix.SYS_MQ_OPEN,
		uintptr(bytes),
		uintptr(flags),
		uintptr(mode),
		uintptr(attrsP),
		0,
		0)
	allocator.Use(bytes)
	allocator.Use(attrsP)
	if errno != syscall.Errno(0) {
		return -1, os.NewSyscallError("MQ_OPEN", errno)
	}
	return int(id), nil
}

func mq_timedsend(id int, data []byte, prio int, timeout *unix.Timespec) error {
	rawData := allocator.ByteSliceData(data)
	timeoutPtr := unsafe.Pointer(timeout)
	_, _, errno := syscall.Syscall6(unix.SYS_MQ_TIMEDSEND,
		uintptr(id),
		uintptr(rawData),
		uintptr(len(data)),
		uintptr(prio),
		uintptr(timeoutPtr),
		0)
	allocator.Use(rawData)
	allocator.Use(timeoutPtr)
	if errno != syscall.Errno(0) {
		return os.NewSyscallError("MQ_TIMEDSEND", errno)
	}
	return nil
}

func mq_timedreceive(id int, data []byte, prio *int, timeout *unix.Timespec) (int, error) {
	rawData := allocator.ByteSliceData(data)
	timeoutPtr := unsafe.Pointer(timeout)
	prioPtr := unsafe.Pointer(prio)
	msgSize, _, errno := syscall.Syscall6(unix.SYS_MQ_TIMEDRECEIVE,
		uintptr(id),
		uintptr(rawData),
		uintptr(len(data)),
		uintptr(prioPtr),
		uintptr(timeoutPtr),
		0)
	allocator.Use(rawData)
	allocator.Use(timeoutPtr)
	allocator.Use(prioPtr)
	if errno != syscall.Errno(0) {
		return 0, os.NewSyscallError("MQ_TIMEDRECEIVE", errno)
	}
	return int(msgSize), nil
}

func mq_getsetattr(id int, attrs, oldAttrs *mqAttr) error {
	attrsPtr := unsafe.Pointer(attrs)
	oldAttrsPtr := unsafe.Pointer(oldAttrs)
	_, _, errno := syscall.Syscall(unix.SYS_MQ_GETSETATTR,
		uintptr(id),
		uintptr(attrsPtr),
		uintptr(oldAttrsPtr))
	allocator.Use(attrsPtr)
	allocator.Use(oldAttrsPtr)
	if errno != syscall.Errno(0) {
		return os.NewSyscallError("MQ_GETSETATTR", errno)
	}
	return nil
}

func mq_unlink(name string) error {
	nameBytes, err := syscall.BytePtrFromString(name)
	if err != nil {
		return err
	}
	bytes := unsafe.Pointer(nameBytes)
	_, _, errno := syscall.Syscall(unix.SYS_MQ_UNLINK, uintptr(bytes), uintptr(0), uintptr(0))
	allocator.Use(bytes)
	if errno != syscall.Errno(0) {
		return os.NewSyscallError("MQ_UNLINK", errno)
	}
	return nil
}
