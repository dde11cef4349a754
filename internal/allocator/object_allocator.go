// Copyright 2015 Aleksandr Demakin. All rights reserved.

package allocator

import (
	"reflect"
	"runtime"
	"unsafe"
)

// ByteSliceData returns a pointer to the data of the given byte slice.
func ByteSliceData(slice []byte) unsafe.Pointer {
	header := (*reflect.SliceHeader)(unsafe.Pointer(&slice))
	return unsafe.Pointer(header.Data)
}

// ByteSliceFromUnsafePointer returns a byte slice with the given
// length and capacity over the memory pointed to by memory.
func ByteSliceFromUnsafePointer(memory unsafe.Pointer, length, capacity int) []byte {
	sl := reflect.SliceHeader{
		Len:  length,
		Cap:  capacity,
		Data: uintptr(memory),
	}
	return *(*[]byte)(unsafe.Pointer(&sl))
}

// Use is a no-op, but it ensures that the object pointed to by p
// is kept live until that point.
func Use(p unsafe.Pointer) {
	runtime.KeepAlive(p)
}
