// Copyright 2015 Aleksandr Demakin. All rights reserved.

package ipc

// common flags for opening/creation of objects
const (
	// O_CREATE creates the object, if it does not exist.
	// Without O_EXCL an existing object is opened instead.
	O_CREATE = 0x00000001
	// O_EXCL, combined with O_CREATE, makes the call fail,
	// if the object already exists. O_EXCL without O_CREATE
	// is a configuration error.
	O_EXCL = 0x00000002
	// access flags.
	O_READ_ONLY = 0x00000008
	O_READWRITE = 0x00000020
	// O_NONBLOCK flag makes some ipc operations non-blocking
	O_NONBLOCK = 0x00000040
	// other values can be platform-specific, and/or operation-specific
)

// constants for memory regions
const (
	MEM_READ_ONLY     = 0x00000001
	MEM_READ_PRIVATE  = 0x00000002
	MEM_READWRITE     = 0x00000004
	MEM_COPY_ON_WRITE = 0x00000008
)
