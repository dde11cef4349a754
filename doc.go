// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package ipc provides a safe, typed layer over POSIX inter-process
// communication objects. It implements the following mechanisms:
//	named semaphores (sem)
//	shared memory objects (shm)
//	memory mapped regions (mmf)
//	message queues (mq)
// All objects are addressed by a system-wide name and outlive the
// process that created them. Each subpackage splits the lifecycle into
// two independent operations: Close, which releases this process'
// reference, and Destroy, which unlinks the name from the system.
// The latter is never performed implicitly.
// Failures are reported as *Error values carrying a Kind, which can be
// inspected with ErrKind and the Is* helpers.
package ipc
