// Copyright 2016 Aleksandr Demakin. All rights reserved.

package mq

import (
	"io"
	"os"
	"time"

	ipc "github.com/nxgtw/posix-ipc"
)

// Messenger is an interface which must be satisfied by any
// message queue implementation on any platform.
type Messenger interface {
	// Send puts a message with the given priority into the queue.
	Send(data []byte, prio int) error
	// Receive gets the highest-priority, then oldest, message from
	// the queue. It returns the message length and its priority.
	Receive(data []byte) (int, int, error)
	io.Closer
}

// TimedMessenger is a Messenger, which supports send/receive timeouts.
type TimedMessenger interface {
	Messenger
	SendTimeout(data []byte, prio int, timeout time.Duration) error
	ReceiveTimeout(data []byte, timeout time.Duration) (int, int, error)
}

// Attr describes the attributes of a queue.
type Attr struct {
	// MaxQueueSize is the maximum number of pending messages.
	MaxQueueSize int
	// MaxMsgSize is the maximum size of a single message.
	MaxMsgSize int
	// CurMsgs is the number of messages currently in the queue.
	CurMsgs int
}

func checkMqPerm(perm os.FileMode) error {
	if uint(perm)&0111 != 0 {
		return ipc.NewError(ipc.InvalidArgument, "invalid mq permissions")
	}
	return nil
}

var (
	_ Messenger      = (*MessageQueue)(nil)
	_ TimedMessenger = (*MessageQueue)(nil)
	_ ipc.Destroyer  = (*MessageQueue)(nil)
)
