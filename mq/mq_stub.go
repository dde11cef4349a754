// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build !linux

package mq

import (
	"os"
	"time"

	ipc "github.com/nxgtw/posix-ipc"
)

// MessageQueue gives access to a kernel message queue.
// It is not supported on this platform.
type MessageQueue struct{}

// CreateMessageQueue opens or creates a queue with the given name.
func CreateMessageQueue(name string, flag int, perm os.FileMode, maxQueueSize, maxMsgSize int) (*MessageQueue, error) {
	return nil, ipc.NewError(ipc.Unsupported, "MQ_OPEN")
}

// OpenMessageQueue opens an existing queue.
func OpenMessageQueue(name string, flag int) (*MessageQueue, error) {
	return nil, ipc.NewError(ipc.Unsupported, "MQ_OPEN")
}

// SendTimeout is a placeholder for the unsupported platform.
func (mq *MessageQueue) SendTimeout(data []byte, prio int, timeout time.Duration) error {
	return ipc.NewError(ipc.Unsupported, "MQ_SEND")
}

// Send is a placeholder for the unsupported platform.
func (mq *MessageQueue) Send(data []byte, prio int) error {
	return ipc.NewError(ipc.Unsupported, "MQ_SEND")
}

// ReceiveTimeout is a placeholder for the unsupported platform.
func (mq *MessageQueue) ReceiveTimeout(input []byte, timeout time.Duration) (int, int, error) {
	return 0, 0, ipc.NewError(ipc.Unsupported, "MQ_RECEIVE")
}

// Receive is a placeholder for the unsupported platform.
func (mq *MessageQueue) Receive(data []byte) (int, int, error) {
	return 0, 0, ipc.NewError(ipc.Unsupported, "MQ_RECEIVE")
}

// Attrs is a placeholder for the unsupported platform.
func (mq *MessageQueue) Attrs() (*Attr, error) {
	return nil, ipc.NewError(ipc.Unsupported, "MQ_GETSETATTR")
}

// SetBlocking is a placeholder for the unsupported platform.
func (mq *MessageQueue) SetBlocking(block bool) error {
	return ipc.NewError(ipc.Unsupported, "MQ_SET_BLOCKING")
}

// Close is a placeholder for the unsupported platform.
func (mq *MessageQueue) Close() error {
	return ipc.NewError(ipc.Unsupported, "MQ_CLOSE")
}

// Destroy is a placeholder for the unsupported platform.
func (mq *MessageQueue) Destroy() error {
	return ipc.NewError(ipc.Unsupported, "MQ_UNLINK")
}

// DestroyMessageQueue is a placeholder for the unsupported platform.
func DestroyMessageQueue(name string) error {
	return ipc.NewError(ipc.Unsupported, "MQ_UNLINK")
}
