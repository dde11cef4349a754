// Copyright 2015 Aleksandr Demakin. All rights reserved.

package mq

import (
	"os"
	"time"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/common"

	"golang.org/x/sys/unix"
)

const (
	// DefaultMqMaxSize is the default queue capacity.
	DefaultMqMaxSize = 8
	// DefaultMqMessageSize is the default maximum message size.
	// Its max value can be set via procfs.
	DefaultMqMessageSize = 8192
	// cMqPrioMax is the kernel's MQ_PRIO_MAX. Message priorities
	// must be less than it.
	cMqPrioMax = 32768
)

// MessageQueue gives access to a kernel message queue.
// Send and Receive may be called concurrently from several
// goroutines. Construction, Close, and Destroy must be serialized
// by the caller.
type MessageQueue struct {
	id         int
	name       ipc.Name
	flags      int
	maxMsgSize int
}

// CreateMessageQueue opens or creates a queue with the given name.
//	name - queue name. must begin with '/' and contain no further '/'s.
//	flag - a combination of O_EXCL and O_NONBLOCK from the root
//		package. the queue is always created, unless it exists.
//	perm - object's permission bits. must not contain exec bits.
//	maxQueueSize - the maximum number of pending messages. must be positive.
//	maxMsgSize - the maximum size of a single message. must be positive.
func CreateMessageQueue(name string, flag int, perm os.FileMode, maxQueueSize, maxMsgSize int) (*MessageQueue, error) {
	validated, err := ipc.ValidateName(name)
	if err != nil {
		return nil, err
	}
	if err = checkMqPerm(perm); err != nil {
		return nil, err
	}
	if maxQueueSize <= 0 || maxMsgSize <= 0 {
		return nil, ipc.NewError(ipc.InvalidArgument, "queue attributes must be positive")
	}
	sysflags := unix.O_CREAT | unix.O_RDWR | unix.O_CLOEXEC
	if flag&ipc.O_EXCL != 0 {
		sysflags |= unix.O_EXCL
	}
	attrs := &mqAttr{Maxmsg: maxQueueSize, Msgsize: maxMsgSize}
	id, err := mq_open(validated.Base(), sysflags, uint32(perm), attrs)
	if err != nil {
		return nil, common.NewSyscallError("MQ_OPEN", err)
	}
	return &MessageQueue{
		id:         id,
		name:       validated,
		flags:      flag,
		maxMsgSize: maxMsgSize,
	}, nil
}

// OpenMessageQueue opens an existing queue. It fails with a NotFound
// error, if the queue does not exist. Caller-supplied attributes do
// not apply here: the queue's actual attributes are read from the
// kernel.
//	name - queue name.
//	flag - a combination of access flags and O_NONBLOCK from the
//		root package.
func OpenMessageQueue(name string, flag int) (*MessageQueue, error) {
	validated, err := ipc.ValidateName(name)
	if err != nil {
		return nil, err
	}
	accessFlags, err := common.AccessFlagsToOsFlags(flag)
	if err != nil {
		return nil, err
	}
	id, err := mq_open(validated.Base(), accessFlags|unix.O_CLOEXEC, uint32(0), nil)
	if err != nil {
		return nil, common.NewSyscallError("MQ_OPEN", err)
	}
	result := &MessageQueue{
		id:    id,
		name:  validated,
		flags: flag,
	}
	attrs, err := result.Attrs()
	if err != nil {
		result.Close()
		return nil, err
	}
	result.maxMsgSize = attrs.MaxMsgSize
	return result, nil
}

// SendTimeout puts a message with the given priority into the queue.
// If the queue is full, it blocks for not longer than timeout, and
// then fails with a TimedOut error. A zero timeout makes the call
// non-blocking, and a negative one removes the timeout.
func (mq *MessageQueue) SendTimeout(data []byte, prio int, timeout time.Duration) error {
	if mq.ID() < 0 {
		return ipc.NewError(ipc.Closed, "MQ_SEND")
	}
	if len(data) > mq.maxMsgSize {
		return ipc.NewError(ipc.MessageTooLarge, "MQ_SEND")
	}
	if prio < 0 || prio >= cMqPrioMax {
		return ipc.NewError(ipc.InvalidArgument, "message priority is out of range")
	}
	err := common.UninterruptedSyscallTimeout(func(curTimeout time.Duration) error {
		return mq_timedsend(mq.ID(), data, prio, common.AbsTimeoutToTimeSpec(curTimeout))
	}, timeout)
	return translateTimedOpErr("MQ_SEND", err, timeout)
}

// Send puts a message with the given priority into the queue.
// If the queue is full, it blocks, unless the queue was opened with
// O_NONBLOCK, in which case it fails with a WouldBlock error.
func (mq *MessageQueue) Send(data []byte, prio int) error {
	return mq.SendTimeout(data, prio, mq.blockingTimeout())
}

// ReceiveTimeout gets the highest-priority, then oldest, message
// from the queue, returning its length and priority. If the queue is
// empty, it blocks for not longer than timeout, and then fails with
// a TimedOut error. A zero timeout makes the call non-blocking, and
// a negative one removes the timeout.
func (mq *MessageQueue) ReceiveTimeout(input []byte, timeout time.Duration) (int, int, error) {
	if mq.ID() < 0 {
		return 0, 0, ipc.NewError(ipc.Closed, "MQ_RECEIVE")
	}
	// the kernel rejects receives into a buffer smaller than the
	// queue's message size, so smaller caller buffers are staged.
	// the staging buffer is per call, as receives may run
	// concurrently.
	dataToReceive := input
	if len(input) < mq.maxMsgSize {
		dataToReceive = make([]byte, mq.maxMsgSize)
	}
	var prio, actualMsgSize int
	err := common.UninterruptedSyscallTimeout(func(curTimeout time.Duration) error {
		var receiveErr error
		actualMsgSize, receiveErr = mq_timedreceive(mq.ID(), dataToReceive, &prio, common.AbsTimeoutToTimeSpec(curTimeout))
		return receiveErr
	}, timeout)
	if err != nil {
		return 0, 0, translateTimedOpErr("MQ_RECEIVE", err, timeout)
	}
	if len(input) < mq.maxMsgSize {
		if len(input) < actualMsgSize {
			return 0, 0, ipc.NewError(ipc.InvalidArgument, "the buffer is too small for the message")
		}
		copy(input, dataToReceive[:actualMsgSize])
	}
	return actualMsgSize, prio, nil
}

// Receive gets the highest-priority, then oldest, message from the
// queue, returning its length and priority. If the queue is empty,
// it blocks, unless the queue was opened with O_NONBLOCK, in which
// case it fails with a WouldBlock error.
func (mq *MessageQueue) Receive(data []byte) (int, int, error) {
	return mq.ReceiveTimeout(data, mq.blockingTimeout())
}

// ID returns the unique id of this process' queue descriptor.
func (mq *MessageQueue) ID() int {
	return mq.id
}

// Cap returns the maximum number of pending messages.
func (mq *MessageQueue) Cap() (int, error) {
	attrs, err := mq.Attrs()
	if err != nil {
		return 0, err
	}
	return attrs.MaxQueueSize, nil
}

// MaxMsgSize returns the maximum size of a single message.
func (mq *MessageQueue) MaxMsgSize() int {
	return mq.maxMsgSize
}

// Attrs returns the queue's attributes, as reported by the kernel.
func (mq *MessageQueue) Attrs() (*Attr, error) {
	attrs := new(mqAttr)
	if err := mq_getsetattr(mq.ID(), nil, attrs); err != nil {
		return nil, common.NewSyscallError("MQ_GETSETATTR", err)
	}
	return &Attr{
		MaxQueueSize: attrs.Maxmsg,
		MaxMsgSize:   attrs.Msgsize,
		CurMsgs:      attrs.Curmsgs,
	}, nil
}

// SetBlocking sets whether the send/receive operations on the queue
// block. This applies to the current instance only.
func (mq *MessageQueue) SetBlocking(block bool) error {
	if block {
		mq.flags &= ^ipc.O_NONBLOCK
	} else {
		mq.flags |= ipc.O_NONBLOCK
	}
	return nil
}

// Close releases this process' queue descriptor. Operations on a
// closed queue fail with a Closed error.
func (mq *MessageQueue) Close() error {
	err := common.NewSyscallError("MQ_CLOSE", sysCloseErr(mq.ID()))
	*mq = MessageQueue{id: -1}
	return err
}

// Destroy closes the queue and unlinks its name. Handles already
// open elsewhere remain valid until they are closed.
func (mq *MessageQueue) Destroy() error {
	name := string(mq.name)
	if err := mq.Close(); err != nil {
		return err
	}
	return DestroyMessageQueue(name)
}

// DestroyMessageQueue unlinks the queue with the given name, so that
// it can no longer be opened. It fails with a NotFound error, if
// there is no such queue.
func DestroyMessageQueue(name string) error {
	validated, err := ipc.ValidateName(name)
	if err != nil {
		return err
	}
	return common.NewSyscallError("MQ_UNLINK", mq_unlink(validated.Base()))
}

func (mq *MessageQueue) blockingTimeout() time.Duration {
	if mq.flags&ipc.O_NONBLOCK != 0 {
		return 0
	}
	return -1
}

// translateTimedOpErr converts a kernel failure of a timed send or
// receive into a kind-carrying error. A zero timeout means the
// operation was a non-blocking one, and the kernel's 'timed out'
// report actually means 'would block'.
func translateTimedOpErr(op string, err error, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if timeout == 0 && common.SyscallErrHasCode(err, unix.ETIMEDOUT) {
		return &ipc.Error{Kind: ipc.WouldBlock, Op: op, Err: err}
	}
	return common.NewSyscallError(op, err)
}

func sysCloseErr(id int) error {
	if id < 0 {
		return unix.EBADF
	}
	return unix.Close(id)
}
