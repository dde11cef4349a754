// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package mq provides access to the kernel's named message queues.
// Messages carry a priority, and receivers always obtain the
// highest-priority, then oldest, pending message. Send and receive
// block according to the queue's O_NONBLOCK flag, or can be given
// an explicit timeout.
package mq
