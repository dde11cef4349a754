// Copyright 2016 Aleksandr Demakin. All rights reserved.

package ipc

// Destroyer is an object which can be permanently removed.
// For named ipc objects Destroy unlinks the name, while handles
// already open elsewhere remain valid until they are closed.
type Destroyer interface {
	Destroy() error
}
