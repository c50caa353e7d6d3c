// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned by [Runtime.Create] when the process
// table is full. The caller may retry once another thread has exited.
var ErrCapacityExceeded = errors.New("lwp: process table at capacity")

// PanicError is raised in the launching context when a thread panics.
// The panicking thread has already been removed from the table.
type PanicError struct {
	Value any
	ID    ID
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("lwp: thread %d panicked: %v", e.ID, e.Value)
}

// Unwrap returns Value if it is an error, enabling [errors.Is] and
// [errors.As] against the original panic.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
