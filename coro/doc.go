// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package coro provides an implementation of coroutines built on
// top of Go's goroutines for the execution, suspension and resuming
// of generalized subroutines and functions for cooperative multitasking.
//
// Exactly one side of a coroutine runs at any instant: Resume blocks
// the caller until the coroutine yields or finishes, and yield blocks
// the coroutine until it is resumed again. The lwp package uses this
// hand-off as its context-switch primitive.
//
// A stopped coroutine is unwound by panicking out of its pending yield
// with an error wrapping [ErrCanceled]. Code running inside a coroutine
// must not swallow that panic.
//
// Based on the wonderful [blog post] shared by Rus Cox.
//
// [blog post]: https://research.swtch.com/coro
package coro
