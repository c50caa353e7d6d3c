// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp

import (
	"math/bits"

	"github.com/0x5a17ed/lwp/coro"
)

// WordSize is the width in bytes of a machine word on the build target.
const WordSize = bits.UintSize / 8

// request tells the launcher why a thread gave up control.
type request uint8

const (
	requestYield request = iota
	requestStop
	requestExit
)

func (r request) String() string {
	switch r {
	case requestYield:
		return "yield"
	case requestStop:
		return "stop"
	case requestExit:
		return "exit"
	default:
		return "unknown"
	}
}

// switcher is the context-switch primitive backing a thread.
//
// save runs on the thread itself: it suspends the caller, reporting
// why, and returns once the thread is restored. restore and release
// run on the launcher. restore hands control to the thread until it
// saves again, reporting false when the thread's entry function has
// returned. release discards the context, unwinding a suspended
// thread; it is a no-op the second time.
type switcher interface {
	save(req request)
	restore() (request, bool)
	release()
}

// stack is a switcher on top of a coroutine: the coroutine's goroutine
// is the thread's stack.
type stack struct {
	co      *coro.C[struct{}, request]
	suspend func(request) struct{}
}

// bootstrap builds the initial context of a thread. The first restore
// enters the frame, which captures the save handle and calls fn(arg).
// When fn returns the frame returns too, and the launcher takes the
// completed coroutine as an exit.
func bootstrap(fn Func, arg any) *stack {
	s := new(stack)
	s.co = coro.NewSub(func(_ struct{}, yield func(request) struct{}) {
		s.suspend = yield
		fn(arg)
	})
	return s
}

func (s *stack) save(req request) { s.suspend(req) }

func (s *stack) restore() (request, bool) { return s.co.Resume(struct{}{}) }

func (s *stack) release() {
	co := s.co
	if co == nil {
		return
	}
	// Clearing suspend first makes a switch attempted while unwinding
	// panic instead of handing control to another thread.
	s.co, s.suspend = nil, nil
	co.Stop()
}
