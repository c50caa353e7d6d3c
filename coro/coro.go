// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"
	"fmt"
)

// ErrCanceled is wrapped by the panic value delivered into a coroutine
// that is stopped while suspended.
var ErrCanceled = errors.New("coroutine canceled")

type msg[T any] struct {
	panic any
	val   T
	ok    bool
}

// C is a coroutine receiving values of type I on every resume and
// handing values of type O back to the resumer.
//
// A C must only be driven from one goroutine at a time.
type C[I, O any] struct {
	cin  chan msg[I]
	cout chan msg[O]

	// running is only touched by whichever side currently holds
	// control, the channel exchanges order all accesses.
	running bool
}

// NewFn creates a new suspended coroutine running fn. The value
// returned by fn is handed to the Resume call observing completion.
func NewFn[I, O any](fn func(in I, yield func(O) I) O) *C[I, O] {
	return start(fn, true)
}

// NewSub creates a new suspended coroutine running the subroutine fn.
// The Resume call observing completion of fn reports false.
func NewSub[I, O any](fn func(in I, yield func(O) I)) *C[I, O] {
	return start(func(in I, yield func(O) I) (out O) {
		fn(in, yield)
		return
	}, false)
}

func start[I, O any](fn func(I, func(O) I) O, result bool) *C[I, O] {
	c := &C[I, O]{
		cin:     make(chan msg[I]),
		cout:    make(chan msg[O]),
		running: true,
	}
	go c.run(fn, result)
	return c
}

func (c *C[I, O]) run(fn func(I, func(O) I) O, result bool) {
	defer func() {
		if c.running {
			// fn panicked or called runtime.Goexit.
			c.running = false
			c.cout <- msg[O]{panic: recover()}
		}
	}()

	var out msg[O]
	if m := <-c.cin; m.panic == nil {
		out.val = fn(m.val, c.yield)
		out.ok = result
	}
	c.running = false
	c.cout <- out
}

func (c *C[I, O]) yield(out O) I {
	c.cout <- msg[O]{val: out, ok: true}
	m := <-c.cin
	if m.panic != nil {
		panic(m.panic)
	}
	return m.val
}

// Resume transfers control into the coroutine, passing in, and blocks
// until it yields or returns. ok is false once the coroutine is done.
//
// A panic raised inside the coroutine is re-raised by Resume.
func (c *C[I, O]) Resume(in I) (out O, ok bool) {
	if !c.running {
		return out, false
	}
	c.cin <- msg[I]{val: in}
	m := <-c.cout
	if m.panic != nil {
		panic(m.panic)
	}
	return m.val, m.ok
}

// Stop cancels the coroutine if it has not finished yet, unwinding
// its stack. Calling Stop more than once is allowed.
func (c *C[I, O]) Stop() {
	if !c.running {
		return
	}
	e := fmt.Errorf("%w", ErrCanceled)
	c.cin <- msg[I]{panic: e}
	m := <-c.cout
	if m.panic != nil && m.panic != e {
		panic(m.panic)
	}
}

// Done reports whether the coroutine has finished, either by
// returning, panicking or being stopped.
func (c *C[I, O]) Done() bool { return !c.running }
