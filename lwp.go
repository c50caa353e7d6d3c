// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp

import (
	"fmt"

	"github.com/joeycumines/logiface"
)

// Func is the entry point of a thread. Returning from it terminates
// the thread as if it had called [Runtime.Exit].
type Func func(arg any)

// ThreadInfo describes a live thread.
type ThreadInfo struct {
	ID         ID
	StackWords int
	StackBytes int
}

// Stats counts what a [Runtime] has done so far.
type Stats struct {
	Live     int
	Created  uint64
	Exited   uint64
	Switches uint64
	Sessions uint64
}

// Runtime multiplexes threads onto the goroutine calling [Runtime.Start].
//
// A Runtime is not safe for concurrent use. Its methods are called
// either from the launching goroutine (Create, Start, Close, and the
// accessors while not multiplexing) or from inside the running thread.
// Calling Yield, Exit or Stop outside a running thread is undefined.
type Runtime struct {
	policy   Scheduler
	logger   *logiface.Logger[logiface.Event]
	table    Table
	capacity int
	words    int
	lastID   ID
	stats    Stats
}

// New returns an empty runtime.
func New(opts ...Option) (*Runtime, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		policy:   cfg.scheduler,
		logger:   cfg.logger,
		table:    Table{cursor: none},
		capacity: cfg.capacity,
		words:    cfg.stackWords,
	}, nil
}

// Create adds a thread running fn(arg) to the end of the table and
// returns its ID. The thread does not run until the scheduler reaches
// it. A non-positive stackWords selects the runtime default.
//
// Create fails with [ErrCapacityExceeded] when the table is full.
func (r *Runtime) Create(fn Func, arg any, stackWords int) (ID, error) {
	if r.table.Len() >= r.capacity {
		err := fmt.Errorf("%w (limit %d)", ErrCapacityExceeded, r.capacity)
		r.logger.Warning().Err(err).Log("create rejected")
		return 0, err
	}
	if stackWords <= 0 {
		stackWords = r.words
	}

	r.lastID++
	th := &thread{ctx: bootstrap(fn, arg), id: r.lastID, words: stackWords}
	r.table.push(th)
	r.stats.Created++

	r.logger.Debug().
		Uint64("lwp", uint64(th.id)).
		Int("stack_words", th.words).
		Int("stack_bytes", th.words*WordSize).
		Log("thread created")
	return th.id, nil
}

// CurrentID returns the ID of the running thread, or zero when no
// thread is scheduled.
func (r *Runtime) CurrentID() ID {
	if r.table.cursor == none {
		return 0
	}
	return r.table.current().id
}

// SetScheduler replaces the scheduling policy, effective from the next
// yield. A nil scheduler restores [RoundRobin].
func (r *Runtime) SetScheduler(s Scheduler) {
	if s == nil {
		s = RoundRobin
	}
	r.policy = s
}

// Yield suspends the calling thread and resumes the one chosen by the
// scheduler. It returns when the caller is scheduled again.
func (r *Runtime) Yield() {
	r.table.current().ctx.save(requestYield)
}

// Exit terminates the calling thread and never returns. Its stack is
// unwound, so deferred calls run, and control passes to the thread
// that takes its place in the table, or back to the launcher if none
// remain.
//
// Deferred calls run while the thread is still current, so CurrentID
// reports its own ID, but they must not Yield, Stop or Exit. A panic
// raised by one of them is re-raised by [Runtime.Start] as a
// [*PanicError].
func (r *Runtime) Exit() {
	r.table.current().ctx.save(requestExit)
	panic("lwp: exited thread resumed")
}

// Stop suspends the calling thread and returns control to the launcher,
// whose call to [Runtime.Start] returns. The thread stays in the table
// and continues after Stop when it is next scheduled.
func (r *Runtime) Stop() {
	r.table.current().ctx.save(requestStop)
}

// Start runs the threads, beginning with the first in the table, until
// one of them calls Stop or all of them have exited. It returns
// immediately if the table is empty.
//
// Every call starts at index 0, including after a Stop: the thread
// that stopped is resumed only once the scheduler reaches it again.
//
// A panic inside a thread removes it from the table and is re-raised
// by Start as a [*PanicError].
func (r *Runtime) Start() {
	if r.table.Len() == 0 {
		return
	}
	r.stats.Sessions++
	r.logger.Debug().
		Int("threads", r.table.Len()).
		Uint64("session", r.stats.Sessions).
		Log("multiplexing started")

	r.table.cursor = 0
	for {
		th := r.table.current()
		switch r.switchTo(th) {
		case requestYield:
			r.table.cursor = r.policy.Next(&r.table)

		case requestStop:
			r.table.cursor = none
			r.logger.Debug().Uint64("lwp", uint64(th.id)).Log("multiplexing stopped")
			return

		case requestExit:
			if err := r.reap(r.table.cursor, "thread exited"); err != nil {
				r.table.cursor = none
				panic(err)
			}
			if r.table.Len() == 0 {
				r.logger.Debug().Log("multiplexing drained")
				return
			}
		}
	}
}

// switchTo restores th and waits for it to give control back.
func (r *Runtime) switchTo(th *thread) (req request) {
	defer func() {
		if v := recover(); v != nil {
			r.table.remove(r.table.cursor)
			r.table.cursor = none
			th.ctx.release()
			r.stats.Exited++
			err := &PanicError{Value: v, ID: th.id}
			r.logger.Err().Err(err).Uint64("lwp", uint64(th.id)).Log("thread panicked")
			panic(err)
		}
	}()

	r.stats.Switches++
	r.logger.Trace().Uint64("lwp", uint64(th.id)).Log("switch")

	req, ok := th.ctx.restore()
	if !ok {
		// The entry function returned.
		return requestExit
	}
	if b := r.logger.Trace(); b.Enabled() {
		b.Uint64("lwp", uint64(th.id)).Stringer("request", req).Log("suspended")
	}
	return req
}

// reap releases the stack of the entry at i, then removes the entry.
// The entry is current while its stack unwinds, and nothing reaches
// the stack once it is gone. A panic escaping the unwind is returned.
func (r *Runtime) reap(i int, msg string) (perr *PanicError) {
	th := r.table.threads[i]
	cursor := r.table.cursor
	r.table.cursor = i

	defer func() {
		v := recover()
		r.table.cursor = cursor
		r.table.remove(i)
		r.stats.Exited++
		if v == nil {
			r.logger.Debug().Uint64("lwp", uint64(th.id)).Log(msg)
			return
		}
		perr = &PanicError{Value: v, ID: th.id}
		r.logger.Err().Err(perr).Uint64("lwp", uint64(th.id)).Log("thread panicked while unwinding")
	}()

	th.ctx.release()
	return nil
}

// Close releases every remaining thread in table order. Threads that
// were stopped part way through are unwound, running their deferred
// calls with their own ID current. Close must be called from the
// launcher while not multiplexing.
//
// Every thread is released even if unwinding one of them panics; the
// first such panic is then re-raised as a [*PanicError].
func (r *Runtime) Close() {
	var first *PanicError
	for r.table.Len() > 0 {
		if err := r.reap(0, "thread released"); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		panic(first)
	}
}

// Len returns the number of live threads.
func (r *Runtime) Len() int { return r.table.Len() }

// Threads lists the live threads in table order.
func (r *Runtime) Threads() []ThreadInfo {
	infos := make([]ThreadInfo, 0, r.table.Len())
	for _, th := range r.table.threads {
		infos = append(infos, ThreadInfo{
			ID:         th.id,
			StackWords: th.words,
			StackBytes: th.words * WordSize,
		})
	}
	return infos
}

// Stats returns a snapshot of the runtime counters.
func (r *Runtime) Stats() Stats {
	s := r.stats
	s.Live = r.table.Len()
	return s
}
