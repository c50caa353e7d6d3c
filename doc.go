// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package lwp implements cooperative lightweight processes: any number
// of independently stacked threads of execution multiplexed onto the
// single goroutine that calls [Runtime.Start].
//
// Threads switch only at explicit points. [Runtime.Yield] hands control
// to the thread picked by the installed [Scheduler] (round-robin by
// default), [Runtime.Exit] or returning from the entry function ends the
// thread, and [Runtime.Stop] returns control to the launcher, whose
// call to Start then returns. Exactly one thread runs at any instant,
// so thread code needs no locking to share state with other threads of
// the same runtime.
//
//	rt, _ := lwp.New()
//	for i := 0; i < 3; i++ {
//		rt.Create(func(arg any) {
//			for n := 0; n < 2; n++ {
//				fmt.Println(arg, rt.CurrentID())
//				rt.Yield()
//			}
//		}, i, 0)
//	}
//	rt.Start() // returns once every thread has finished
//
// Each thread runs on a suspended coroutine from package
// [github.com/0x5a17ed/lwp/coro]; the coroutine's goroutine stack is
// the thread's stack.
package lwp
