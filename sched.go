// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp

// Scheduler picks the table index to resume whenever a thread yields.
//
// Next is called on the launching goroutine with the cursor still on
// the yielding thread. The returned index is trusted: it must be in
// [0, t.Len()).
type Scheduler interface {
	Next(t *Table) int
}

// SchedulerFunc adapts a function to [Scheduler].
type SchedulerFunc func(t *Table) int

// Next calls f(t).
func (f SchedulerFunc) Next(t *Table) int { return f(t) }

// RoundRobin resumes threads in creation order, wrapping after the
// last one. It is the default policy.
var RoundRobin Scheduler = roundRobin{}

type roundRobin struct{}

func (roundRobin) Next(t *Table) int {
	return (t.cursor + 1) % len(t.threads)
}
