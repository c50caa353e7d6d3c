// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp

import (
	"golang.org/x/exp/slices"
)

// ID identifies a thread. IDs are assigned in creation order and are
// never reused by a [Runtime]. The zero ID means no thread.
type ID uint64

// none is the cursor value while no thread is scheduled.
const none = -1

// thread is one process table entry.
type thread struct {
	ctx   switcher
	id    ID
	words int
}

// Table holds the live threads in creation order along with the
// cursor naming the one currently executing. Schedulers get read-only
// access through the exported methods.
type Table struct {
	threads []*thread
	cursor  int
}

// Len returns the number of live threads.
func (t *Table) Len() int { return len(t.threads) }

// Cursor returns the index of the running thread, or -1 if none is.
func (t *Table) Cursor() int { return t.cursor }

// ID returns the identity of the thread at index i.
func (t *Table) ID(i int) ID { return t.threads[i].id }

func (t *Table) current() *thread { return t.threads[t.cursor] }

func (t *Table) push(th *thread) { t.threads = append(t.threads, th) }

// remove takes the entry at i out of the table, shifting every later
// entry down by one. A cursor pointing at i is left on the entry that
// took its place, wrapping to the front when i was the last index.
func (t *Table) remove(i int) *thread {
	th := t.threads[i]
	t.threads = slices.Delete(t.threads, i, i+1)
	switch {
	case t.cursor == none:
	case len(t.threads) == 0:
		t.cursor = none
	case i < t.cursor:
		t.cursor--
	case t.cursor >= len(t.threads):
		t.cursor = 0
	}
	return th
}
