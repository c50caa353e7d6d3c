// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Command lwpdemo runs a handful of lightweight processes that take
// turns printing, optionally stopping half way to show that the
// launcher can regain control and restart the schedule.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/0x5a17ed/lwp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lwpdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		threads = fs.Int("threads", 3, "number of threads to create")
		rounds  = fs.Int("rounds", 3, "rounds each thread runs before returning")
		words   = fs.Int("stack", lwp.DefaultStackWords, "stack size in machine words")
		stopAt  = fs.Int("stop-at", -1, "round in which the first thread stops the runtime (-1 never)")
		verbose = fs.Bool("v", false, "log thread lifecycle events")
		trace   = fs.Bool("vv", false, "log every context switch")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := logiface.LevelWarning
	switch {
	case *trace:
		level = logiface.LevelTrace
	case *verbose:
		level = logiface.LevelDebug
	}
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(stderr)),
		stumpy.L.WithLevel(level),
	).Logger()

	rt, err := lwp.New(lwp.WithLogger(logger), lwp.WithStackWords(*words))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer rt.Close()

	worker := func(arg any) {
		n := arg.(int)

		// Scratch memory that must survive every switch intact.
		scratch := make([]int, 100)
		for i := range scratch {
			scratch[i] = n*100 + i
		}

		for r := 0; r < *rounds; r++ {
			fmt.Fprintf(stdout, "lwp %d: round %d (scratch[%d]=%d)\n", rt.CurrentID(), r, r, scratch[r%len(scratch)])
			if n == 1 && r == *stopAt {
				rt.Stop()
			}
			rt.Yield()
		}
	}
	for i := 1; i <= *threads; i++ {
		if _, err := rt.Create(worker, i, 0); err != nil {
			logger.Err().Err(err).Int("thread", i).Log("create failed")
			return 1
		}
	}

	rt.Start()
	for rt.Len() > 0 {
		fmt.Fprintf(stdout, "launcher: stopped with %d threads, restarting\n", rt.Len())
		rt.Start()
	}

	s := rt.Stats()
	fmt.Fprintf(stdout, "launcher: %d created, %d exited, %d switches, %d sessions\n",
		s.Created, s.Exited, s.Switches, s.Sessions)
	return 0
}
