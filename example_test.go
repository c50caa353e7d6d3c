// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp_test

import (
	"fmt"

	"github.com/0x5a17ed/lwp"
)

func Example() {
	rt, err := lwp.New()
	if err != nil {
		panic(err)
	}

	for _, name := range []string{"ping", "pong"} {
		if _, err := rt.Create(func(arg any) {
			for i := 0; i < 2; i++ {
				fmt.Println(arg, rt.CurrentID())
				rt.Yield()
			}
		}, name, 0); err != nil {
			panic(err)
		}
	}

	rt.Start()
	fmt.Println("threads left:", rt.Len())

	//output:
	//ping 1
	//pong 2
	//ping 1
	//pong 2
	//threads left: 0
}

func ExampleRuntime_Stop() {
	rt, err := lwp.New()
	if err != nil {
		panic(err)
	}
	defer rt.Close()

	if _, err := rt.Create(func(any) {
		fmt.Println("working")
		rt.Stop()
		fmt.Println("resumed")
	}, nil, 0); err != nil {
		panic(err)
	}

	rt.Start()
	fmt.Println("back in launcher, threads:", rt.Len())
	rt.Start()
	fmt.Println("done, threads:", rt.Len())

	//output:
	//working
	//back in launcher, threads: 1
	//resumed
	//done, threads: 0
}
