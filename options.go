// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package lwp

import (
	"fmt"

	"github.com/joeycumines/logiface"
)

const (
	// DefaultCapacity is the process table size used unless
	// [WithCapacity] says otherwise.
	DefaultCapacity = 30

	// DefaultStackWords is the stack size, in machine words, given to
	// threads created with a non-positive word count.
	DefaultStackWords = 2048
)

type runtimeOptions struct {
	scheduler  Scheduler
	logger     *logiface.Logger[logiface.Event]
	capacity   int
	stackWords int
}

// Option configures a [Runtime].
type Option interface {
	applyRuntime(*runtimeOptions) error
}

type optionImpl struct {
	applyRuntimeFunc func(*runtimeOptions) error
}

func (o *optionImpl) applyRuntime(opts *runtimeOptions) error {
	return o.applyRuntimeFunc(opts)
}

// WithCapacity bounds the number of live threads.
func WithCapacity(n int) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if n < 1 {
			return fmt.Errorf("lwp: capacity must be positive, got %d", n)
		}
		opts.capacity = n
		return nil
	}}
}

// WithStackWords sets the default stack size, in machine words.
func WithStackWords(n int) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if n < 1 {
			return fmt.Errorf("lwp: stack words must be positive, got %d", n)
		}
		opts.stackWords = n
		return nil
	}}
}

// WithScheduler installs the initial scheduling policy. A nil
// scheduler selects [RoundRobin].
func WithScheduler(s Scheduler) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.scheduler = s
		return nil
	}}
}

// WithLogger attaches a structured logger. Thread lifecycle events are
// logged at debug level, every context switch at trace level.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.logger = logger
		return nil
	}}
}

func resolveOptions(opts []Option) (*runtimeOptions, error) {
	cfg := &runtimeOptions{
		capacity:   DefaultCapacity,
		stackWords: DefaultStackWords,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.scheduler == nil {
		cfg.scheduler = RoundRobin
	}
	return cfg, nil
}
