// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync"
	"sync/atomic"
)

// Counter - type to denote a counter that can be synchronously increments or decremented
// just a 64 bit unsigned integer
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return ic.Uint64() == 0
}

// Set - independent counters selected by a name, e.g. one per namespace
//
// a counter is created at zero the first time its name is used
type Set struct {
	sync.Mutex
	counters map[string]*Counter
}

// NewSet - an empty set of counters
func NewSet() *Set {
	return &Set{
		counters: make(map[string]*Counter),
	}
}

// Get - the counter for a name
func (s *Set) Get(name string) *Counter {
	s.Lock()
	defer s.Unlock()

	c, ok := s.counters[name]
	if !ok {
		c = new(Counter)
		s.counters[name] = c
	}
	return c
}

// Increment - add 1 to the named counter, returns new value
func (s *Set) Increment(name string) uint64 {
	return s.Get(name).Increment()
}
