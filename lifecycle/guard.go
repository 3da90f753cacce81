// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"sync"

	"github.com/bitmark-inc/lineaged/fault"
)

// Guard - an in-progress flag for an entry point
type Guard struct {
	sync.Mutex
	active bool
}

// Enter - claim the guard, the returned function releases it
//
// fails with ReentrantCall while already claimed
func (g *Guard) Enter() (func(), error) {
	g.Lock()
	defer g.Unlock()

	if g.active {
		return nil, fault.ReentrantCall
	}
	g.active = true
	return g.leave, nil
}

func (g *Guard) leave() {
	g.Lock()
	g.active = false
	g.Unlock()
}

// Active - true while claimed
func (g *Guard) Active() bool {
	g.Lock()
	defer g.Unlock()
	return g.active
}
