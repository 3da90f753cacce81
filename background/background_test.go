// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lineaged/background"
)

// counts until shutdown, then records the args it was started with
type ticker struct {
	ticks   int64
	args    interface{}
	stopped int32
}

func (p *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	p.args = args
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&p.ticks, 1)
		}
	}
	atomic.StoreInt32(&p.stopped, 1)
}

func TestStartStop(t *testing.T) {
	first := &ticker{}
	second := &ticker{}

	p := background.Start(background.Processes{first, second}, "shared")
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	for i, proc := range []*ticker{first, second} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&proc.stopped), "process %d stopped", i)
		assert.Greater(t, atomic.LoadInt64(&proc.ticks), int64(0), "process %d ran", i)
		assert.Equal(t, "shared", proc.args, "process %d args", i)
	}

	// nothing runs after Stop returns
	ticks := atomic.LoadInt64(&first.ticks)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, ticks, atomic.LoadInt64(&first.ticks), "no ticks after stop")
}

func TestStopTwice(t *testing.T) {
	proc := &ticker{}
	p := background.Start(background.Processes{proc}, nil)
	p.Stop()
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&proc.stopped), "process saw shutdown")
}

func TestStartNothing(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
