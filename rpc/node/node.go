// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Controller - administrative control of the router
type Controller interface {
	Pause()
	Resume()
	IsPaused() bool
}

// Node - type for RPC calls
type Node struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Start      time.Time
	Version    string
	controller Controller
	counter    *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, controller Controller) *Node {
	return &Node{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:      start,
		Version:    version,
		controller: controller,
		counter:    counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode    string `json:"mode"`
	RPCs    uint64 `json:"rpcs"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Mode = "normal"
	if node.controller.IsPaused() {
		reply.Mode = "paused"
	}
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// ModeReply - the router state after a change
type ModeReply struct {
	Paused bool `json:"paused"`
}

// Pause - stop accepting submissions
func (node *Node) Pause(_ *InfoArguments, reply *ModeReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	node.Log.Warn("pause requested")
	node.controller.Pause()
	reply.Paused = node.controller.IsPaused()
	return nil
}

// Resume - accept submissions again
func (node *Node) Resume(_ *InfoArguments, reply *ModeReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	node.Log.Warn("resume requested")
	node.controller.Resume()
	reply.Paused = node.controller.IsPaused()
	return nil
}
