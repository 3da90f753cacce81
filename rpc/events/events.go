// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitEvents = 200
	rateBurstEvents = 1000

	// limit for count
	maximumEventList = 100
)

// Journal - read access to the persisted event stream
type Journal interface {
	Fetch(ns asset.Namespace, start uint64, count int) ([]lineage.Record, uint64, error)
	Count(ns asset.Namespace) uint64
}

// Events - an RPC entry for reading the lineage journal
type Events struct {
	Log     *logger.L
	Limiter *rate.Limiter
	journal Journal
}

// New - create the events service
func New(log *logger.L, journal Journal) *Events {
	return &Events{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitEvents, rateBurstEvents),
		journal: journal,
	}
}

// ListArguments - a page of one namespace's journal
type ListArguments struct {
	Namespace asset.Namespace `json:"namespace"`
	Start     uint64          `json:"start,string"`
	Count     int             `json:"count"`
}

// ListReply - records in sequence order and the cursor for the next
// page
type ListReply struct {
	Events    []lineage.Record `json:"events"`
	NextStart uint64           `json:"nextStart,string"`
	Total     uint64           `json:"total,string"`
}

// List - read events starting at a sequence number
func (e *Events) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.LimitN(e.Limiter, arguments.Count, maximumEventList); nil != err {
		return err
	}

	records, next, err := e.journal.Fetch(arguments.Namespace, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Events = records
	reply.NextStart = next
	reply.Total = e.journal.Count(arguments.Namespace)
	return nil
}
