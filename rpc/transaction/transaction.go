// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/constants"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/lineaged/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitTransaction = 200
	rateBurstTransaction = 100
)

// Submitter - the router entry points
type Submitter interface {
	Submit(request router.Request) ([]asset.Identifier, error)
	SubmitBatch(requests []router.Request) ([][]asset.Identifier, error)
}

// Transaction - an RPC entry for submitting requests
//
// the router accepts one request at a time, so network callers are
// queued on a mutex
type Transaction struct {
	sync.Mutex
	Log       *logger.L
	Limiter   *rate.Limiter
	submitter Submitter
}

// New - create the transaction service
func New(log *logger.L, submitter Submitter) *Transaction {
	return &Transaction{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitTransaction, rateBurstTransaction),
		submitter: submitter,
	}
}

// SubmitReply - the ids of all affected assets, new assets first
type SubmitReply struct {
	AssetIds []asset.Identifier `json:"assetIds"`
}

// Submit - apply one request
func (t *Transaction) Submit(arguments *router.Request, reply *SubmitReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.EmptyRequest
	}

	t.Log.Infof("submit: %s  process: %q  by: %q", arguments.Namespace, arguments.ProcessId, arguments.Caller)

	t.Lock()
	ids, err := t.submitter.Submit(*arguments)
	t.Unlock()
	if nil != err {
		return err
	}

	reply.AssetIds = ids
	return nil
}

// BatchArguments - requests applied together
type BatchArguments struct {
	Requests []router.Request `json:"requests"`
}

// BatchReply - the affected ids of each request in order
type BatchReply struct {
	AssetIds [][]asset.Identifier `json:"assetIds"`
}

// SubmitBatch - apply several requests as one unit
func (t *Transaction) SubmitBatch(arguments *BatchArguments, reply *BatchReply) error {
	if nil == arguments {
		return fault.EmptyRequest
	}
	if err := ratelimit.LimitN(t.Limiter, len(arguments.Requests), constants.MaximumBatchSize); nil != err {
		return err
	}

	t.Log.Infof("submit batch: %d requests", len(arguments.Requests))

	t.Lock()
	ids, err := t.submitter.SubmitBatch(arguments.Requests)
	t.Unlock()
	if nil != err {
		return err
	}

	reply.AssetIds = ids
	return nil
}
