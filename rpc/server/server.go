// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/lifecycle"
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/lineaged/rpc/assets"
	"github.com/bitmark-inc/lineaged/rpc/events"
	"github.com/bitmark-inc/lineaged/rpc/node"
	"github.com/bitmark-inc/lineaged/rpc/transaction"
	"github.com/bitmark-inc/logger"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, engine *lifecycle.Engine, r *router.Router) (*rpc.Server, error) {
	start := time.Now().UTC()

	server := rpc.NewServer()

	services := []interface{}{
		assets.New(log, engine),
		events.New(log, engine.Journal()),
		node.New(log, start, version, rpcCount, r),
		transaction.New(log, r),
	}
	for _, s := range services {
		if err := server.Register(s); nil != err {
			log.Criticalf("register service error: %s", err)
			return nil, err
		}
	}
	return server, nil
}
