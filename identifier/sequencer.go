// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"math"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/storage"
)

// Sequencer - a strictly increasing count per namespace
type Sequencer interface {
	Next(ns asset.Namespace) (uint64, error)
}

// MemorySequencer - counts held only in memory
type MemorySequencer struct {
	counters *counter.Set
}

// NewMemorySequencer - all namespaces start from zero
func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{
		counters: counter.NewSet(),
	}
}

// Next - the next count for a namespace, the first is 1
func (m *MemorySequencer) Next(ns asset.Namespace) (uint64, error) {
	return m.counters.Increment(string(ns)), nil
}

// PoolSequencer - counts kept in a storage pool
//
// the updated count is staged in the transaction so it is committed
// together with the asset that used it, or not at all
type PoolSequencer struct {
	trx  storage.Transaction
	pool storage.Handle
}

// NewPoolSequencer - counts stored in pool through trx
func NewPoolSequencer(trx storage.Transaction, pool storage.Handle) *PoolSequencer {
	return &PoolSequencer{
		trx:  trx,
		pool: pool,
	}
}

// Next - the next count for a namespace, the first is 1
func (p *PoolSequencer) Next(ns asset.Namespace) (uint64, error) {
	key := asset.NamespaceKey(ns)
	count, _ := p.trx.GetN(p.pool, key)
	if math.MaxUint64 == count {
		return 0, fault.Detail(fault.AmountOverflow, "sequence for namespace: %q", ns)
	}
	count += 1
	p.trx.PutN(p.pool, key, count)
	return count, nil
}
