// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/storage"
	"github.com/bitmark-inc/lineaged/util"
	"github.com/bitmark-inc/logger"
)

// NamespaceKey - Varint64(length) ++ namespace
//
// the length prefix keeps one namespace from being a key prefix of another
func NamespaceKey(ns Namespace) []byte {
	return util.AppendString(nil, string(ns))
}

// Key - the pool key of an asset
func Key(ns Namespace, id Identifier) []byte {
	return append(NamespaceKey(ns), id[:]...)
}

// Store - keyed access to assets inside a transaction
//
// reads see writes already staged in the same transaction
type Store struct {
	trx  storage.Transaction
	pool storage.Handle
}

// NewStore - an asset store over a transaction and the assets pool
func NewStore(trx storage.Transaction, pool storage.Handle) *Store {
	return &Store{
		trx:  trx,
		pool: pool,
	}
}

// Get - fetch an asset
func (s *Store) Get(ns Namespace, id Identifier) (*Asset, error) {
	return unpackOrNotFound(id, s.trx.Get(s.pool, Key(ns, id)))
}

// Exists - check if an asset was ever created
func (s *Store) Exists(ns Namespace, id Identifier) bool {
	return s.trx.Has(s.pool, Key(ns, id))
}

// Put - create or overwrite an asset
func (s *Store) Put(ns Namespace, id Identifier, a *Asset) error {
	if id != a.Id {
		return fault.Detail(fault.InvalidId, "key: %s  record: %s", id, a.Id)
	}
	packed, err := a.Pack()
	if nil != err {
		return err
	}
	s.trx.Put(s.pool, Key(ns, id), packed)
	return nil
}

// Get - fetch a committed asset outside of any transaction
func Get(pool storage.Handle, ns Namespace, id Identifier) (*Asset, error) {
	return unpackOrNotFound(id, pool.Get(Key(ns, id)))
}

// Exists - check for a committed asset outside of any transaction
func Exists(pool storage.Handle, ns Namespace, id Identifier) bool {
	return pool.Has(Key(ns, id))
}

func unpackOrNotFound(id Identifier, packed []byte) (*Asset, error) {
	if nil == packed {
		return nil, fault.Detail(fault.AssetNotFound, "id: %s", id)
	}
	a, err := Packed(packed).Unpack()
	if nil != err {
		logger.Criticalf("asset: corrupt record for: %s  error: %s", id, err)
		return nil, err
	}
	return a, nil
}
