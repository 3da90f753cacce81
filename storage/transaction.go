// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/lineaged/fault"
)

// Transaction - all-or-nothing set of writes
//
// reads through a transaction see its own staged writes
type Transaction interface {
	Begin() error
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	Has(Handle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

type transactionData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch   *leveldb.Batch
	staging Staging
}

func newTransaction(db *leveldb.DB, staging Staging) *transactionData {
	return &transactionData{
		inUse:   false,
		db:      db,
		batch:   new(leveldb.Batch),
		staging: staging,
	}
}

func (t *transactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionInUse
	}

	t.inUse = true
	return nil
}

func (t *transactionData) Put(handle Handle, key []byte, value []byte) {
	k := handle.prefixKey(key)
	t.staging.Set(string(k), value)
	t.batch.Put(k, value)
}

func (t *transactionData) PutN(handle Handle, key []byte, value uint64) {
	t.Put(handle, key, encodeN(value))
}

func (t *transactionData) Get(handle Handle, key []byte) []byte {
	if value, found := t.staging.Get(string(handle.prefixKey(key))); found {
		return value
	}
	return handle.Get(key)
}

func (t *transactionData) GetN(handle Handle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(handle, key))
}

func (t *transactionData) Has(handle Handle, key []byte) bool {
	if _, found := t.staging.Get(string(handle.prefixKey(key))); found {
		return true
	}
	return handle.Has(key)
}

// Commit - write all staged data and release the transaction
//
// a transaction with nothing staged does not touch the database
func (t *transactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	if 0 == t.staging.Count() {
		t.reset()
		return nil
	}

	err := t.db.Write(t.batch, nil)
	t.reset()
	return err
}

// Abort - discard all staged data and release the transaction
func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.reset()
}

func (t *transactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()

	return t.inUse
}

func (t *transactionData) reset() {
	t.batch.Reset()
	t.staging.Clear()
	t.inUse = false
}
