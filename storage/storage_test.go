// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

func setupMemory(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")
	return db
}

func TestTransactionCommit(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	pool := db.Pool.TestData

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")

	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.PutN(pool, []byte("key-two"), 1234)

	assert.Equal(t, []byte("data-one"), trx.Get(pool, []byte("key-one")), "staged value not visible to transaction")
	assert.True(t, trx.Has(pool, []byte("key-two")), "staged key not visible to transaction")
	assert.Nil(t, pool.Get([]byte("key-one")), "staged value visible before commit")

	require.NoError(t, trx.Commit(), "commit")
	assert.False(t, trx.InUse(), "transaction still in use after commit")

	assert.Equal(t, []byte("data-one"), pool.Get([]byte("key-one")), "committed value")
	n, found := pool.GetN([]byte("key-two"))
	assert.True(t, found, "committed count not found")
	assert.Equal(t, uint64(1234), n, "committed count")
}

func TestTransactionAbort(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	pool := db.Pool.TestData

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")

	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.Abort()

	assert.False(t, pool.Has([]byte("key-one")), "aborted value reached database")

	trx, err = db.NewDBTransaction()
	require.NoError(t, err, "begin after abort")
	assert.Nil(t, trx.Get(pool, []byte("key-one")), "aborted value still staged")
	trx.Abort()
}

func TestSingleTransaction(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "first begin")
	defer trx.Abort()

	_, err = db.NewDBTransaction()
	assert.Equal(t, fault.TransactionInUse, err, "second begin")
}

func TestPoolsAreSeparate(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")
	trx.Put(db.Pool.Assets, []byte("k"), []byte("asset"))
	trx.Put(db.Pool.Events, []byte("k"), []byte("event"))
	require.NoError(t, trx.Commit(), "commit")

	assert.Equal(t, []byte("asset"), db.Pool.Assets.Get([]byte("k")), "assets pool")
	assert.Equal(t, []byte("event"), db.Pool.Events.Get([]byte("k")), "events pool")
	assert.False(t, db.Pool.Counters.Has([]byte("k")), "counters pool")
}

func TestFetchCursor(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	pool := db.Pool.TestData

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")
	for _, k := range []string{"a1", "a2", "a3", "a4", "b1", "b2"} {
		trx.Put(pool, []byte(k), []byte("v-"+k))
	}
	require.NoError(t, trx.Commit(), "commit")

	cursor := pool.NewFetchCursor().Within([]byte("a"))

	first, err := cursor.Fetch(3)
	require.NoError(t, err, "first fetch")
	require.Len(t, first, 3, "first fetch count")
	assert.Equal(t, []byte("a1"), first[0].Key, "first key")
	assert.Equal(t, []byte("v-a3"), first[2].Value, "third value")

	second, err := cursor.Fetch(3)
	require.NoError(t, err, "second fetch")
	require.Len(t, second, 1, "second fetch stays within prefix")
	assert.Equal(t, []byte("a4"), second[0].Key, "fourth key")

	all, err := pool.NewFetchCursor().Fetch(100)
	require.NoError(t, err, "whole pool")
	assert.Len(t, all, 6, "whole pool count")

	seek, err := pool.NewFetchCursor().Seek([]byte("b")).Fetch(100)
	require.NoError(t, err, "seek")
	require.Len(t, seek, 2, "from seek key")
	assert.Equal(t, []byte("b1"), seek[0].Key, "first after seek")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
}

func TestEmptyCommit(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")
	assert.True(t, trx.InUse(), "in use")

	require.NoError(t, trx.Commit(), "empty commit")
	assert.False(t, trx.InUse(), "released")
}

func TestReopenKeepsData(t *testing.T) {
	os.RemoveAll(databaseFileName)
	defer os.RemoveAll(databaseFileName)

	db, err := storage.Open(databaseFileName, storage.ReadWrite)
	require.NoError(t, err, "open")

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")
	trx.Put(db.Pool.TestData, []byte("persist"), []byte("yes"))
	require.NoError(t, trx.Commit(), "commit")
	db.Close()

	db, err = storage.Open(databaseFileName, storage.ReadOnly)
	require.NoError(t, err, "reopen")
	defer db.Close()

	assert.Equal(t, []byte("yes"), db.Pool.TestData.Get([]byte("persist")), "value after reopen")
}
