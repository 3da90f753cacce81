// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"math/big"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/lineaged/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Within - restrict the cursor to keys beginning with keyPrefix
func (cursor *FetchCursor) Within(keyPrefix []byte) *FetchCursor {
	r := util.BytesPrefix(cursor.pool.prefixKey(keyPrefix))
	cursor.maxRange.Start = r.Start
	cursor.maxRange.Limit = r.Limit
	return cursor
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// to increment the key
var one = big.NewInt(1)

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	db := cursor.pool.database
	db.RLock()
	defer db.RUnlock()

	if nil == db.db {
		return nil, fault.DatabaseIsNotSet
	}

	iter := db.db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
	n := 0
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})
		n += 1
		if n >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	// next fetch starts just past the last key returned
	if n > 0 {
		last := results[n-1].Key
		b := big.Int{}
		next := b.SetBytes(last).Add(&b, one).Bytes()
		start := make([]byte, len(last)+1)
		start[0] = cursor.pool.prefix
		if len(next) > len(last) {
			// carried out of the key, nothing can follow
			start = append([]byte{}, cursor.maxRange.Limit...)
		} else {
			copy(start[1+len(last)-len(next):], next)
		}
		cursor.maxRange.Start = start
	}
	return results, err
}
