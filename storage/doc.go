// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. ns           = Varint64(length) ++ namespace bytes
// 4. assetId      = 32 byte asset identifier
// 5. count        = successive index value as big endian uint64 (8 bytes)
//
// Assets:
//
//   A ++ ns ++ assetId        - asset record
//                               data: packed asset (CBOR)
//
// Counters:
//
//   N ++ ns                   - last identifier sequence number issued in a namespace
//                               data: count
//
// Lineage:
//
//   E ++ ns ++ count          - append only event journal
//                               data: packed event record
//   Q ++ ns                   - last event sequence number in a namespace
//                               data: count
//
// Testing:
//   Z ++ key                  - testing data
//
// All writes go through a Transaction which stages them in a
// leveldb.Batch and only reaches the database on Commit, so a failed
// operation leaves nothing behind.  Assets are never deleted so no
// delete operation is offered.
package storage
