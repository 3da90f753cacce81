// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/logger"
)

// Pools - the exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will fail
type Pools struct {
	Assets      *PoolHandle `prefix:"A"`
	Counters    *PoolHandle `prefix:"N"`
	Events      *PoolHandle `prefix:"E"`
	EventCounts *PoolHandle `prefix:"Q"`
	TestData    *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - an open database and its pools
type Database struct {
	sync.RWMutex
	db   *leveldb.DB
	trx  *transactionData
	Pool Pools
}

// Open - open up the database connection
//
// the database is created if missing unless readOnly is set
func Open(database string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - a database that only lives as long as the process
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	d := &Database{
		db:  db,
		trx: newTransaction(db, newStaging()),
	}

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: d,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true // prevent db close
	return d, nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()

	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// NewDBTransaction - begin the single write transaction
//
// fails if a transaction is already in use
func (d *Database) NewDBTransaction() (Transaction, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, fault.DatabaseIsNotSet
	}

	err := d.trx.Begin()
	if nil != err {
		return nil, err
	}
	return d.trx, nil
}

// return the database version, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
