// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/util"
)

// Packed - packed records are just a byte slice
type Packed []byte

// record version, packed as Varint64 ahead of the CBOR body
const (
	recordVersion = 1
)

// deterministic encoding so a record always packs to the same bytes
var encMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	m, err := opts.EncMode()
	if nil != err {
		panic(err)
	}
	encMode = m
}

// Pack - Varint64(version) ++ CBOR(asset)
func (a *Asset) Pack() (Packed, error) {
	if a.Id.IsZero() {
		return nil, fault.InvalidId
	}
	body, err := encMode.Marshal(a)
	if nil != err {
		return nil, err
	}
	packed := util.ToVarint64(recordVersion)
	return append(packed, body...), nil
}

// Unpack - turn a byte slice into an asset
func (record Packed) Unpack() (*Asset, error) {
	version, n := util.FromVarint64(record)
	if 0 == n || recordVersion != version {
		return nil, fault.NotAssetId
	}
	a := &Asset{}
	if err := cbor.Unmarshal(record[n:], a); nil != err {
		return nil, err
	}
	return a, nil
}
