// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/lineaged/fault"
)

// limits
const (
	IdentifierLength = 32
)

// Identifier - the type for an asset identifier
// represented as hex text for JSON encoding
// to get bytes value just use id[:]
type Identifier [IdentifierLength]byte

// IsZero - the zero identifier never names an asset
func (id Identifier) IsZero() bool {
	return Identifier{} == id
}

// String - convert a binary id to hex string for use by the fmt package (for %s)
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// GoString - convert a binary id to hex string for use by the fmt package (for %#v)
func (id Identifier) GoString() string {
	return "<asset:" + hex.EncodeToString(id[:]) + ">"
}

// Scan - convert a hex text representation to an id for use by the format package scan routines
func (id *Identifier) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return id.UnmarshalText(token)
}

// MarshalText - convert id to hex text
func (id Identifier) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an id
func (id *Identifier) UnmarshalText(s []byte) error {
	if len(id) != hex.DecodedLen(len(s)) {
		return fault.NotAssetId
	}
	byteCount, err := hex.Decode(id[:], s)
	if nil != err {
		return err
	}
	if IdentifierLength != byteCount {
		return fault.NotAssetId
	}
	return nil
}

// IdentifierFromString - parse the hex text form
func IdentifierFromString(s string) (Identifier, error) {
	id := Identifier{}
	err := id.UnmarshalText([]byte(s))
	return id, err
}

// IdentifierFromBytes - convert and validate a binary byte slice
func IdentifierFromBytes(id *Identifier, buffer []byte) error {
	if IdentifierLength != len(buffer) {
		return fault.NotAssetId
	}
	copy(id[:], buffer)
	return nil
}

// IdentifierFromName - a readable identifier, the name is copied into
// the leading bytes and must fit
func IdentifierFromName(name string) (Identifier, error) {
	id := Identifier{}
	if 0 == len(name) || len(name) > IdentifierLength {
		return id, fault.InvalidId
	}
	copy(id[:], name)
	return id, nil
}
