// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/lineage"
)

// Update - change an asset in place
//
// location is always replaced, an absent amount is left unchanged and
// a non-blank data hash is appended
type Update struct {
	Id       asset.Identifier
	Location string
	Amount   asset.OptionalAmount
	DataHash string
}

// Kind - implement Operation
func (*Update) Kind() asset.Operation {
	return asset.Update
}

func (op *Update) apply(s *session) ([]asset.Identifier, error) {
	if "" == op.Location {
		return nil, fault.EmptyLocation
	}
	a, err := s.ownedActive(op.Id)
	if nil != err {
		return nil, err
	}

	previousLocation := a.Location
	previousAmount := a.Amount

	a.Location = op.Location
	a.Amount = op.Amount.Or(a.Amount)
	if "" != op.DataHash {
		a.DataHashes = append(a.DataHashes, op.DataHash)
	}
	a.Touch(asset.Update, s.now)
	if err := s.put(a); nil != err {
		return nil, err
	}

	s.emit(
		&lineage.AssetUpdated{
			AssetId:  a.Id,
			Location: a.Location,
			Amount:   a.Amount,
			DataHash: op.DataHash,
		},
		&lineage.AssetStateChanged{
			AssetId:          a.Id,
			Operation:        asset.Update,
			PreviousLocation: previousLocation,
			Location:         a.Location,
			PreviousAmount:   previousAmount,
			Amount:           a.Amount,
		},
		&lineage.AssetLineage{
			Child:        a.Id,
			Parent:       a.Id,
			Relationship: lineage.UpdateRelationship,
		},
	)
	return []asset.Identifier{a.Id}, nil
}
