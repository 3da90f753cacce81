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

// Transfer - hand an asset to another namespace member
//
// non-empty ExternalIds replace the current ones
type Transfer struct {
	Id          asset.Identifier
	NewOwner    string
	Location    string
	Amount      asset.OptionalAmount
	DataHash    string
	ExternalIds []string
}

// Kind - implement Operation
func (*Transfer) Kind() asset.Operation {
	return asset.Transfer
}

func (op *Transfer) apply(s *session) ([]asset.Identifier, error) {
	if "" == op.NewOwner {
		return nil, fault.Detail(fault.MissingParameters, "new owner")
	}
	if "" == op.Location {
		return nil, fault.EmptyLocation
	}
	a, err := s.ownedActive(op.Id)
	if nil != err {
		return nil, err
	}
	if op.NewOwner == a.Owner {
		return nil, fault.Detail(fault.TransferToSameOwner, "id: %s  owner: %q", a.Id, a.Owner)
	}
	if err := s.requireMember(op.NewOwner); nil != err {
		return nil, err
	}

	previousOwner := a.Owner
	previousLocation := a.Location
	previousAmount := a.Amount

	a.Owner = op.NewOwner
	a.Location = op.Location
	a.Amount = op.Amount.Or(a.Amount)
	if "" != op.DataHash {
		a.DataHashes = append(a.DataHashes, op.DataHash)
	}
	if 0 != len(op.ExternalIds) {
		a.ExternalIds = copyStrings(op.ExternalIds)
	}
	a.Touch(asset.Transfer, s.now)
	if err := s.put(a); nil != err {
		return nil, err
	}

	s.emit(
		&lineage.AssetTransferred{
			AssetId:  a.Id,
			From:     previousOwner,
			To:       a.Owner,
			Amount:   a.Amount,
			Location: a.Location,
		},
		&lineage.AssetCustodyChanged{
			AssetId:  a.Id,
			From:     previousOwner,
			To:       a.Owner,
			Location: a.Location,
		},
	)
	if previousLocation != a.Location {
		s.emit(&lineage.AssetStateChanged{
			AssetId:          a.Id,
			Operation:        asset.Transfer,
			PreviousLocation: previousLocation,
			Location:         a.Location,
			PreviousAmount:   previousAmount,
			Amount:           a.Amount,
		})
	}
	s.emit(&lineage.AssetLineage{
		Child:        a.Id,
		Parent:       a.Id,
		Relationship: lineage.TransferRelationship,
	})
	return []asset.Identifier{a.Id}, nil
}
