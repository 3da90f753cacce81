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

// Create - a new origin asset
//
// a zero Id is replaced by a generated one, an empty Owner means the
// caller
type Create struct {
	Id          asset.Identifier
	Owner       string
	Amount      uint64
	Location    string
	DataHashes  []string
	ExternalIds []string
}

// Kind - implement Operation
func (*Create) Kind() asset.Operation {
	return asset.Create
}

func (op *Create) apply(s *session) ([]asset.Identifier, error) {
	if "" == op.Location {
		return nil, fault.EmptyLocation
	}
	if err := checkDataHashes(op.DataHashes); nil != err {
		return nil, err
	}

	owner := op.Owner
	if "" == owner {
		owner = s.caller
	} else if owner != s.caller {
		if err := s.requireMember(owner); nil != err {
			return nil, err
		}
	}

	id, err := s.newId(op.Id, fault.AssetAlreadyExists)
	if nil != err {
		return nil, err
	}

	a := &asset.Asset{
		Id:          id,
		Owner:       owner,
		OriginOwner: owner,
		Amount:      op.Amount,
		Location:    op.Location,
		DataHashes:  copyStrings(op.DataHashes),
		ExternalIds: copyStrings(op.ExternalIds),
		Status:      asset.Active,
		Operation:   asset.Create,
		CreatedAt:   s.now,
		LastUpdated: s.now,
	}
	if err := s.put(a); nil != err {
		return nil, err
	}

	s.emit(
		&lineage.AssetCreated{
			AssetId:  id,
			Owner:    owner,
			Amount:   op.Amount,
			Location: op.Location,
		},
		&lineage.AssetDepthCalculated{
			AssetId: id,
			Depth:   0,
		},
	)
	return []asset.Identifier{id}, nil
}
