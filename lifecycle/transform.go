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

// Transform - retire an asset and derive a new one from it
//
// a zero NewId is replaced by a generated one, an absent amount is
// inherited
type Transform struct {
	Id       asset.Identifier
	NewId    asset.Identifier
	Location string
	Amount   asset.OptionalAmount
}

// Kind - implement Operation
func (*Transform) Kind() asset.Operation {
	return asset.Transform
}

func (op *Transform) apply(s *session) ([]asset.Identifier, error) {
	if "" == op.Location {
		return nil, fault.EmptyLocation
	}
	a, err := s.ownedActive(op.Id)
	if nil != err {
		return nil, err
	}
	depth, err := s.childDepth(a)
	if nil != err {
		return nil, err
	}
	newId, err := s.newId(op.NewId, fault.AssetAlreadyExists)
	if nil != err {
		return nil, err
	}

	derived := &asset.Asset{
		Id:            newId,
		Owner:         a.Owner,
		OriginOwner:   a.Owner,
		Amount:        op.Amount.Or(a.Amount),
		Location:      op.Location,
		DataHashes:    copyStrings(a.DataHashes),
		ExternalIds:   copyStrings(a.ExternalIds),
		Status:        asset.Active,
		Operation:     asset.Transform,
		ParentAssetId: a.Id,
		GroupedAssets: copyIds(a.GroupedAssets),
		GroupedBy:     a.GroupedBy,
		CreatedAt:     s.now,
		LastUpdated:   s.now,
	}

	a.Status = asset.Inactive
	a.ChildAssets = append(a.ChildAssets, newId)
	a.Touch(asset.Transform, s.now)

	if err := s.put(a); nil != err {
		return nil, err
	}
	if err := s.put(derived); nil != err {
		return nil, err
	}

	s.emit(
		&lineage.AssetTransformed{
			AssetId:    a.Id,
			NewAssetId: newId,
			Amount:     derived.Amount,
			Location:   derived.Location,
		},
		&lineage.AssetLineage{
			Child:        newId,
			Parent:       a.Id,
			Relationship: lineage.TransformRelationship,
		},
		&lineage.AssetDepthCalculated{
			AssetId: newId,
			Depth:   depth,
			Origins: []asset.Identifier{a.Id},
		},
	)
	return []asset.Identifier{newId, a.Id}, nil
}
