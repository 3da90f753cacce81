// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"math"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/lineage"
)

// Group - retire a set of assets into a new composite
//
// a zero GroupId is replaced by a generated one
type Group struct {
	GroupId      asset.Identifier
	ComponentIds []asset.Identifier
	Location     string
	DataHash     string
}

// Kind - implement Operation
func (*Group) Kind() asset.Operation {
	return asset.Group
}

// the shape of the request, checked before any asset is read
func (op *Group) validate(limits Limits) error {
	n := len(op.ComponentIds)
	if n < limits.MinimumGroupSize {
		return fault.Detail(fault.InsufficientAssetsToGroup, "components: %d  minimum: %d", n, limits.MinimumGroupSize)
	}
	if n > limits.MaximumGroupSize {
		return fault.Detail(fault.TooManyAssetsToGroup, "components: %d  maximum: %d", n, limits.MaximumGroupSize)
	}
	if "" == op.Location {
		return fault.EmptyLocation
	}
	if "" == op.DataHash {
		return fault.EmptyDataHashes
	}

	seen := make(map[asset.Identifier]struct{}, n)
	for _, id := range op.ComponentIds {
		if id.IsZero() {
			return fault.InvalidId
		}
		if id == op.GroupId {
			return fault.Detail(fault.SelfReferenceInGroup, "id: %s", id)
		}
		if _, ok := seen[id]; ok {
			return fault.Detail(fault.DuplicateAssetsInGroup, "id: %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (op *Group) apply(s *session) ([]asset.Identifier, error) {
	if err := op.validate(s.limits()); nil != err {
		return nil, err
	}
	if !op.GroupId.IsZero() && s.exists(op.GroupId) {
		return nil, fault.Detail(fault.GroupAssetAlreadyExists, "id: %s", op.GroupId)
	}

	components := make([]*asset.Asset, 0, len(op.ComponentIds))
	amounts := make([]uint64, 0, len(op.ComponentIds))
	total := uint64(0)
	for _, id := range op.ComponentIds {
		c, err := s.get(id)
		if nil != err {
			return nil, err
		}
		if !c.IsActive() {
			return nil, fault.Detail(fault.AssetNotActive, "id: %s  status: %s", id, c.Status)
		}
		if len(components) > 0 && c.Owner != components[0].Owner {
			return nil, fault.Detail(fault.MixedOwnershipNotAllowed, "id: %s  owner: %q  expected: %q", id, c.Owner, components[0].Owner)
		}
		if c.Owner != s.caller {
			return nil, fault.Detail(fault.NotAssetOwner, "id: %s  owner: %q  caller: %q", id, c.Owner, s.caller)
		}
		if c.Amount > math.MaxUint64-total {
			return nil, fault.Detail(fault.InvalidGroupAmount, "overflow at: %s", id)
		}
		total += c.Amount
		components = append(components, c)
		amounts = append(amounts, c.Amount)
	}
	if 0 == total {
		return nil, fault.Detail(fault.InvalidGroupAmount, "total: 0")
	}

	groupId, err := s.newId(op.GroupId, fault.GroupAssetAlreadyExists)
	if nil != err {
		return nil, err
	}

	for _, c := range components {
		c.Status = asset.Inactive
		c.GroupedBy = groupId
		c.Touch(asset.Group, s.now)
		if err := s.put(c); nil != err {
			return nil, err
		}
		s.emit(&lineage.AssetLineage{
			Child:        groupId,
			Parent:       c.Id,
			Relationship: lineage.GroupComponentRelationship,
		})
	}

	composite := &asset.Asset{
		Id:            groupId,
		Owner:         s.caller,
		OriginOwner:   s.caller,
		Amount:        total,
		Location:      op.Location,
		DataHashes:    []string{op.DataHash},
		Status:        asset.Active,
		Operation:     asset.Group,
		GroupedAssets: copyIds(op.ComponentIds),
		CreatedAt:     s.now,
		LastUpdated:   s.now,
	}
	if err := s.put(composite); nil != err {
		return nil, err
	}

	s.emit(
		&lineage.AssetsGrouped{
			GroupId:      groupId,
			ComponentIds: copyIds(op.ComponentIds),
			Amount:       total,
		},
		&lineage.AssetComposition{
			CompositeId:      groupId,
			ComponentIds:     copyIds(op.ComponentIds),
			ComponentAmounts: amounts,
		},
		&lineage.AssetDepthCalculated{
			AssetId: groupId,
			Depth:   0,
			Origins: copyIds(op.ComponentIds),
		},
	)
	return append([]asset.Identifier{groupId}, op.ComponentIds...), nil
}
