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

// Split - retire an asset and divide its amount into new parts
//
// part i receives Amounts[i] and DataHashes[i]
type Split struct {
	Id         asset.Identifier
	Amounts    []uint64
	Location   string
	DataHashes []string
}

// Kind - implement Operation
func (*Split) Kind() asset.Operation {
	return asset.Split
}

// the shape of the request, checked before any asset is read
func (op *Split) validate(limits Limits) (uint64, error) {
	parts := len(op.Amounts)
	if parts < 2 {
		return 0, fault.Detail(fault.InsufficientSplitParts, "parts: %d", parts)
	}
	if parts > limits.MaximumSplitParts {
		return 0, fault.Detail(fault.TooManySplitParts, "parts: %d  maximum: %d", parts, limits.MaximumSplitParts)
	}
	if parts != len(op.DataHashes) {
		return 0, fault.Detail(fault.ArrayLengthMismatch, "amounts: %d  data hashes: %d", parts, len(op.DataHashes))
	}
	if "" == op.Location {
		return 0, fault.EmptyLocation
	}
	if err := checkDataHashes(op.DataHashes); nil != err {
		return 0, err
	}

	total := uint64(0)
	for i, amount := range op.Amounts {
		if 0 == amount {
			return 0, fault.Detail(fault.InvalidSplitAmount, "index: %d", i)
		}
		if amount < limits.MinimumSplitAmount {
			return 0, fault.Detail(fault.SplitAmountTooSmall, "index: %d  amount: %d  minimum: %d", i, amount, limits.MinimumSplitAmount)
		}
		if amount > math.MaxUint64-total {
			return 0, fault.Detail(fault.AmountOverflow, "index: %d", i)
		}
		total += amount
	}
	return total, nil
}

func (op *Split) apply(s *session) ([]asset.Identifier, error) {
	total, err := op.validate(s.limits())
	if nil != err {
		return nil, err
	}
	a, err := s.ownedActive(op.Id)
	if nil != err {
		return nil, err
	}
	if total != a.Amount {
		return nil, fault.Detail(fault.AmountConservationViolated, "expected: %d  actual: %d", a.Amount, total)
	}
	depth, err := s.childDepth(a)
	if nil != err {
		return nil, err
	}

	children := make([]asset.Identifier, 0, len(op.Amounts))
	for i, amount := range op.Amounts {
		id, err := s.newId(asset.Identifier{}, fault.AssetAlreadyExists)
		if nil != err {
			return nil, err
		}
		child := &asset.Asset{
			Id:            id,
			Owner:         a.Owner,
			OriginOwner:   a.Owner,
			Amount:        amount,
			Location:      op.Location,
			DataHashes:    []string{op.DataHashes[i]},
			ExternalIds:   copyStrings(a.ExternalIds),
			Status:        asset.Active,
			Operation:     asset.Split,
			ParentAssetId: a.Id,
			CreatedAt:     s.now,
			LastUpdated:   s.now,
		}
		// stage now so the next generated id cannot repeat it
		if err := s.put(child); nil != err {
			return nil, err
		}
		children = append(children, id)

		s.emit(
			&lineage.AssetLineage{
				Child:        id,
				Parent:       a.Id,
				Relationship: lineage.SplitRelationship,
			},
			&lineage.AssetDepthCalculated{
				AssetId: id,
				Depth:   depth,
				Origins: []asset.Identifier{a.Id},
			},
		)
	}

	a.Status = asset.Inactive
	a.ChildAssets = copyIds(children)
	a.Touch(asset.Split, s.now)
	if err := s.put(a); nil != err {
		return nil, err
	}

	s.emit(&lineage.AssetRelationship{
		AssetId:      a.Id,
		Related:      copyIds(children),
		Relationship: lineage.SplitRelationship,
	})
	return append(children, a.Id), nil
}
