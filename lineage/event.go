// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lineage

import (
	"github.com/bitmark-inc/lineaged/asset"
)

// Event - the body of a journal record
type Event interface {
	Kind() Kind
}

// AssetCreated - a new asset from create
type AssetCreated struct {
	AssetId  asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	Owner    string           `cbor:"2,keyasint" json:"owner"`
	Amount   uint64           `cbor:"3,keyasint" json:"amount,string"`
	Location string           `cbor:"4,keyasint" json:"location"`
}

// AssetUpdated - location, amount or data changed in place
type AssetUpdated struct {
	AssetId  asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	Location string           `cbor:"2,keyasint" json:"location"`
	Amount   uint64           `cbor:"3,keyasint" json:"amount,string"`
	DataHash string           `cbor:"4,keyasint" json:"dataHash"`
}

// AssetTransferred - a change of owner
type AssetTransferred struct {
	AssetId  asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	From     string           `cbor:"2,keyasint" json:"from"`
	To       string           `cbor:"3,keyasint" json:"to"`
	Amount   uint64           `cbor:"4,keyasint" json:"amount,string"`
	Location string           `cbor:"5,keyasint" json:"location"`
}

// AssetTransformed - an asset retired in favour of a new one
type AssetTransformed struct {
	AssetId    asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	NewAssetId asset.Identifier `cbor:"2,keyasint" json:"newAssetId"`
	Amount     uint64           `cbor:"3,keyasint" json:"amount,string"`
	Location   string           `cbor:"4,keyasint" json:"location"`
}

// AssetsGrouped - components retired into a composite
type AssetsGrouped struct {
	GroupId      asset.Identifier   `cbor:"1,keyasint" json:"groupId"`
	ComponentIds []asset.Identifier `cbor:"2,keyasint" json:"componentIds"`
	Amount       uint64             `cbor:"3,keyasint" json:"amount,string"`
}

// AssetsUngrouped - components reactivated from a composite
type AssetsUngrouped struct {
	GroupId      asset.Identifier   `cbor:"1,keyasint" json:"groupId"`
	ComponentIds []asset.Identifier `cbor:"2,keyasint" json:"componentIds"`
}

// AssetInactivated - terminal retirement
type AssetInactivated struct {
	AssetId  asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	Location string           `cbor:"2,keyasint" json:"location"`
}

// AssetLineage - a directed edge from child to parent
type AssetLineage struct {
	Child        asset.Identifier `cbor:"1,keyasint" json:"child"`
	Parent       asset.Identifier `cbor:"2,keyasint" json:"parent"`
	Relationship Relationship     `cbor:"3,keyasint" json:"relationship"`
}

// AssetCustodyChanged - previous and new owner
type AssetCustodyChanged struct {
	AssetId  asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	From     string           `cbor:"2,keyasint" json:"from"`
	To       string           `cbor:"3,keyasint" json:"to"`
	Location string           `cbor:"4,keyasint" json:"location"`
}

// AssetStateChanged - before and after values of location and amount
type AssetStateChanged struct {
	AssetId          asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	Operation        asset.Operation  `cbor:"2,keyasint" json:"operation"`
	PreviousLocation string           `cbor:"3,keyasint" json:"previousLocation"`
	Location         string           `cbor:"4,keyasint" json:"location"`
	PreviousAmount   uint64           `cbor:"5,keyasint" json:"previousAmount,string"`
	Amount           uint64           `cbor:"6,keyasint" json:"amount,string"`
}

// AssetComposition - the amounts each component contributed
type AssetComposition struct {
	CompositeId      asset.Identifier   `cbor:"1,keyasint" json:"compositeId"`
	ComponentIds     []asset.Identifier `cbor:"2,keyasint" json:"componentIds"`
	ComponentAmounts []uint64           `cbor:"3,keyasint" json:"componentAmounts"`
}

// AssetDepthCalculated - depth of a new asset and its direct origins
type AssetDepthCalculated struct {
	AssetId asset.Identifier   `cbor:"1,keyasint" json:"assetId"`
	Depth   uint64             `cbor:"2,keyasint" json:"depth"`
	Origins []asset.Identifier `cbor:"3,keyasint" json:"origins"`
}

// AssetRelationship - one asset related to a set of others
type AssetRelationship struct {
	AssetId      asset.Identifier   `cbor:"1,keyasint" json:"assetId"`
	Related      []asset.Identifier `cbor:"2,keyasint" json:"related"`
	Relationship Relationship       `cbor:"3,keyasint" json:"relationship"`
}

// OperationExecuted - one routed request
type OperationExecuted struct {
	Operation asset.Operation    `cbor:"1,keyasint" json:"operation"`
	Caller    string             `cbor:"2,keyasint" json:"caller"`
	ProcessId string             `cbor:"3,keyasint" json:"processId"`
	AssetIds  []asset.Identifier `cbor:"4,keyasint" json:"assetIds"`
}

// AssetModified - one asset touched by a routed request
type AssetModified struct {
	AssetId   asset.Identifier `cbor:"1,keyasint" json:"assetId"`
	Operation asset.Operation  `cbor:"2,keyasint" json:"operation"`
	Caller    string           `cbor:"3,keyasint" json:"caller"`
}

// Kind - implement Event
func (*AssetCreated) Kind() Kind { return AssetCreatedKind }

// Kind - implement Event
func (*AssetUpdated) Kind() Kind { return AssetUpdatedKind }

// Kind - implement Event
func (*AssetTransferred) Kind() Kind { return AssetTransferredKind }

// Kind - implement Event
func (*AssetTransformed) Kind() Kind { return AssetTransformedKind }

// Kind - implement Event
func (*AssetsGrouped) Kind() Kind { return AssetsGroupedKind }

// Kind - implement Event
func (*AssetsUngrouped) Kind() Kind { return AssetsUngroupedKind }

// Kind - implement Event
func (*AssetInactivated) Kind() Kind { return AssetInactivatedKind }

// Kind - implement Event
func (*AssetLineage) Kind() Kind { return AssetLineageKind }

// Kind - implement Event
func (*AssetCustodyChanged) Kind() Kind { return AssetCustodyKind }

// Kind - implement Event
func (*AssetStateChanged) Kind() Kind { return AssetStateKind }

// Kind - implement Event
func (*AssetComposition) Kind() Kind { return AssetCompositionKind }

// Kind - implement Event
func (*AssetDepthCalculated) Kind() Kind { return AssetDepthKind }

// Kind - implement Event
func (*AssetRelationship) Kind() Kind { return AssetRelationKind }

// Kind - implement Event
func (*OperationExecuted) Kind() Kind { return OperationKind }

// Kind - implement Event
func (*AssetModified) Kind() Kind { return AssetModifiedKind }

// allocate an empty event of a given kind for unpacking
func newEvent(kind Kind) Event {
	switch kind {
	case AssetCreatedKind:
		return &AssetCreated{}
	case AssetUpdatedKind:
		return &AssetUpdated{}
	case AssetTransferredKind:
		return &AssetTransferred{}
	case AssetTransformedKind:
		return &AssetTransformed{}
	case AssetsGroupedKind:
		return &AssetsGrouped{}
	case AssetsUngroupedKind:
		return &AssetsUngrouped{}
	case AssetInactivatedKind:
		return &AssetInactivated{}
	case AssetLineageKind:
		return &AssetLineage{}
	case AssetCustodyKind:
		return &AssetCustodyChanged{}
	case AssetStateKind:
		return &AssetStateChanged{}
	case AssetCompositionKind:
		return &AssetComposition{}
	case AssetDepthKind:
		return &AssetDepthCalculated{}
	case AssetRelationKind:
		return &AssetRelationship{}
	case OperationKind:
		return &OperationExecuted{}
	case AssetModifiedKind:
		return &AssetModified{}
	default:
		return nil
	}
}
