// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lineage

import (
	"github.com/bitmark-inc/lineaged/fault"
)

// Kind - event type code, stored in the journal so must never be renumbered
type Kind uint64

// event kinds
const (
	NullKind             Kind = iota // 0 - not a valid event
	AssetCreatedKind     Kind = iota // 1
	AssetUpdatedKind     Kind = iota // 2
	AssetTransferredKind Kind = iota // 3
	AssetTransformedKind Kind = iota // 4
	AssetsGroupedKind    Kind = iota // 5
	AssetsUngroupedKind  Kind = iota // 6
	AssetInactivatedKind Kind = iota // 7
	AssetLineageKind     Kind = iota // 8
	AssetCustodyKind     Kind = iota // 9
	AssetStateKind       Kind = iota // 10
	AssetCompositionKind Kind = iota // 11
	AssetDepthKind       Kind = iota // 12
	AssetRelationKind    Kind = iota // 13
	OperationKind        Kind = iota // 14
	AssetModifiedKind    Kind = iota // 15
	// this item must be last
	InvalidKind Kind = iota
)

var kindNames = map[Kind]string{
	AssetCreatedKind:     "AssetCreated",
	AssetUpdatedKind:     "AssetUpdated",
	AssetTransferredKind: "AssetTransferred",
	AssetTransformedKind: "AssetTransformed",
	AssetsGroupedKind:    "AssetsGrouped",
	AssetsUngroupedKind:  "AssetsUngrouped",
	AssetInactivatedKind: "AssetInactivated",
	AssetLineageKind:     "AssetLineage",
	AssetCustodyKind:     "AssetCustodyChanged",
	AssetStateKind:       "AssetStateChanged",
	AssetCompositionKind: "AssetComposition",
	AssetDepthKind:       "AssetDepthCalculated",
	AssetRelationKind:    "AssetRelationship",
	OperationKind:        "OperationExecuted",
	AssetModifiedKind:    "AssetModified",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "*unknown*"
}

// MarshalText - kind as its name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - kind from its name
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fault.Detail(fault.NotEventRecord, "kind: %q", text)
}

// Relationship - the type of a lineage edge
type Relationship uint8

// edge types
const (
	SplitRelationship Relationship = iota + 1
	TransformRelationship
	GroupComponentRelationship
	TransferRelationship
	UpdateRelationship
)

func (r Relationship) String() string {
	switch r {
	case SplitRelationship:
		return "SPLIT"
	case TransformRelationship:
		return "TRANSFORM"
	case GroupComponentRelationship:
		return "GROUP_COMPONENT"
	case TransferRelationship:
		return "TRANSFER"
	case UpdateRelationship:
		return "UPDATE"
	default:
		return "*unknown*"
	}
}

// MarshalText - relationship as its name
func (r Relationship) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText - relationship from its name
func (r *Relationship) UnmarshalText(text []byte) error {
	for rel := SplitRelationship; rel <= UpdateRelationship; rel += 1 {
		if rel.String() == string(text) {
			*r = rel
			return nil
		}
	}
	return fault.Detail(fault.NotLineageRecord, "relationship: %q", text)
}
