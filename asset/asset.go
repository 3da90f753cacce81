// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"strings"
	"time"

	"github.com/bitmark-inc/lineaged/fault"
)

// Namespace - the channel that scopes ids, counters and membership
type Namespace string

// Validate - a namespace must be present
func (ns Namespace) Validate() error {
	if "" == strings.TrimSpace(string(ns)) {
		return fault.InvalidNamespace
	}
	return nil
}

// Status - ACTIVE or INACTIVE
type Status uint8

// possible states
const (
	Active Status = iota + 1
	Inactive
)

func (s Status) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Inactive:
		return "INACTIVE"
	default:
		return "*unknown*"
	}
}

// MarshalText - status as its name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - status from its name
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ACTIVE":
		*s = Active
	case "INACTIVE":
		*s = Inactive
	default:
		return fault.Detail(fault.MissingParameters, "status: %q", text)
	}
	return nil
}

// Operation - the lifecycle operations
type Operation uint8

// all operations, in the order they appear in the action table
const (
	NoOperation Operation = iota
	Create
	Update
	Transfer
	Transform
	Split
	Group
	Ungroup
	Inactivate
)

func (op Operation) String() string {
	switch op {
	case Create:
		return "CREATE"
	case Update:
		return "UPDATE"
	case Transfer:
		return "TRANSFER"
	case Transform:
		return "TRANSFORM"
	case Split:
		return "SPLIT"
	case Group:
		return "GROUP"
	case Ungroup:
		return "UNGROUP"
	case Inactivate:
		return "INACTIVATE"
	default:
		return "NONE"
	}
}

// MarshalText - operation as its name
func (op Operation) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText - operation from its name
func (op *Operation) UnmarshalText(text []byte) error {
	for o := NoOperation; o <= Inactivate; o += 1 {
		if o.String() == string(text) {
			*op = o
			return nil
		}
	}
	return fault.Detail(fault.UnsupportedOperation, "operation: %q", text)
}

// Asset - the stored record
type Asset struct {
	Id            Identifier   `cbor:"1,keyasint" json:"id"`
	Owner         string       `cbor:"2,keyasint" json:"owner"`
	OriginOwner   string       `cbor:"3,keyasint" json:"originOwner"`
	Amount        uint64       `cbor:"4,keyasint" json:"amount,string"`
	Location      string       `cbor:"5,keyasint" json:"location"`
	DataHashes    []string     `cbor:"6,keyasint" json:"dataHashes"`
	ExternalIds   []string     `cbor:"7,keyasint" json:"externalIds"`
	Status        Status       `cbor:"8,keyasint" json:"status"`
	Operation     Operation    `cbor:"9,keyasint" json:"operation"`
	ParentAssetId Identifier   `cbor:"10,keyasint" json:"parentAssetId"`
	ChildAssets   []Identifier `cbor:"11,keyasint" json:"childAssets"`
	GroupedAssets []Identifier `cbor:"12,keyasint" json:"groupedAssets"`
	GroupedBy     Identifier   `cbor:"13,keyasint" json:"groupedBy"`
	CreatedAt     time.Time    `cbor:"14,keyasint" json:"createdAt"`
	LastUpdated   time.Time    `cbor:"15,keyasint" json:"lastUpdated"`
}

// IsActive - true only for ACTIVE
func (a *Asset) IsActive() bool {
	return Active == a.Status
}

// HasParent - split and transform children have a parent
func (a *Asset) HasParent() bool {
	return !a.ParentAssetId.IsZero()
}

// IsGrouped - currently a component of a composite
func (a *Asset) IsGrouped() bool {
	return !a.GroupedBy.IsZero()
}

// IsComposite - created by group
func (a *Asset) IsComposite() bool {
	return 0 != len(a.GroupedAssets)
}

// Touch - advance the last updated time, never backwards
func (a *Asset) Touch(op Operation, now time.Time) {
	a.Operation = op
	if now.After(a.LastUpdated) {
		a.LastUpdated = now
	}
}

// Copy - a deep copy, slices are not shared
func (a *Asset) Copy() *Asset {
	c := *a
	c.DataHashes = append([]string(nil), a.DataHashes...)
	c.ExternalIds = append([]string(nil), a.ExternalIds...)
	c.ChildAssets = append([]Identifier(nil), a.ChildAssets...)
	c.GroupedAssets = append([]Identifier(nil), a.GroupedAssets...)
	return &c
}

// OptionalAmount - an amount that may be absent
//
// replaces "zero means no change" so that zero can be a real value
type OptionalAmount struct {
	Value uint64
	Set   bool
}

// SomeAmount - a present amount
func SomeAmount(value uint64) OptionalAmount {
	return OptionalAmount{Value: value, Set: true}
}

// NoAmount - an absent amount
func NoAmount() OptionalAmount {
	return OptionalAmount{}
}

// AmountUnlessZero - the wire form: zero is read as absent
func AmountUnlessZero(value uint64) OptionalAmount {
	if 0 == value {
		return NoAmount()
	}
	return SomeAmount(value)
}

// Or - the value if set, otherwise the fallback
func (o OptionalAmount) Or(fallback uint64) uint64 {
	if o.Set {
		return o.Value
	}
	return fallback
}
