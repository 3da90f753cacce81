// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package process

import (
	"github.com/bitmark-inc/lineaged/fault"
)

// ActionKind - the lifecycle operation a process performs
type ActionKind uint8

// all actions, the list is closed
const (
	UnknownAction ActionKind = iota
	CreateAsset
	UpdateAsset
	TransferAsset
	TransformAsset
	SplitAsset
	GroupAsset
	UngroupAsset
	InactivateAsset
)

var actionNames = [...]string{
	UnknownAction:   "UNKNOWN",
	CreateAsset:     "CREATE_ASSET",
	UpdateAsset:     "UPDATE_ASSET",
	TransferAsset:   "TRANSFER_ASSET",
	TransformAsset:  "TRANSFORM_ASSET",
	SplitAsset:      "SPLIT_ASSET",
	GroupAsset:      "GROUP_ASSET",
	UngroupAsset:    "UNGROUP_ASSET",
	InactivateAsset: "INACTIVATE_ASSET",
}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return actionNames[UnknownAction]
}

// ParseActionKind - action from its name
func ParseActionKind(name string) (ActionKind, error) {
	for i, n := range actionNames {
		if ActionKind(i) != UnknownAction && n == name {
			return ActionKind(i), nil
		}
	}
	return UnknownAction, fault.Detail(fault.UnknownAction, "action: %q", name)
}

// MarshalText - action as its name
func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - action from its name
func (a *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if nil != err {
		return err
	}
	*a = kind
	return nil
}
