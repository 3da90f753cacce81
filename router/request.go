// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package router

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/lifecycle"
	"github.com/bitmark-inc/lineaged/process"
)

// Request - a declarative request to apply a process to assets
//
// which fields are read depends on the action the process declares
type Request struct {
	Namespace    asset.Namespace    `json:"namespace"`
	Caller       string             `json:"caller"`
	ProcessId    string             `json:"processId"`
	NatureId     string             `json:"natureId"`
	StageId      string             `json:"stageId"`
	AssetId      asset.Identifier   `json:"assetId"`
	NewAssetId   asset.Identifier   `json:"newAssetId"`
	ComponentIds []asset.Identifier `json:"componentIds"`
	NewOwner     string             `json:"newOwner"`
	Amount       uint64             `json:"amount"`
	Amounts      []uint64           `json:"amounts"`
	Location     string             `json:"location"`
	DataHashes   []string           `json:"dataHashes"`
	ExternalIds  []string           `json:"externalIds"`
}

// check the identifiers every request must carry
func (r *Request) validate() error {
	if "" == r.ProcessId {
		return fault.Detail(fault.MissingParameters, "process id")
	}
	if "" == r.NatureId {
		return fault.Detail(fault.MissingParameters, "nature id")
	}
	if "" == r.StageId {
		return fault.Detail(fault.MissingParameters, "stage id")
	}
	return nil
}

// the first data hash, or blank
func (r *Request) dataHash() string {
	if 0 == len(r.DataHashes) {
		return ""
	}
	return r.DataHashes[0]
}

// operation - map the request fields onto the lifecycle operation
// for the action
//
// a zero amount on the wire means unchanged for update, transfer and
// transform
func (r *Request) operation(action process.ActionKind) (lifecycle.Operation, error) {
	switch action {
	case process.CreateAsset:
		return &lifecycle.Create{
			Id:          r.AssetId,
			Owner:       r.Caller,
			Amount:      r.Amount,
			Location:    r.Location,
			DataHashes:  r.DataHashes,
			ExternalIds: r.ExternalIds,
		}, nil

	case process.UpdateAsset:
		return &lifecycle.Update{
			Id:       r.AssetId,
			Location: r.Location,
			Amount:   asset.AmountUnlessZero(r.Amount),
			DataHash: r.dataHash(),
		}, nil

	case process.TransferAsset:
		return &lifecycle.Transfer{
			Id:          r.AssetId,
			NewOwner:    r.NewOwner,
			Location:    r.Location,
			Amount:      asset.AmountUnlessZero(r.Amount),
			DataHash:    r.dataHash(),
			ExternalIds: r.ExternalIds,
		}, nil

	case process.TransformAsset:
		return &lifecycle.Transform{
			Id:       r.AssetId,
			NewId:    r.NewAssetId,
			Location: r.Location,
			Amount:   asset.AmountUnlessZero(r.Amount),
		}, nil

	case process.SplitAsset:
		return &lifecycle.Split{
			Id:         r.AssetId,
			Amounts:    r.Amounts,
			Location:   r.Location,
			DataHashes: r.DataHashes,
		}, nil

	case process.GroupAsset:
		return &lifecycle.Group{
			GroupId:      r.AssetId,
			ComponentIds: r.ComponentIds,
			Location:     r.Location,
			DataHash:     r.dataHash(),
		}, nil

	case process.UngroupAsset:
		return &lifecycle.Ungroup{
			GroupId:  r.AssetId,
			DataHash: r.dataHash(),
			Location: r.Location,
		}, nil

	case process.InactivateAsset:
		return &lifecycle.Inactivate{
			Id:       r.AssetId,
			Location: r.Location,
			DataHash: r.dataHash(),
		}, nil

	default:
		return nil, fault.Detail(fault.UnsupportedOperation, "action: %s", action)
	}
}
