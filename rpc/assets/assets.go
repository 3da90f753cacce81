// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitAssets = 200
	rateBurstAssets = 100
)

// Reader - read access to committed assets
type Reader interface {
	GetAsset(ns asset.Namespace, id asset.Identifier) (*asset.Asset, error)
	Exists(ns asset.Namespace, id asset.Identifier) bool
	IsAssetActive(ns asset.Namespace, id asset.Identifier) bool
	Depth(ns asset.Namespace, id asset.Identifier) (int, error)
}

// Assets - an RPC entry for asset queries
type Assets struct {
	Log     *logger.L
	Limiter *rate.Limiter
	reader  Reader
}

// New - create the assets service
func New(log *logger.L, reader Reader) *Assets {
	return &Assets{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		reader:  reader,
	}
}

// Arguments - which asset
type Arguments struct {
	Namespace asset.Namespace  `json:"namespace"`
	Id        asset.Identifier `json:"id"`
}

// GetReply - the full record with its lineage depth
type GetReply struct {
	Asset *asset.Asset `json:"asset"`
	Depth int          `json:"depth"`
}

// Get - the committed record of one asset
func (a *Assets) Get(arguments *Arguments, reply *GetReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	record, err := a.reader.GetAsset(arguments.Namespace, arguments.Id)
	if nil != err {
		return err
	}
	depth, err := a.reader.Depth(arguments.Namespace, arguments.Id)
	if nil != err {
		return err
	}

	reply.Asset = record
	reply.Depth = depth
	return nil
}

// StatusReply - predicates of one asset
type StatusReply struct {
	Exists bool `json:"exists"`
	Active bool `json:"active"`
}

// Status - whether an asset exists and is active
//
// an unknown asset is neither, it is not an error
func (a *Assets) Status(arguments *Arguments, reply *StatusReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if err := arguments.Namespace.Validate(); nil != err {
		return err
	}

	reply.Exists = a.reader.Exists(arguments.Namespace, arguments.Id)
	reply.Active = a.reader.IsAssetActive(arguments.Namespace, arguments.Id)
	return nil
}
