// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/lineaged/asset"
)

// GetAsset - the committed record of an asset
func (e *Engine) GetAsset(ns asset.Namespace, id asset.Identifier) (*asset.Asset, error) {
	return asset.Get(e.database.Pool.Assets, ns, id)
}

// Exists - true once an asset has been created, it never reverts
func (e *Engine) Exists(ns asset.Namespace, id asset.Identifier) bool {
	return asset.Exists(e.database.Pool.Assets, ns, id)
}

// IsAssetActive - false both for unknown and INACTIVE assets
func (e *Engine) IsAssetActive(ns asset.Namespace, id asset.Identifier) bool {
	a, err := e.GetAsset(ns, id)
	if nil != err {
		return false
	}
	return a.IsActive()
}

// Depth - the number of parent links back to the origin of an asset
func (e *Engine) Depth(ns asset.Namespace, id asset.Identifier) (int, error) {
	a, err := e.GetAsset(ns, id)
	if nil != err {
		return 0, err
	}
	get := func(id asset.Identifier) (*asset.Asset, error) {
		return e.GetAsset(ns, id)
	}
	return depthOf(get, a, e.limits.MaximumDepth)
}
