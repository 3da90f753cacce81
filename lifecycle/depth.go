// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
)

// depthOf - number of parent links from a back to its origin
//
// at most maximum+1 links are followed, a longer chain or a loop is
// reported as too deep
func depthOf(get func(asset.Identifier) (*asset.Asset, error), a *asset.Asset, maximum int) (int, error) {
	seen := map[asset.Identifier]struct{}{
		a.Id: {},
	}
	depth := 0
	for current := a; current.HasParent(); depth += 1 {
		if depth > maximum {
			return depth, fault.Detail(fault.TransformationChainTooDeep, "id: %s  maximum: %d", a.Id, maximum)
		}
		parentId := current.ParentAssetId
		if _, ok := seen[parentId]; ok {
			return depth, fault.Detail(fault.TransformationChainTooDeep, "id: %s  loop at: %s", a.Id, parentId)
		}
		seen[parentId] = struct{}{}

		parent, err := get(parentId)
		if nil != err {
			return depth, err
		}
		current = parent
	}
	return depth, nil
}
