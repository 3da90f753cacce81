// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/lineage"
)

// Ungroup - retire a composite and reactivate its components
//
// a non-blank Location or DataHash is applied to every component
type Ungroup struct {
	GroupId  asset.Identifier
	DataHash string
	Location string
}

// Kind - implement Operation
func (*Ungroup) Kind() asset.Operation {
	return asset.Ungroup
}

func (op *Ungroup) apply(s *session) ([]asset.Identifier, error) {
	if op.GroupId.IsZero() {
		return nil, fault.InvalidId
	}
	g, err := s.get(op.GroupId)
	if nil != err {
		return nil, err
	}
	if !g.IsComposite() {
		return nil, fault.Detail(fault.AssetNotGrouped, "id: %s", g.Id)
	}
	if g.Owner != s.caller {
		return nil, fault.Detail(fault.NotAssetOwner, "id: %s  owner: %q  caller: %q", g.Id, g.Owner, s.caller)
	}
	if !g.IsActive() {
		return nil, fault.Detail(fault.AssetAlreadyUngrouped, "id: %s", g.Id)
	}

	// check every component before changing any
	components := make([]*asset.Asset, 0, len(g.GroupedAssets))
	for _, id := range g.GroupedAssets {
		c, err := s.get(id)
		if fault.IsErrNotFound(err) {
			return nil, fault.Detail(fault.GroupedAssetNotFound, "group: %s  component: %s", g.Id, id)
		} else if nil != err {
			return nil, err
		}
		if c.IsActive() || !c.IsGrouped() {
			return nil, fault.Detail(fault.AssetAlreadyUngrouped, "group: %s  component: %s", g.Id, id)
		}
		components = append(components, c)
	}

	for _, c := range components {
		c.Status = asset.Active
		c.GroupedBy = asset.Identifier{}
		if "" != op.Location {
			c.Location = op.Location
		}
		if "" != op.DataHash {
			c.DataHashes = append(c.DataHashes, op.DataHash)
		}
		c.Touch(asset.Ungroup, s.now)
		if err := s.put(c); nil != err {
			return nil, err
		}
	}

	g.Status = asset.Inactive
	g.Touch(asset.Ungroup, s.now)
	if err := s.put(g); nil != err {
		return nil, err
	}

	s.emit(&lineage.AssetsUngrouped{
		GroupId:      g.Id,
		ComponentIds: copyIds(g.GroupedAssets),
	})
	return append([]asset.Identifier{g.Id}, g.GroupedAssets...), nil
}
