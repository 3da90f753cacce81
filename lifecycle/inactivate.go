// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/lineage"
)

// Inactivate - terminal retirement of an asset
//
// a non-blank Location or DataHash is recorded as the final value
type Inactivate struct {
	Id       asset.Identifier
	Location string
	DataHash string
}

// Kind - implement Operation
func (*Inactivate) Kind() asset.Operation {
	return asset.Inactivate
}

func (op *Inactivate) apply(s *session) ([]asset.Identifier, error) {
	a, err := s.ownedActive(op.Id)
	if nil != err {
		return nil, err
	}

	if "" != op.Location {
		a.Location = op.Location
	}
	if "" != op.DataHash {
		a.DataHashes = append(a.DataHashes, op.DataHash)
	}
	a.Status = asset.Inactive
	a.Touch(asset.Inactivate, s.now)
	if err := s.put(a); nil != err {
		return nil, err
	}

	s.emit(&lineage.AssetInactivated{
		AssetId:  a.Id,
		Location: a.Location,
	})
	return []asset.Identifier{a.Id}, nil
}
