// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"time"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/identifier"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/storage"
)

// state for one batch
type session struct {
	engine    *Engine
	store     *asset.Store
	generator *identifier.Generator
	ns        asset.Namespace
	caller    string
	now       time.Time
	events    []lineage.Event
}

func (e *Engine) newSession(trx storage.Transaction, ns asset.Namespace, caller string) *session {
	sequencer := e.sequencer
	if nil == sequencer {
		sequencer = identifier.NewPoolSequencer(trx, e.database.Pool.Counters)
	}
	return &session{
		engine:    e,
		store:     asset.NewStore(trx, e.database.Pool.Assets),
		generator: identifier.New(sequencer, e.salt),
		ns:        ns,
		caller:    caller,
		now:       e.clock().UTC(),
	}
}

func (s *session) emit(events ...lineage.Event) {
	s.events = append(s.events, events...)
}

func (s *session) limits() Limits {
	return s.engine.limits
}

func (s *session) get(id asset.Identifier) (*asset.Asset, error) {
	return s.store.Get(s.ns, id)
}

func (s *session) put(a *asset.Asset) error {
	return s.store.Put(s.ns, a.Id, a)
}

func (s *session) exists(id asset.Identifier) bool {
	return s.store.Exists(s.ns, id)
}

func (s *session) requireMember(identity string) error {
	if !s.engine.membership.IsMember(s.ns, identity) {
		return fault.Detail(fault.UnauthorizedAccess, "identity: %q  namespace: %q", identity, s.ns)
	}
	return nil
}

// the asset must exist, be ACTIVE and belong to the caller
func (s *session) ownedActive(id asset.Identifier) (*asset.Asset, error) {
	if id.IsZero() {
		return nil, fault.InvalidId
	}
	a, err := s.get(id)
	if nil != err {
		return nil, err
	}
	if !a.IsActive() {
		return nil, fault.Detail(fault.AssetNotActive, "id: %s  status: %s", id, a.Status)
	}
	if a.Owner != s.caller {
		return nil, fault.Detail(fault.NotAssetOwner, "id: %s  owner: %q  caller: %q", id, a.Owner, s.caller)
	}
	return a, nil
}

// an unused id: the one given or a generated one when zero
func (s *session) newId(given asset.Identifier, exists error) (asset.Identifier, error) {
	if given.IsZero() {
		return s.generator.Next(s.ns, s.caller, s.exists)
	}
	if s.exists(given) {
		return asset.Identifier{}, fault.Detail(exists, "id: %s", given)
	}
	return given, nil
}

// the depth of an asset that would be derived from parent
func (s *session) childDepth(parent *asset.Asset) (uint64, error) {
	maximum := s.limits().MaximumDepth
	depth, err := depthOf(s.get, parent, maximum)
	if nil != err {
		return 0, err
	}
	if depth >= maximum {
		return 0, fault.Detail(fault.TransformationChainTooDeep, "id: %s  depth: %d  maximum: %d", parent.Id, depth, maximum)
	}
	return uint64(depth) + 1, nil
}

func copyStrings(s []string) []string {
	if 0 == len(s) {
		return nil
	}
	return append([]string(nil), s...)
}

func copyIds(ids []asset.Identifier) []asset.Identifier {
	if 0 == len(ids) {
		return nil
	}
	return append([]asset.Identifier(nil), ids...)
}

// data hashes must be present and not blank
func checkDataHashes(hashes []string) error {
	if 0 == len(hashes) {
		return fault.EmptyDataHashes
	}
	for i, h := range hashes {
		if "" == h {
			return fault.Detail(fault.EmptyDataHashes, "index: %d", i)
		}
	}
	return nil
}
