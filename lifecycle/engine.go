// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"time"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/constants"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/identifier"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/storage"
	"github.com/bitmark-inc/logger"
)

// Membership - who may act in a namespace
type Membership interface {
	IsMember(ns asset.Namespace, identity string) bool
}

// Limits - configurable bounds on operations
type Limits struct {
	MaximumDepth       int    `gluamapper:"maximum_depth" json:"maximum_depth"`
	MinimumSplitAmount uint64 `gluamapper:"minimum_split_amount" json:"minimum_split_amount"`
	MaximumSplitParts  int    `gluamapper:"maximum_split_parts" json:"maximum_split_parts"`
	MinimumGroupSize   int    `gluamapper:"minimum_group_size" json:"minimum_group_size"`
	MaximumGroupSize   int    `gluamapper:"maximum_group_size" json:"maximum_group_size"`
}

// DefaultLimits - the built in limits
func DefaultLimits() Limits {
	return Limits{
		MaximumDepth:       constants.MaximumTransformationDepth,
		MinimumSplitAmount: constants.MinimumSplitAmount,
		MaximumSplitParts:  constants.MaximumSplitParts,
		MinimumGroupSize:   constants.MinimumGroupSize,
		MaximumGroupSize:   constants.MaximumGroupSize,
	}
}

// fill in any unset limit
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaximumDepth <= 0 {
		l.MaximumDepth = d.MaximumDepth
	}
	if 0 == l.MinimumSplitAmount {
		l.MinimumSplitAmount = d.MinimumSplitAmount
	}
	if l.MaximumSplitParts <= 0 {
		l.MaximumSplitParts = d.MaximumSplitParts
	}
	if l.MinimumGroupSize <= 0 {
		l.MinimumGroupSize = d.MinimumGroupSize
	}
	if l.MaximumGroupSize <= 0 {
		l.MaximumGroupSize = d.MaximumGroupSize
	}
	return l
}

// Parameters - everything the engine needs
//
// Sequencer may be nil, ids are then counted in the database inside
// the operation transaction
type Parameters struct {
	Database   *storage.Database
	Membership Membership
	Emitter    lineage.Emitter
	Sequencer  identifier.Sequencer
	Salt       identifier.Salt
	Limits     Limits
	Clock      func() time.Time
}

// Engine - applies lifecycle operations to the asset store
type Engine struct {
	log        *logger.L
	database   *storage.Database
	journal    *lineage.Journal
	membership Membership
	emitter    lineage.Emitter
	sequencer  identifier.Sequencer
	salt       identifier.Salt
	limits     Limits
	clock      func() time.Time
	guard      Guard
}

// New - create an engine
func New(log *logger.L, parameters Parameters) (*Engine, error) {
	if nil == parameters.Database {
		return nil, fault.DatabaseIsNotSet
	}
	if nil == parameters.Membership {
		return nil, fault.Detail(fault.MissingParameters, "membership")
	}

	clock := parameters.Clock
	if nil == clock {
		clock = time.Now
	}

	e := &Engine{
		log:        log,
		database:   parameters.Database,
		journal:    lineage.NewJournal(parameters.Database.Pool.Events, parameters.Database.Pool.EventCounts),
		membership: parameters.Membership,
		emitter:    parameters.Emitter,
		sequencer:  parameters.Sequencer,
		salt:       parameters.Salt,
		limits:     parameters.Limits.withDefaults(),
		clock:      clock,
	}
	log.Infof("limits: %+v", e.limits)
	return e, nil
}

// Limits - the limits in force
func (e *Engine) Limits() Limits {
	return e.limits
}

// Journal - the persisted event stream
func (e *Engine) Journal() *lineage.Journal {
	return e.journal
}

// Operation - one lifecycle operation
type Operation interface {
	Kind() asset.Operation
	apply(s *session) ([]asset.Identifier, error)
}

// Result - the assets an operation touched
//
// assets created by the operation are listed first
type Result struct {
	Operation asset.Operation    `json:"operation"`
	Affected  []asset.Identifier `json:"affected"`
}

// Batch - operations applied together by one caller
type Batch struct {
	Namespace  asset.Namespace
	Caller     string
	Operations []Operation

	// Summarise - optional, extra events journalled with the batch
	// after every operation has succeeded
	Summarise func(results []Result) []lineage.Event
}

// Execute - apply operations as one all-or-nothing unit
func (e *Engine) Execute(ns asset.Namespace, caller string, operations ...Operation) ([]Result, error) {
	return e.Run(Batch{
		Namespace:  ns,
		Caller:     caller,
		Operations: operations,
	})
}

// Run - apply a batch as one all-or-nothing unit
func (e *Engine) Run(batch Batch) ([]Result, error) {
	leave, err := e.guard.Enter()
	if nil != err {
		return nil, err
	}
	defer leave()

	if err := batch.Namespace.Validate(); nil != err {
		return nil, err
	}
	if "" == batch.Caller {
		return nil, fault.Detail(fault.MissingParameters, "caller")
	}
	if 0 == len(batch.Operations) {
		return nil, fault.EmptyRequest
	}
	if !e.membership.IsMember(batch.Namespace, batch.Caller) {
		return nil, fault.Detail(fault.UnauthorizedAccess, "caller: %q  namespace: %q", batch.Caller, batch.Namespace)
	}

	trx, err := e.database.NewDBTransaction()
	if nil != err {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	s := e.newSession(trx, batch.Namespace, batch.Caller)

	results := make([]Result, 0, len(batch.Operations))
	for _, op := range batch.Operations {
		if nil == op {
			return nil, fault.EmptyRequest
		}
		affected, err := op.apply(s)
		if nil != err {
			e.log.Debugf("%s: %s by: %q  error: %s", batch.Namespace, op.Kind(), batch.Caller, err)
			return nil, err
		}
		results = append(results, Result{
			Operation: op.Kind(),
			Affected:  affected,
		})
	}

	events := s.events
	if nil != batch.Summarise {
		events = append(events, batch.Summarise(results)...)
	}
	records, err := e.journal.Stage(trx, batch.Namespace, s.now, events)
	if nil != err {
		return nil, err
	}

	err = trx.Commit()
	committed = true
	if nil != err {
		e.log.Criticalf("commit failed: %s", err)
		return nil, err
	}

	for _, r := range results {
		e.log.Infof("%s: %s by: %q  affected: %v", batch.Namespace, r.Operation, batch.Caller, r.Affected)
	}
	if nil != e.emitter {
		e.emitter.Emit(records)
	}
	return results, nil
}

// single operation with the affected ids
func (e *Engine) one(ns asset.Namespace, caller string, op Operation) ([]asset.Identifier, error) {
	results, err := e.Execute(ns, caller, op)
	if nil != err {
		return nil, err
	}
	return results[0].Affected, nil
}

// Create - create a new asset, returns its id
func (e *Engine) Create(ns asset.Namespace, caller string, op Create) (asset.Identifier, error) {
	affected, err := e.one(ns, caller, &op)
	if nil != err {
		return asset.Identifier{}, err
	}
	return affected[0], nil
}

// Update - change location, amount or data of an asset
func (e *Engine) Update(ns asset.Namespace, caller string, op Update) error {
	_, err := e.one(ns, caller, &op)
	return err
}

// Transfer - hand an asset to a new owner
func (e *Engine) Transfer(ns asset.Namespace, caller string, op Transfer) error {
	_, err := e.one(ns, caller, &op)
	return err
}

// Transform - retire an asset in favour of a new one, returns the new id
func (e *Engine) Transform(ns asset.Namespace, caller string, op Transform) (asset.Identifier, error) {
	affected, err := e.one(ns, caller, &op)
	if nil != err {
		return asset.Identifier{}, err
	}
	return affected[0], nil
}

// Split - divide an asset, returns the ids of the parts in order
func (e *Engine) Split(ns asset.Namespace, caller string, op Split) ([]asset.Identifier, error) {
	affected, err := e.one(ns, caller, &op)
	if nil != err {
		return nil, err
	}
	return affected[:len(affected)-1], nil
}

// Group - combine assets into a composite, returns the composite id
func (e *Engine) Group(ns asset.Namespace, caller string, op Group) (asset.Identifier, error) {
	affected, err := e.one(ns, caller, &op)
	if nil != err {
		return asset.Identifier{}, err
	}
	return affected[0], nil
}

// Ungroup - reactivate the components of a composite
func (e *Engine) Ungroup(ns asset.Namespace, caller string, op Ungroup) error {
	_, err := e.one(ns, caller, &op)
	return err
}

// Inactivate - retire an asset for good
func (e *Engine) Inactivate(ns asset.Namespace, caller string, op Inactivate) error {
	_, err := e.one(ns, caller, &op)
	return err
}
