// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package router - the single entry point that turns a process
// submission into a lifecycle operation
package router

import (
	"time"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/constants"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/lifecycle"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/metrics"
	"github.com/bitmark-inc/lineaged/mode"
	"github.com/bitmark-inc/lineaged/process"
	"github.com/bitmark-inc/logger"
)

// Processes - which processes may be submitted and what they do
type Processes interface {
	ValidateForSubmission(ns asset.Namespace, processId string, natureId string, stageId string) (bool, string)
	Action(ns asset.Namespace, processId string, natureId string, stageId string) (process.ActionKind, error)
}

// Router - dispatches requests to the lifecycle engine
type Router struct {
	log       *logger.L
	engine    *lifecycle.Engine
	processes Processes
	mode      *mode.Switch
	metrics   *metrics.Metrics
	guard     lifecycle.Guard
}

// New - create a router, metrics may be nil
func New(log *logger.L, engine *lifecycle.Engine, processes Processes, m *metrics.Metrics) (*Router, error) {
	if nil == engine {
		return nil, fault.Detail(fault.MissingParameters, "engine")
	}
	if nil == processes {
		return nil, fault.Detail(fault.MissingParameters, "processes")
	}
	m.SetPaused(false)
	return &Router{
		log:       log,
		engine:    engine,
		processes: processes,
		mode:      mode.New(log),
		metrics:   m,
	}, nil
}

// Pause - reject all submissions until resumed
func (r *Router) Pause() {
	r.mode.Set(mode.Paused)
	r.metrics.SetPaused(true)
}

// Resume - accept submissions again
func (r *Router) Resume() {
	r.mode.Set(mode.Normal)
	r.metrics.SetPaused(false)
}

// IsPaused - true while submissions are rejected
func (r *Router) IsPaused() bool {
	return r.mode.Is(mode.Paused)
}

// Submit - apply one request, returns the ids of all affected assets
func (r *Router) Submit(request Request) ([]asset.Identifier, error) {
	start := time.Now()
	action := process.UnknownAction

	affected, err := func() ([]asset.Identifier, error) {
		leave, err := r.enter()
		if nil != err {
			return nil, err
		}
		defer leave()

		op, a, err := r.resolve(&request)
		action = a
		if nil != err {
			return nil, err
		}

		results, err := r.engine.Run(lifecycle.Batch{
			Namespace:  request.Namespace,
			Caller:     request.Caller,
			Operations: []lifecycle.Operation{op},
			Summarise:  summarise(request.Caller, []string{request.ProcessId}),
		})
		if nil != err {
			return nil, err
		}
		return results[0].Affected, nil
	}()

	r.metrics.Observe(action.String(), start, len(affected), err)
	if nil != err {
		r.log.Warnf("%s: submit process: %q  by: %q  error: %s", request.Namespace, request.ProcessId, request.Caller, err)
		return nil, err
	}
	return affected, nil
}

// SubmitBatch - apply several requests of one namespace and caller as
// a single all-or-nothing unit
//
// returns the affected ids of each request in order
func (r *Router) SubmitBatch(requests []Request) ([][]asset.Identifier, error) {
	start := time.Now()
	total := 0

	affected, err := func() ([][]asset.Identifier, error) {
		leave, err := r.enter()
		if nil != err {
			return nil, err
		}
		defer leave()

		n := len(requests)
		if 0 == n {
			return nil, fault.EmptyRequest
		}
		if n > constants.MaximumBatchSize {
			return nil, fault.Detail(fault.BatchTooLarge, "requests: %d  maximum: %d", n, constants.MaximumBatchSize)
		}

		ns := requests[0].Namespace
		caller := requests[0].Caller
		operations := make([]lifecycle.Operation, n)
		processIds := make([]string, n)
		for i := range requests {
			request := &requests[i]
			if request.Namespace != ns || request.Caller != caller {
				return nil, fault.Detail(fault.MixedBatchNotAllowed, "request: %d", i)
			}
			op, _, err := r.resolve(request)
			if nil != err {
				return nil, fault.Detail(err, "request: %d", i)
			}
			operations[i] = op
			processIds[i] = request.ProcessId
		}

		results, err := r.engine.Run(lifecycle.Batch{
			Namespace:  ns,
			Caller:     caller,
			Operations: operations,
			Summarise:  summarise(caller, processIds),
		})
		if nil != err {
			return nil, err
		}

		affected := make([][]asset.Identifier, len(results))
		for i, result := range results {
			affected[i] = result.Affected
			total += len(result.Affected)
		}
		return affected, nil
	}()

	r.metrics.Observe("BATCH", start, total, err)
	if nil != err {
		r.log.Warnf("submit batch of: %d  error: %s", len(requests), err)
		return nil, err
	}
	return affected, nil
}

// the checks shared by all entry points
func (r *Router) enter() (func(), error) {
	leave, err := r.guard.Enter()
	if nil != err {
		return nil, err
	}
	if r.IsPaused() {
		leave()
		return nil, fault.RouterPaused
	}
	return leave, nil
}

// resolve - validate a request with the process collaborator and map
// it to an operation
func (r *Router) resolve(request *Request) (lifecycle.Operation, process.ActionKind, error) {
	if err := request.validate(); nil != err {
		return nil, process.UnknownAction, err
	}

	ok, reason := r.processes.ValidateForSubmission(request.Namespace, request.ProcessId, request.NatureId, request.StageId)
	if !ok {
		return nil, process.UnknownAction, fault.Detail(fault.TransactionValidationFailed, "%s", reason)
	}

	action, err := r.processes.Action(request.Namespace, request.ProcessId, request.NatureId, request.StageId)
	if nil != err {
		return nil, process.UnknownAction, err
	}

	op, err := request.operation(action)
	if nil != err {
		return nil, action, err
	}
	r.log.Debugf("%s: process: %q  action: %s", request.Namespace, request.ProcessId, action)
	return op, action, nil
}

// summarise - the aggregate audit events: one per operation and one
// per affected asset
func summarise(caller string, processIds []string) func([]lifecycle.Result) []lineage.Event {
	return func(results []lifecycle.Result) []lineage.Event {
		events := make([]lineage.Event, 0, len(results))
		for i, result := range results {
			events = append(events, &lineage.OperationExecuted{
				Operation: result.Operation,
				Caller:    caller,
				ProcessId: processIds[i],
				AssetIds:  result.Affected,
			})
			for _, id := range result.Affected {
				events = append(events, &lineage.AssetModified{
					AssetId:   id,
					Operation: result.Operation,
					Caller:    caller,
				})
			}
		}
		return events
	}
}
