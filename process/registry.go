// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package process - configured business processes and the lifecycle
// action each one performs
//
// a process is addressed by (namespace, process id) and accepts a
// submission only for its listed nature and stage ids
package process

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
)

// Configuration - one process from the configuration file
type Configuration struct {
	Namespace string   `gluamapper:"namespace" json:"namespace"`
	Id        string   `gluamapper:"id" json:"id"`
	Action    string   `gluamapper:"action" json:"action"`
	Active    bool     `gluamapper:"active" json:"active"`
	Natures   []string `gluamapper:"natures" json:"natures"`
	Stages    []string `gluamapper:"stages" json:"stages"`
}

// Definition - a registered process
type Definition struct {
	Id      string
	Action  ActionKind
	Active  bool
	Natures map[string]bool
	Stages  map[string]bool
}

type processKey struct {
	namespace asset.Namespace
	id        string
}

// Registry - all registered processes
type Registry struct {
	sync.RWMutex
	processes map[processKey]*Definition
}

// New - an empty registry
func New() *Registry {
	return &Registry{
		processes: make(map[processKey]*Definition),
	}
}

// NewFromConfiguration - a registry holding the configured processes
func NewFromConfiguration(configuration []Configuration) (*Registry, error) {
	r := New()
	for _, c := range configuration {
		action, err := ParseActionKind(c.Action)
		if nil != err {
			return nil, err
		}
		if err := r.Register(asset.Namespace(c.Namespace), c.Id, action, c.Active, c.Natures, c.Stages); nil != err {
			return nil, err
		}
	}
	return r, nil
}

// Register - add or replace a process
//
// natures and stages map to true when active
func (r *Registry) Register(ns asset.Namespace, id string, action ActionKind, active bool, natures []string, stages []string) error {
	if err := ns.Validate(); nil != err {
		return err
	}
	if "" == id || 0 == len(natures) || 0 == len(stages) {
		return fault.Detail(fault.MissingParameters, "process: %q", id)
	}

	d := &Definition{
		Id:      id,
		Action:  action,
		Active:  active,
		Natures: make(map[string]bool, len(natures)),
		Stages:  make(map[string]bool, len(stages)),
	}
	for _, n := range natures {
		d.Natures[n] = true
	}
	for _, s := range stages {
		d.Stages[s] = true
	}

	r.Lock()
	r.processes[processKey{ns, id}] = d
	r.Unlock()
	return nil
}

// SetActive - activate or suspend a process
func (r *Registry) SetActive(ns asset.Namespace, id string, active bool) error {
	r.Lock()
	defer r.Unlock()

	d, ok := r.processes[processKey{ns, id}]
	if !ok {
		return fault.Detail(fault.TransactionValidationFailed, "process not found: %q", id)
	}
	d.Active = active
	return nil
}

// ValidateForSubmission - can a transaction be submitted to this
// process, nature and stage
//
// on false the reason explains the rejection
func (r *Registry) ValidateForSubmission(ns asset.Namespace, processId string, natureId string, stageId string) (bool, string) {
	r.RLock()
	defer r.RUnlock()

	d, ok := r.processes[processKey{ns, processId}]
	switch {
	case !ok:
		return false, fmt.Sprintf("process not found: %q", processId)
	case !d.Active:
		return false, fmt.Sprintf("process not active: %q", processId)
	}

	nature, ok := d.Natures[natureId]
	switch {
	case !ok:
		return false, fmt.Sprintf("nature not found: %q", natureId)
	case !nature:
		return false, fmt.Sprintf("nature not active: %q", natureId)
	}

	stage, ok := d.Stages[stageId]
	switch {
	case !ok:
		return false, fmt.Sprintf("stage not found: %q", stageId)
	case !stage:
		return false, fmt.Sprintf("stage not active: %q", stageId)
	}
	return true, ""
}

// Action - the declared action of a process
func (r *Registry) Action(ns asset.Namespace, processId string, natureId string, stageId string) (ActionKind, error) {
	r.RLock()
	defer r.RUnlock()

	d, ok := r.processes[processKey{ns, processId}]
	if !ok {
		return UnknownAction, fault.Detail(fault.TransactionValidationFailed, "process not found: %q", processId)
	}
	return d.Action, nil
}
