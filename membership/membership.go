// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package membership - which identities may act in which namespace
package membership

import (
	"sort"
	"strings"
	"sync"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
)

// NamespaceConfiguration - one namespace from the configuration file
type NamespaceConfiguration struct {
	Name    string   `gluamapper:"name" json:"name"`
	Members []string `gluamapper:"members" json:"members"`
}

// Directory - the members of every namespace
type Directory struct {
	sync.RWMutex
	members map[asset.Namespace]map[string]struct{}
}

// New - an empty directory
func New() *Directory {
	return &Directory{
		members: make(map[asset.Namespace]map[string]struct{}),
	}
}

// NewFromConfiguration - a directory holding the configured namespaces
func NewFromConfiguration(configuration []NamespaceConfiguration) (*Directory, error) {
	d := New()
	for _, c := range configuration {
		if err := d.Add(asset.Namespace(c.Name), c.Members...); nil != err {
			return nil, err
		}
	}
	return d, nil
}

// Add - make identities members of a namespace, creating it if necessary
func (d *Directory) Add(ns asset.Namespace, identities ...string) error {
	if err := ns.Validate(); nil != err {
		return err
	}

	d.Lock()
	defer d.Unlock()

	m, ok := d.members[ns]
	if !ok {
		m = make(map[string]struct{})
		d.members[ns] = m
	}
	for _, identity := range identities {
		if "" == strings.TrimSpace(identity) {
			return fault.Detail(fault.MissingParameters, "blank member in namespace: %q", ns)
		}
		m[identity] = struct{}{}
	}
	return nil
}

// Remove - revoke membership, the namespace itself remains
func (d *Directory) Remove(ns asset.Namespace, identity string) {
	d.Lock()
	defer d.Unlock()

	if m, ok := d.members[ns]; ok {
		delete(m, identity)
	}
}

// IsMember - true if identity may act in the namespace
func (d *Directory) IsMember(ns asset.Namespace, identity string) bool {
	d.RLock()
	defer d.RUnlock()

	m, ok := d.members[ns]
	if !ok {
		return false
	}
	_, ok = m[identity]
	return ok
}

// Namespaces - all known namespaces in sorted order
func (d *Directory) Namespaces() []asset.Namespace {
	d.RLock()
	defer d.RUnlock()

	names := make([]asset.Namespace, 0, len(d.members))
	for ns := range d.members {
		names = append(names, ns)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
