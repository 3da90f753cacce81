// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/constants"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/util"
)

// Salt - a source of salt values
type Salt func() uint64

// ClockSalt - the current time in nanoseconds
func ClockSalt() uint64 {
	return uint64(time.Now().UnixNano())
}

// Generator - produce new identifiers
type Generator struct {
	sequencer Sequencer
	salt      Salt
}

// New - a generator over a sequencer, nil salt selects ClockSalt
func New(sequencer Sequencer, salt Salt) *Generator {
	if nil == salt {
		salt = ClockSalt
	}
	return &Generator{
		sequencer: sequencer,
		salt:      salt,
	}
}

// Next - a new identifier for the namespace
//
// taken reports identifiers that are already in use, these are
// skipped and another count drawn
func (g *Generator) Next(ns asset.Namespace, caller string, taken func(asset.Identifier) bool) (asset.Identifier, error) {
	for i := 0; i < constants.MaximumIdentifierAttempts; i += 1 {
		count, err := g.sequencer.Next(ns)
		if nil != err {
			return asset.Identifier{}, err
		}
		id := Derive(ns, count, caller, g.salt())
		if id.IsZero() || (nil != taken && taken(id)) {
			continue
		}
		return id, nil
	}
	return asset.Identifier{}, fault.Detail(fault.IdentifierCollision, "namespace: %q  caller: %q", ns, caller)
}

// Derive - the identifier for one set of inputs
func Derive(ns asset.Namespace, count uint64, caller string, salt uint64) asset.Identifier {
	buffer := util.AppendString(nil, string(ns))
	buffer = util.AppendVarint64(buffer, count)
	buffer = util.AppendString(buffer, caller)
	buffer = util.AppendVarint64(buffer, salt)
	return asset.Identifier(sha3.Sum256(buffer))
}
