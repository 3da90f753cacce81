// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/constants"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/identifier"
	"github.com/bitmark-inc/lineaged/storage"
)

func fixedSalt() uint64 {
	return 42
}

func TestUniqueWithinNamespace(t *testing.T) {
	g := identifier.New(identifier.NewMemorySequencer(), fixedSalt)

	const n = 1000
	seen := make(map[asset.Identifier]struct{}, n)
	for i := 0; i < n; i += 1 {
		id, err := g.Next("ns", "caller", nil)
		require.NoError(t, err, "next")
		_, ok := seen[id]
		require.False(t, ok, "duplicate id at: %d", i)
		seen[id] = struct{}{}
	}
}

func TestNamespacesDoNotCollide(t *testing.T) {
	seq := identifier.NewMemorySequencer()
	g := identifier.New(seq, fixedSalt)

	a, err := g.Next("ns-a", "caller", nil)
	require.NoError(t, err, "ns-a")
	b, err := g.Next("ns-b", "caller", nil)
	require.NoError(t, err, "ns-b")
	assert.NotEqual(t, a, b, "same count and caller in two namespaces")

	countA, _ := seq.Next("ns-a")
	countB, _ := seq.Next("ns-b")
	assert.Equal(t, uint64(2), countA, "ns-a count")
	assert.Equal(t, uint64(2), countB, "ns-b count")
}

func TestDeriveInputs(t *testing.T) {
	base := identifier.Derive("ns", 1, "caller", 7)
	assert.Equal(t, base, identifier.Derive("ns", 1, "caller", 7), "not deterministic")
	assert.NotEqual(t, base, identifier.Derive("ns", 2, "caller", 7), "count ignored")
	assert.NotEqual(t, base, identifier.Derive("ns", 1, "other", 7), "caller ignored")
	assert.NotEqual(t, base, identifier.Derive("ns", 1, "caller", 8), "salt ignored")

	// length prefixes keep field boundaries apart
	assert.NotEqual(t, identifier.Derive("ab", 1, "c", 7), identifier.Derive("a", 1, "bc", 7), "boundary")
}

func TestTakenIdsAreSkipped(t *testing.T) {
	g := identifier.New(identifier.NewMemorySequencer(), fixedSalt)
	first := identifier.Derive("ns", 1, "caller", fixedSalt())

	id, err := g.Next("ns", "caller", func(candidate asset.Identifier) bool {
		return candidate == first
	})
	require.NoError(t, err, "next")
	assert.Equal(t, identifier.Derive("ns", 2, "caller", fixedSalt()), id, "second count")
}

func TestTooManyCollisions(t *testing.T) {
	g := identifier.New(identifier.NewMemorySequencer(), fixedSalt)
	attempts := 0
	_, err := g.Next("ns", "caller", func(asset.Identifier) bool {
		attempts += 1
		return true
	})
	assert.True(t, errors.Is(err, fault.IdentifierCollision), "error: %v", err)
	assert.Equal(t, constants.MaximumIdentifierAttempts, attempts, "attempts")
}

func TestPoolSequencer(t *testing.T) {
	db, err := storage.OpenMemory()
	require.NoError(t, err, "open")
	defer db.Close()

	trx, err := db.NewDBTransaction()
	require.NoError(t, err, "begin")
	seq := identifier.NewPoolSequencer(trx, db.Pool.Counters)
	for i := uint64(1); i <= 3; i += 1 {
		n, err := seq.Next("ns")
		require.NoError(t, err, "next")
		assert.Equal(t, i, n, "count")
	}
	trx.Abort()

	// aborted counts are not kept
	trx, err = db.NewDBTransaction()
	require.NoError(t, err, "begin again")
	seq = identifier.NewPoolSequencer(trx, db.Pool.Counters)
	n, err := seq.Next("ns")
	require.NoError(t, err, "next after abort")
	assert.Equal(t, uint64(1), n, "count after abort")
	require.NoError(t, trx.Commit(), "commit")

	stored, ok := db.Pool.Counters.GetN(asset.NamespaceKey("ns"))
	assert.True(t, ok, "stored")
	assert.Equal(t, uint64(1), stored, "stored count")
}
