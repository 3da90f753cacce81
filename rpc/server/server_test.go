// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/fixtures"
	"github.com/bitmark-inc/lineaged/identifier"
	"github.com/bitmark-inc/lineaged/lifecycle"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/membership"
	"github.com/bitmark-inc/lineaged/process"
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/lineaged/rpc/assets"
	"github.com/bitmark-inc/lineaged/rpc/events"
	"github.com/bitmark-inc/lineaged/rpc/node"
	"github.com/bitmark-inc/lineaged/rpc/server"
	"github.com/bitmark-inc/lineaged/rpc/transaction"
	"github.com/bitmark-inc/lineaged/storage"
	"github.com/bitmark-inc/logger"
)

const ns = fixtures.Namespace

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// a daemon without the network listener, served over a pipe
func setupClient(t *testing.T) *rpc.Client {
	log := logger.New(fixtures.LogCategory)

	db, err := storage.OpenMemory()
	require.NoError(t, err, "open database")
	t.Cleanup(db.Close)

	directory := membership.New()
	require.NoError(t, directory.Add(ns, "O1", "O2"), "members")

	registry := process.New()
	require.NoError(t, registry.Register(ns, "harvest", process.CreateAsset, true, []string{"grain"}, []string{"field"}), "harvest")
	require.NoError(t, registry.Register(ns, "ship", process.TransferAsset, true, []string{"grain"}, []string{"field"}), "ship")

	e, err := lifecycle.New(log, lifecycle.Parameters{
		Database:   db,
		Membership: directory,
		Sequencer:  identifier.NewMemorySequencer(),
		Clock:      fixtures.Clock(),
	})
	require.NoError(t, err, "engine")

	r, err := router.New(log, e, registry, nil)
	require.NoError(t, err, "router")

	count := counter.Counter(0)
	s, err := server.Create(log, "1.0", &count, e, r)
	require.NoError(t, err, "create")

	serverSide, clientSide := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverSide))

	client := jsonrpc.NewClient(clientSide)
	t.Cleanup(func() { client.Close() })
	return client
}

func harvest(t *testing.T, client *rpc.Client, name string) asset.Identifier {
	req := router.Request{
		Namespace:  ns,
		Caller:     "O1",
		ProcessId:  "harvest",
		NatureId:   "grain",
		StageId:    "field",
		AssetId:    fixtures.Id(name),
		Amount:     100,
		Location:   "field-7",
		DataHashes: []string{"hash-" + name},
	}
	var reply transaction.SubmitReply
	require.NoError(t, client.Call("Transaction.Submit", &req, &reply), "submit")
	require.Equal(t, 1, len(reply.AssetIds), "created")
	return reply.AssetIds[0]
}

func TestSubmitThenQuery(t *testing.T) {
	client := setupClient(t)
	a := harvest(t, client, "A")

	ship := router.Request{
		Namespace: ns,
		Caller:    "O1",
		ProcessId: "ship",
		NatureId:  "grain",
		StageId:   "field",
		AssetId:   a,
		NewOwner:  "O2",
		Location:  "port",
	}
	var submitted transaction.SubmitReply
	require.NoError(t, client.Call("Transaction.Submit", &ship, &submitted), "transfer")

	var got assets.GetReply
	err := client.Call("Assets.Get", &assets.Arguments{Namespace: ns, Id: a}, &got)
	require.NoError(t, err, "get")
	assert.Equal(t, "O2", got.Asset.Owner, "owner")
	assert.Equal(t, "port", got.Asset.Location, "location")
	assert.Equal(t, 0, got.Depth, "depth")

	var status assets.StatusReply
	err = client.Call("Assets.Status", &assets.Arguments{Namespace: ns, Id: a}, &status)
	require.NoError(t, err, "status")
	assert.True(t, status.Exists, "exists")
	assert.True(t, status.Active, "active")

	err = client.Call("Assets.Status", &assets.Arguments{Namespace: ns, Id: fixtures.Id("missing")}, &status)
	require.NoError(t, err, "status of unknown")
	assert.False(t, status.Exists, "unknown does not exist")
	assert.False(t, status.Active, "unknown is not active")

	err = client.Call("Assets.Get", &assets.Arguments{Namespace: ns, Id: fixtures.Id("missing")}, &got)
	assert.Contains(t, err.Error(), fault.AssetNotFound.Error(), "get unknown")
}

func TestEventsList(t *testing.T) {
	client := setupClient(t)
	harvest(t, client, "A")
	harvest(t, client, "B")

	var first events.ListReply
	err := client.Call("Events.List", &events.ListArguments{Namespace: ns, Start: 0, Count: 3}, &first)
	require.NoError(t, err, "first page")
	require.Equal(t, 3, len(first.Events), "page size")
	assert.Equal(t, uint64(1), first.Events[0].Sequence, "first sequence")
	assert.Equal(t, lineage.AssetCreatedKind, first.Events[0].Kind, "first kind")
	assert.Equal(t, uint64(4), first.NextStart, "cursor")
	assert.True(t, first.Total > 3, "total")

	var rest events.ListReply
	err = client.Call("Events.List", &events.ListArguments{Namespace: ns, Start: first.NextStart, Count: 100}, &rest)
	require.NoError(t, err, "rest")
	assert.Equal(t, first.Total, uint64(len(first.Events)+len(rest.Events)), "all events read")

	err = client.Call("Events.List", &events.ListArguments{Namespace: ns, Count: 101}, &rest)
	assert.Contains(t, err.Error(), fault.InvalidCount.Error(), "count too large")
}

func TestNodePauseResume(t *testing.T) {
	client := setupClient(t)

	var info node.InfoReply
	require.NoError(t, client.Call("Node.Info", &node.InfoArguments{}, &info), "info")
	assert.Equal(t, "normal", info.Mode, "mode")
	assert.Equal(t, "1.0", info.Version, "version")

	var mode node.ModeReply
	require.NoError(t, client.Call("Node.Pause", &node.InfoArguments{}, &mode), "pause")
	assert.True(t, mode.Paused, "paused")

	req := router.Request{Namespace: ns, Caller: "O1", ProcessId: "harvest", NatureId: "grain", StageId: "field"}
	var reply transaction.SubmitReply
	err := client.Call("Transaction.Submit", &req, &reply)
	require.Error(t, err, "submit while paused")
	assert.Equal(t, fault.RouterPaused.Error(), err.Error(), "paused error")

	require.NoError(t, client.Call("Node.Info", &node.InfoArguments{}, &info), "info")
	assert.Equal(t, "paused", info.Mode, "mode")

	require.NoError(t, client.Call("Node.Resume", &node.InfoArguments{}, &mode), "resume")
	assert.False(t, mode.Paused, "resumed")
	harvest(t, client, "A")
}
