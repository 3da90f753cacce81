// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/command/lineage-cli/rpccalls"
	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/fixtures"
	"github.com/bitmark-inc/lineaged/mocks"
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/lineaged/rpc/node"
	"github.com/bitmark-inc/lineaged/rpc/transaction"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type controller struct {
	sync.Mutex
	paused bool
}

func (c *controller) Pause() {
	c.Lock()
	c.paused = true
	c.Unlock()
}

func (c *controller) Resume() {
	c.Lock()
	c.paused = false
	c.Unlock()
}

func (c *controller) IsPaused() bool {
	c.Lock()
	defer c.Unlock()
	return c.paused
}

// serve the node and transaction services on a loopback port
func setupServer(t *testing.T, submitter transaction.Submitter) string {
	log := logger.New(fixtures.LogCategory)

	count := counter.Counter(0)
	server := rpc.NewServer()
	require.NoError(t, server.Register(node.New(log, time.Now(), "1.0", &count, &controller{})), "node")
	require.NoError(t, server.Register(transaction.New(log, submitter)), "transaction")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "listen")
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if nil != err {
				return
			}
			go server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	return listener.Addr().String()
}

func TestInfoPauseResume(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	address := setupServer(t, mocks.NewMockSubmitter(ctl))

	client, err := rpccalls.NewClient(address, nil, false, nil)
	require.NoError(t, err, "connect")
	defer client.Close()

	info, err := client.GetInfo()
	require.NoError(t, err, "info")
	assert.Equal(t, "normal", info.Mode, "mode")
	assert.Equal(t, "1.0", info.Version, "version")

	paused, err := client.Pause()
	require.NoError(t, err, "pause")
	assert.True(t, paused.Paused, "paused")

	info, err = client.GetInfo()
	require.NoError(t, err, "info")
	assert.Equal(t, "paused", info.Mode, "mode after pause")

	resumed, err := client.Resume()
	require.NoError(t, err, "resume")
	assert.False(t, resumed.Paused, "resumed")
}

func TestSubmit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	id, err := asset.IdentifierFromName("ASSET-1")
	require.NoError(t, err, "identifier")

	request := router.Request{
		Namespace: fixtures.Namespace,
		Caller:    "O1",
		ProcessId: "harvest",
		NatureId:  "grain",
		StageId:   "field",
		Amount:    50,
	}

	submitter := mocks.NewMockSubmitter(ctl)
	submitter.EXPECT().Submit(request).Return([]asset.Identifier{id}, nil).Times(1)
	submitter.EXPECT().SubmitBatch([]router.Request{request, request}).Return([][]asset.Identifier{{id}, {id}}, nil).Times(1)

	address := setupServer(t, submitter)

	verbose := &bytes.Buffer{}
	client, err := rpccalls.NewClient(address, nil, true, verbose)
	require.NoError(t, err, "connect")
	defer client.Close()

	reply, err := client.Submit(&request)
	require.NoError(t, err, "submit")
	assert.Equal(t, []asset.Identifier{id}, reply.AssetIds, "ids")
	assert.Contains(t, verbose.String(), "Submit Request", "verbose output")

	batch, err := client.SubmitBatch([]router.Request{request, request})
	require.NoError(t, err, "batch")
	assert.Equal(t, [][]asset.Identifier{{id}, {id}}, batch.AssetIds, "batch ids")
}

func TestConnectFails(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "listen")
	address := listener.Addr().String()
	listener.Close()

	_, err = rpccalls.NewClient(address, nil, false, nil)
	assert.Error(t, err, "connect to closed port")
}
