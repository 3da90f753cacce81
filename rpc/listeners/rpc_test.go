// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/fixtures"
	"github.com/bitmark-inc/lineaged/rpc/certificate"
	"github.com/bitmark-inc/lineaged/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func randomListen() string {
	return fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
}

func newServer(t *testing.T) *rpc.Server {
	s := rpc.NewServer()
	require.NoError(t, s.Register(Add{}), "register")
	return s
}

func call(t *testing.T, conn net.Conn) {
	client := jsonrpc.NewClient(conn)
	defer client.Close()

	arg := AddArg{A: 2, B: 5}
	var reply int
	err := client.Call("Add.Add", &arg, &reply)
	assert.NoError(t, err, "call")
	assert.Equal(t, arg.A+arg.B, reply, "result")
}

func TestRpcListenerServe(t *testing.T) {
	listen := randomListen()
	count := counter.Counter(0)

	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 5,
			Listen:             []string{listen},
		},
		logger.New(fixtures.LogCategory),
		&count,
		newServer(t),
		nil,
	)
	require.NoError(t, err, "new")
	require.NoError(t, l.Serve(), "serve")
	defer l.Close()

	conn, err := net.Dial("tcp", listen)
	require.NoError(t, err, "dial")
	call(t, conn)
}

func TestRpcListenerServeTLS(t *testing.T) {
	dir := t.TempDir()
	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")
	require.NoError(t, certificate.Generate("test", cer, key, []string{"127.0.0.1"}), "generate")
	tlsConfig, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	require.NoError(t, err, "certificate")

	listen := randomListen()
	count := counter.Counter(0)
	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 5,
			Listen:             []string{listen},
		},
		logger.New(fixtures.LogCategory),
		&count,
		newServer(t),
		tlsConfig,
	)
	require.NoError(t, err, "new")
	require.NoError(t, l.Serve(), "serve")
	defer l.Close()

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err, "dial")
	call(t, conn)
}

func TestRpcListenerConnectionLimit(t *testing.T) {
	listen := randomListen()
	count := counter.Counter(0)

	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 1,
			Listen:             []string{listen},
		},
		logger.New(fixtures.LogCategory),
		&count,
		newServer(t),
		nil,
	)
	require.NoError(t, err, "new")
	require.NoError(t, l.Serve(), "serve")
	defer l.Close()

	first, err := net.Dial("tcp", listen)
	require.NoError(t, err, "first dial")
	defer first.Close()
	assert.Eventually(t, func() bool { return 1 == count.Uint64() }, time.Second, 10*time.Millisecond, "first counted")

	second, err := net.Dial("tcp", listen)
	require.NoError(t, err, "second dial")
	defer second.Close()

	_ = second.SetReadDeadline(time.Now().Add(time.Second))
	buffer := make([]byte, 1)
	_, err = second.Read(buffer)
	assert.Error(t, err, "second connection closed by server")
	assert.Equal(t, uint64(1), count.Uint64(), "count")
}

func TestRpcListenerConfiguration(t *testing.T) {
	count := counter.Counter(0)
	s := rpc.NewServer()

	testData := []struct {
		configuration listeners.RPCConfiguration
		err           error
	}{
		{listeners.RPCConfiguration{MaximumConnections: 0, Listen: []string{randomListen()}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 1}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"*:2150"}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"127.0.0.1:99999"}}, fault.InvalidPortNumber},
	}

	for i, d := range testData {
		_, err := listeners.NewRPC(&d.configuration, logger.New(fixtures.LogCategory), &count, s, nil)
		assert.True(t, errors.Is(err, d.err), "%d: error: %v", i, err)
	}
}
