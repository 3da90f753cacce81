// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/background"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/fixtures"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/publish"
	"github.com/bitmark-inc/logger"
)

const broadcastAddress = "127.0.0.1:22140"

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestKeyPair(t *testing.T) {
	dir := t.TempDir()
	public := filepath.Join(dir, "publish.public")
	private := filepath.Join(dir, "publish.private")

	require.NoError(t, publish.MakeKeyPair(public, private), "make")

	publicKey, err := publish.ReadPublicKeyFile(public)
	assert.NoError(t, err, "read public")
	assert.Equal(t, 32, len(publicKey), "public length")

	privateKey, err := publish.ReadPrivateKeyFile(private)
	assert.NoError(t, err, "read private")
	assert.Equal(t, 32, len(privateKey), "private length")

	_, err = publish.ReadPrivateKeyFile(public)
	assert.True(t, errors.Is(err, fault.InvalidKeyFile), "public read as private: %v", err)

	err = publish.MakeKeyPair(public, private)
	assert.True(t, errors.Is(err, fault.KeyFileAlreadyExists), "overwrite: %v", err)
}

func TestParseKey(t *testing.T) {
	_, _, err := publish.ParseKey("PUBLIC:abcd")
	assert.Equal(t, fault.InvalidKeyFile, err, "short")

	_, _, err = publish.ParseKey("SECRET:00")
	assert.Equal(t, fault.InvalidKeyFile, err, "tag")

	key, private, err := publish.ParseKey(" PRIVATE:000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f\n")
	assert.NoError(t, err, "valid")
	assert.True(t, private, "private")
	assert.Equal(t, byte(0x1f), key[31], "last byte")
}

func TestBadAddress(t *testing.T) {
	_, err := publish.New(logger.New(fixtures.LogCategory), &publish.Configuration{
		Broadcast: []string{"localhost:2140"},
	})
	assert.True(t, errors.Is(err, fault.InvalidIpAddress), "error: %v", err)
}

func TestBroadcast(t *testing.T) {
	b, err := publish.New(logger.New(fixtures.LogCategory), &publish.Configuration{
		Broadcast: []string{broadcastAddress},
	})
	require.NoError(t, err, "new")

	bg := background.Start(background.Processes{b}, nil)
	defer bg.Stop()

	subscriber, err := zmq.NewSocket(zmq.SUB)
	require.NoError(t, err, "socket")
	defer subscriber.Close()
	require.NoError(t, subscriber.SetRcvtimeo(100*time.Millisecond), "timeout")
	require.NoError(t, subscriber.SetSubscribe(string(fixtures.Namespace)), "subscribe")
	require.NoError(t, subscriber.Connect("tcp://"+broadcastAddress), "connect")

	record := lineage.Record{
		Namespace: fixtures.Namespace,
		Sequence:  7,
		Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Kind:      lineage.AssetInactivatedKind,
		Event: &lineage.AssetInactivated{
			AssetId:  fixtures.Id("A"),
			Location: "bakery",
		},
	}

	// a new subscription takes a moment to reach the publisher
	var message [][]byte
	for i := 0; i < 50 && nil == message; i += 1 {
		b.Emit([]lineage.Record{record})
		message, _ = subscriber.RecvMessageBytes(0)
	}
	require.Equal(t, 3, len(message), "parts")
	assert.Equal(t, string(fixtures.Namespace), string(message[0]), "topic")
	assert.Equal(t, "AssetInactivated", string(message[1]), "kind")

	var received lineage.Record
	require.NoError(t, json.Unmarshal(message[2], &received), "decode")
	assert.Equal(t, record.Sequence, received.Sequence, "sequence")
	assert.Equal(t, record.Event, received.Event, "event")
}
