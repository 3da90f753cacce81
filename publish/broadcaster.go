// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast committed lineage events on ZeroMQ
//
// each record is one multipart message:
//   [namespace, kind, JSON record]
// so subscribers can filter by namespace prefix
package publish

import (
	"encoding/json"
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/util"
	"github.com/bitmark-inc/logger"
)

const (
	zapDomain = "lineage"
	queueSize = 1000
)

// Configuration - publishing section of the configuration file
//
// keys are optional, without them the sockets are not encrypted
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// to ensure only one auth start
var oneTimeAuthStart sync.Once

// Broadcaster - a lineage.Emitter sending records to subscribers
type Broadcaster struct {
	log     *logger.L
	socket4 *zmq.Socket
	socket6 *zmq.Socket
	queue   chan lineage.Record
}

// New - bind the broadcast sockets
func New(log *logger.L, configuration *Configuration) (*Broadcaster, error) {
	connections, err := util.NewConnections(configuration.Broadcast)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return nil, err
	}

	var privateKey, publicKey []byte
	if "" != configuration.PrivateKey {
		privateKey, err = ReadPrivateKeyFile(configuration.PrivateKey)
		if nil != err {
			log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
			return nil, err
		}
		publicKey, err = ReadPublicKeyFile(configuration.PublicKey)
		if nil != err {
			log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
			return nil, err
		}
		oneTimeAuthStart.Do(func() {
			zmq.AuthSetVerbose(false)
			err = zmq.AuthStart()
		})
		if nil != err {
			return nil, err
		}
	}

	b := &Broadcaster{
		log:   log,
		queue: make(chan lineage.Record, queueSize),
	}

	for i, c := range connections {
		bindTo, v6 := c.CanonicalIPandPort("tcp://")
		socket := &b.socket4
		if v6 {
			socket = &b.socket6
		}
		if nil == *socket {
			*socket, err = newServerSocket(privateKey, publicKey, v6)
			if nil != err {
				b.close()
				return nil, err
			}
		}
		if err := (*socket).Bind(bindTo); nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, bindTo, err)
			b.close()
			return nil, err
		}
		log.Infof("bind[%d]: %q  IPv6: %t", i, bindTo, v6)
	}
	return b, nil
}

// a PUB socket, encrypted when a key is given
func newServerSocket(privateKey []byte, publicKey []byte, v6 bool) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return nil, err
	}

	if nil != privateKey {
		// allow any client to connect
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)
		socket.SetCurveServer(1)
		socket.SetCurveSecretkey(string(privateKey))
		socket.SetZapDomain(zapDomain)
		socket.SetIdentity(string(publicKey))
	}

	socket.SetIpv6(v6)
	socket.SetLinger(0)
	return socket, nil
}

// Emit - queue records for sending, never blocks the caller
func (b *Broadcaster) Emit(records []lineage.Record) {
	for _, r := range records {
		select {
		case b.queue <- r:
		default:
			b.log.Warnf("queue full, dropped: %s  sequence: %d", r.Kind, r.Sequence)
		}
	}
}

// Run - send queued records until shutdown
func (b *Broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := b.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case record := <-b.queue:
			message, err := frames(record)
			if nil != err {
				log.Errorf("encode: %s  sequence: %d  error: %s", record.Kind, record.Sequence, err)
				continue
			}
			log.Debugf("sending: %s  namespace: %s  sequence: %d", record.Kind, record.Namespace, record.Sequence)
			b.send(b.socket4, message)
			b.send(b.socket6, message)
		}
	}
	b.close()
	log.Info("stopped")
}

// the message parts of one record
func frames(record lineage.Record) ([][]byte, error) {
	data, err := json.Marshal(record)
	if nil != err {
		return nil, err
	}
	return [][]byte{
		[]byte(record.Namespace),
		[]byte(record.Kind.String()),
		data,
	}, nil
}

func (b *Broadcaster) send(socket *zmq.Socket, message [][]byte) {
	if nil == socket {
		return
	}
	last := len(message) - 1
	for i, p := range message {
		flags := zmq.DONTWAIT
		if i != last {
			flags |= zmq.SNDMORE
		}
		if _, err := socket.SendBytes(p, flags); nil != err {
			b.log.Errorf("send error: %s", err)
			return
		}
	}
}

func (b *Broadcaster) close() {
	if nil != b.socket4 {
		b.socket4.Close()
		b.socket4 = nil
	}
	if nil != b.socket6 {
		b.socket6.Close()
		b.socket6 = nil
	}
}

// check the broadcaster satisfies the emitter interface
var _ lineage.Emitter = (*Broadcaster)(nil)
