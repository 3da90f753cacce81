// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/util"
	"github.com/bitmark-inc/logger"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// RPCConfiguration - configuration file data for RPC setup
//
// without a certificate connections are plain TCP
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Listener - accepts JSON-RPC connections, run as a background process
type Listener struct {
	sync.Mutex
	log            *logger.L
	count          *counter.Counter
	server         *rpc.Server
	maxConnections uint64
	tlsConfig      *tls.Config
	addresses      []string
	listeners      []net.Listener
	open           map[net.Conn]struct{}
	connections    sync.WaitGroup
}

// NewRPC - validate the configuration, tlsConfig may be nil
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
) (*Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.Detail(fault.MissingParameters, "maximum connections")
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.Detail(fault.MissingParameters, "listen")
	}

	addresses := make([]string, len(configuration.Listen))
	for i, listen := range configuration.Listen {
		c, err := util.CanonicalIPandPort(listen)
		if nil != err {
			log.Errorf("invalid %s listen: %q  error: %s", logName, listen, err)
			return nil, err
		}
		addresses[i] = c
	}

	return &Listener{
		log:            log,
		count:          count,
		server:         server,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		addresses:      addresses,
		open:           make(map[net.Conn]struct{}),
	}, nil
}

// Serve - start accepting on every address
func (r *Listener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for _, listen := range r.addresses {
		r.log.Infof("starting RPC server: %s  TLS: %t", listen, nil != r.tlsConfig)
		var l net.Listener
		var err error
		if nil == r.tlsConfig {
			l, err = net.Listen("tcp", listen)
		} else {
			l, err = tls.Listen("tcp", listen, r.tlsConfig)
		}
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			r.closeListeners()
			return err
		}
		r.listeners = append(r.listeners, l)
		go r.accept(l)
	}
	return nil
}

// Close - stop accepting and drop all open connections
func (r *Listener) Close() {
	r.Lock()
	r.closeListeners()
	for conn := range r.open {
		_ = conn.Close()
	}
	r.Unlock()
	r.connections.Wait()
}

func (r *Listener) closeListeners() {
	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}

// Run - serve until shutdown
func (r *Listener) Run(args interface{}, shutdown <-chan struct{}) {
	if err := r.Serve(); nil != err {
		return
	}
	<-shutdown
	r.Close()
	r.log.Info("RPC server stopped")
}

func (r *Listener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			r.log.Infof("rpc accept terminated: %s", err)
			return
		}
		if r.count.Increment() > r.maxConnections {
			r.count.Decrement()
			r.log.Warnf("connection limit reached, rejected: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		r.Lock()
		r.open[conn] = struct{}{}
		r.connections.Add(1)
		r.Unlock()

		go func() {
			defer r.connections.Done()
			r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			r.count.Decrement()

			r.Lock()
			delete(r.open, conn)
			r.Unlock()
		}()
	}
}
