// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a lineaged
//
// tlsConfig nil selects a plain TCP connection
func NewClient(connect string, tlsConfig *tls.Config, verbose bool, handle io.Writer) (*Client, error) {
	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}

	var conn net.Conn
	var err error
	if nil == tlsConfig {
		conn, err = dialer.Dial("tcp", connect)
	} else {
		conn, err = tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	}
	if nil != err {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the lineaged connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
