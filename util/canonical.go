// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/lineaged/fault"
)

// Connection - a validated IP address and port
type Connection struct {
	ip   net.IP
	port int
}

// NewConnection - parse an IP:Port string
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
func NewConnection(hostPort string) (*Connection, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return nil, fault.Detail(fault.InvalidIpAddress, "%q", hostPort)
	}

	ip := net.ParseIP(strings.TrimSpace(host))
	if nil == ip {
		return nil, fault.Detail(fault.InvalidIpAddress, "%q", hostPort)
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return nil, fault.Detail(fault.InvalidPortNumber, "%q", hostPort)
	}

	return &Connection{
		ip:   ip,
		port: numericPort,
	}, nil
}

// NewConnections - parse a list of IP:Port strings
func NewConnections(hostPorts []string) ([]*Connection, error) {
	if 0 == len(hostPorts) {
		return nil, fault.Detail(fault.MissingParameters, "no addresses")
	}
	c := make([]*Connection, len(hostPorts))
	for i, hostPort := range hostPorts {
		conn, err := NewConnection(hostPort)
		if nil != err {
			return nil, err
		}
		c[i] = conn
	}
	return c, nil
}

// CanonicalIPandPort - the address with an optional prefix such as
// "tcp://", and whether it is IPv6
func (conn *Connection) CanonicalIPandPort(prefix string) (string, bool) {
	port := strconv.Itoa(conn.port)
	if nil != conn.ip.To4() {
		return prefix + conn.ip.String() + ":" + port, false
	}
	return prefix + "[" + conn.ip.String() + "]:" + port, true
}

// CanonicalIPandPort - make an IP:Port string canonical
func CanonicalIPandPort(hostPort string) (string, error) {
	c, err := NewConnection(hostPort)
	if nil != err {
		return "", err
	}
	s, _ := c.CanonicalIPandPort("")
	return s, nil
}
