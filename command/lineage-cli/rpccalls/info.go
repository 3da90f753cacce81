// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lineaged/rpc/node"
)

// GetInfo - request status from lineaged
func (client *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := client.client.Call("Node.Info", node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Pause - stop lineaged accepting submissions
func (client *Client) Pause() (*node.ModeReply, error) {
	var reply node.ModeReply
	if err := client.client.Call("Node.Pause", node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Resume - allow submissions again
func (client *Client) Resume() (*node.ModeReply, error) {
	var reply node.ModeReply
	if err := client.client.Call("Node.Resume", node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
