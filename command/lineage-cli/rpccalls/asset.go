// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/rpc/assets"
)

// GetAsset - fetch an asset and its lineage depth
func (client *Client) GetAsset(ns asset.Namespace, id asset.Identifier) (*assets.GetReply, error) {
	arguments := assets.Arguments{
		Namespace: ns,
		Id:        id,
	}

	client.printJson("Asset Request", arguments)

	var reply assets.GetReply
	if err := client.client.Call("Assets.Get", &arguments, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// GetStatus - whether an asset exists and is active
func (client *Client) GetStatus(ns asset.Namespace, id asset.Identifier) (*assets.StatusReply, error) {
	arguments := assets.Arguments{
		Namespace: ns,
		Id:        id,
	}

	client.printJson("Status Request", arguments)

	var reply assets.StatusReply
	if err := client.client.Call("Assets.Status", &arguments, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
