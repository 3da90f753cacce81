// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/lineaged/rpc/transaction"
)

// Submit - send one process request
func (client *Client) Submit(request *router.Request) (*transaction.SubmitReply, error) {
	client.printJson("Submit Request", request)

	var reply transaction.SubmitReply
	if err := client.client.Call("Transaction.Submit", request, &reply); err != nil {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return &reply, nil
}

// SubmitBatch - send several requests to be applied together
func (client *Client) SubmitBatch(requests []router.Request) (*transaction.BatchReply, error) {
	arguments := transaction.BatchArguments{
		Requests: requests,
	}

	client.printJson("Batch Request", arguments)

	var reply transaction.BatchReply
	if err := client.client.Call("Transaction.SubmitBatch", &arguments, &reply); err != nil {
		return nil, err
	}

	client.printJson("Batch Reply", reply)

	return &reply, nil
}
