// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/rpc/events"
)

// EventsData - the page of the journal to fetch
type EventsData struct {
	Namespace asset.Namespace
	Start     uint64
	Count     int
}

// ListEvents - read a page of committed lineage records
func (client *Client) ListEvents(eventsConfig *EventsData) (*events.ListReply, error) {
	arguments := events.ListArguments{
		Namespace: eventsConfig.Namespace,
		Start:     eventsConfig.Start,
		Count:     eventsConfig.Count,
	}

	client.printJson("Events Request", arguments)

	var reply events.ListReply
	if err := client.client.Call("Events.List", &arguments, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
