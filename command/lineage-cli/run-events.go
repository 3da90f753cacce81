// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/lineaged/command/lineage-cli/rpccalls"
)

func runEvents(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	namespace, err := checkNamespace(m.namespace)
	if nil != err {
		return err
	}

	start, err := checkStart(c.String("start"))
	if nil != err {
		return err
	}

	count, err := checkRecordCount(c.String("count"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "start: %d\n", start)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	eventsConfig := &rpccalls.EventsData{
		Namespace: namespace,
		Start:     start,
		Count:     count,
	}

	response, err := client.ListEvents(eventsConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
