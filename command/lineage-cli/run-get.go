// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lineaged/command/lineage-cli/rpccalls"
)

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	namespace, err := checkNamespace(m.namespace)
	if nil != err {
		return err
	}

	id, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetAsset(namespace, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	namespace, err := checkNamespace(m.namespace)
	if nil != err {
		return err
	}

	id, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetStatus(namespace, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
