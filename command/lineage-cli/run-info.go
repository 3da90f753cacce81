// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lineaged/command/lineage-cli/rpccalls"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runPause(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Pause()
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runResume(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Resume()
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
