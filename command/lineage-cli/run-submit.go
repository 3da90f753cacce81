// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/lineaged/command/lineage-cli/rpccalls"
	"github.com/bitmark-inc/lineaged/router"
)

func runSubmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	namespace, err := checkNamespace(m.namespace)
	if nil != err {
		return err
	}

	caller, err := checkCaller(m.caller)
	if nil != err {
		return err
	}

	processId, err := checkProcessId(c.String("process"))
	if nil != err {
		return err
	}

	assetId, err := checkOptionalAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	newAssetId, err := checkOptionalAssetId(c.String("new-asset"))
	if nil != err {
		return err
	}

	componentIds, err := checkAssetIds(c.StringSlice("component"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}

	amounts, err := checkAmounts(c.StringSlice("part"))
	if nil != err {
		return err
	}

	request := &router.Request{
		Namespace:    namespace,
		Caller:       caller,
		ProcessId:    processId,
		NatureId:     c.String("nature"),
		StageId:      c.String("stage"),
		AssetId:      assetId,
		NewAssetId:   newAssetId,
		ComponentIds: componentIds,
		NewOwner:     c.String("new-owner"),
		Amount:       amount,
		Amounts:      amounts,
		Location:     c.String("location"),
		DataHashes:   c.StringSlice("hash"),
		ExternalIds:  c.StringSlice("external"),
	}

	if m.verbose {
		fmt.Fprintf(m.e, "namespace: %s\n", namespace)
		fmt.Fprintf(m.e, "process: %s\n", processId)
	}

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Submit(request)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
