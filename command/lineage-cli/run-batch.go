// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/lineaged/command/lineage-cli/rpccalls"
	"github.com/bitmark-inc/lineaged/router"
)

func runBatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkFileName(c.String("file"))
	if nil != err {
		return err
	}

	requests, err := readRequests(fileName)
	if nil != err {
		return err
	}

	// fill in the global namespace and caller where a request omits them
	for i := range requests {
		if "" == requests[i].Namespace {
			requests[i].Namespace = m.namespace
		}
		if "" == requests[i].Caller {
			requests[i].Caller = m.caller
		}
	}

	client, err := rpccalls.NewClient(m.connect, m.tlsConfig, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SubmitBatch(requests)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func readRequests(fileName string) ([]router.Request, error) {
	var r io.Reader = os.Stdin
	if "-" != fileName {
		f, err := os.Open(fileName)
		if nil != err {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	requests := []router.Request{}
	if err := json.NewDecoder(r).Decode(&requests); nil != err {
		return nil, err
	}
	return requests, nil
}
