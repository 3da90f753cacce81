// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/lineaged/asset"
)

type metadata struct {
	connect   string
	tlsConfig *tls.Config
	namespace asset.Namespace
	caller    string
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "lineage-cli"
	app.Usage = "submit processes to and query a lineaged"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " lineaged RPC `HOST:PORT`",
			EnvVar: "LINEAGED_CONNECT",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " connect using TLS",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: " do not verify the TLS certificate",
		},
		cli.StringFlag{
			Name:   "namespace, n",
			Value:  "",
			Usage:  " namespace `NAME` for asset commands",
			EnvVar: "LINEAGED_NAMESPACE",
		},
		cli.StringFlag{
			Name:   "caller, i",
			Value:  "",
			Usage:  " identity `ID` submitting requests",
			EnvVar: "LINEAGED_CALLER",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "submit",
			Usage:     "submit a process request",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "process, p",
					Value: "",
					Usage: "*process `ID`",
				},
				cli.StringFlag{
					Name:  "nature",
					Value: "",
					Usage: "*nature `ID`",
				},
				cli.StringFlag{
					Name:  "stage",
					Value: "",
					Usage: "*stage `ID`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: " asset to act on `ID`",
				},
				cli.StringFlag{
					Name:  "new-asset",
					Value: "",
					Usage: " identifier for a created asset `ID`",
				},
				cli.StringSliceFlag{
					Name:  "component",
					Usage: " component asset to group `ID` (repeatable)",
				},
				cli.StringFlag{
					Name:  "new-owner, o",
					Value: "",
					Usage: " identity to receive the asset `ID`",
				},
				cli.StringFlag{
					Name:  "amount",
					Value: "0",
					Usage: " quantity `COUNT`, zero leaves it unchanged",
				},
				cli.StringSliceFlag{
					Name:  "part",
					Usage: " split part amount `COUNT` (repeatable)",
				},
				cli.StringFlag{
					Name:  "location, l",
					Value: "",
					Usage: " physical location `TEXT`",
				},
				cli.StringSliceFlag{
					Name:  "hash",
					Usage: " data hash `HASH` (repeatable)",
				},
				cli.StringSliceFlag{
					Name:  "external",
					Usage: " external identifier `ID` (repeatable)",
				},
			},
			Action: runSubmit,
		},
		{
			Name:      "batch",
			Usage:     "submit requests from a JSON file as one unit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*JSON array of requests `FILE`, - for stdin",
				},
			},
			Action: runBatch,
		},
		{
			Name:      "get",
			Usage:     "show an asset and its lineage depth",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "status",
			Usage:     "show whether an asset exists and is active",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID`",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "events",
			Usage:     "list committed lineage records",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "start, s",
					Value: "0",
					Usage: " first sequence number `NUMBER`",
				},
				cli.StringFlag{
					Name:  "count",
					Value: "20",
					Usage: " maximum records to list `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:   "info",
			Usage:  "display lineaged info",
			Action: runInfo,
		},
		{
			Name:   "pause",
			Usage:  "stop lineaged accepting submissions",
			Action: runPause,
		},
		{
			Name:   "resume",
			Usage:  "allow lineaged to accept submissions",
			Action: runResume,
		},
		{
			Name:  "version",
			Usage: "display lineage-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		connect, err := checkConnect(c.GlobalString("connect"))
		if nil != err {
			return err
		}

		var tlsConfig *tls.Config
		if c.GlobalBool("tls") {
			tlsConfig = &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: c.GlobalBool("insecure"),
			}
		}

		if verbose {
			fmt.Fprintf(e, "connect: %s  TLS: %t\n", connect, nil != tlsConfig)
		}

		c.App.Metadata["config"] = &metadata{
			connect:   connect,
			tlsConfig: tlsConfig,
			namespace: asset.Namespace(c.GlobalString("namespace")),
			caller:    c.GlobalString("caller"),
			verbose:   verbose,
			e:         e,
			w:         w,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
