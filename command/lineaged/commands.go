// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/lineaged/publish"
	"github.com/bitmark-inc/lineaged/rpc/certificate"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, defaultCertificateFile)
		privateKeyFilename := getFilenameWithDirectory(arguments, defaultKeyFile)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Generate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-publish-identity", "publish":
		publicKeyFilename := getFilenameWithDirectory(arguments, defaultPublicKeyFile)
		privateKeyFilename := getFilenameWithDirectory(arguments, defaultPrivateKeyFile)
		err := publish.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)       - display this message\n\n")
		fmt.Printf("  version                    (v)       - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)    - create private key in:  %q\n", "DIR/"+defaultKeyFile)
		fmt.Printf("                                         and the certificate in: %q\n", "DIR/"+defaultCertificateFile)
		fmt.Printf("\n")

		fmt.Printf("  gen-publish-identity [DIR] (publish) - create private key in: %q\n", "DIR/"+defaultPrivateKeyFile)
		fmt.Printf("                                         and the public key in: %q\n", "DIR/"+defaultPublicKeyFile)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)     - just run the program, same as no arguments\n")
		fmt.Printf("                                         for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)     - just check the configuration file\n")
		fmt.Printf("\n")
	}

	// indicate processing complete and prefor normal exit from main
	return true
}

// configuration commands
//
// these commands are run after the configuration has been read but
// before the database is opened
func processConfigCommand(arguments []string, options *Configuration) bool {
	if 0 == len(arguments) {
		return false
	}

	switch arguments[0] {
	case "config-test", "cfg":
		s, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		fmt.Printf("configuration: %s\n", s)
		return true
	}
	return false
}

// get the file name from the first argument, or the default in the
// current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) > 0 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
