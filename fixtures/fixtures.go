// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Namespace - the namespace most tests run in
const Namespace = asset.Namespace("supply-chain")

// SetupTestLogger - start a file logger under ./testing
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove ./testing
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Id - an identifier from a short readable name, panics on a bad name
func Id(name string) asset.Identifier {
	id, err := asset.IdentifierFromName(name)
	if nil != err {
		panic(fmt.Sprintf("fixture id: %q  error: %s", name, err))
	}
	return id
}

// Clock - a clock that advances one second per call
func Clock() func() time.Time {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}
