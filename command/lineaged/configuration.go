// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/lineaged/configuration"
	"github.com/bitmark-inc/lineaged/lifecycle"
	"github.com/bitmark-inc/lineaged/membership"
	"github.com/bitmark-inc/lineaged/metrics"
	"github.com/bitmark-inc/lineaged/process"
	"github.com/bitmark-inc/lineaged/publish"
	"github.com/bitmark-inc/lineaged/rpc/listeners"
	"github.com/bitmark-inc/lineaged/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "lineage.leveldb"

	defaultPublicKeyFile   = "publish.public"
	defaultPrivateKeyFile  = "publish.private"
	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLogDirectory = "log"
	defaultLogFile      = "lineaged.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - where the leveldb files live
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string                              `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                              `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType                        `gluamapper:"database" json:"database"`
	Limits        lifecycle.Limits                    `gluamapper:"limits" json:"limits"`
	Namespaces    []membership.NamespaceConfiguration `gluamapper:"namespaces" json:"namespaces"`
	Processes     []process.Configuration             `gluamapper:"processes" json:"processes"`
	ClientRPC     listeners.RPCConfiguration          `gluamapper:"client_rpc" json:"client_rpc"`
	Publishing    publish.Configuration               `gluamapper:"publishing" json:"publishing"`
	Metrics       metrics.Configuration               `gluamapper:"metrics" json:"metrics"`
	Logging       logger.Configuration                `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Limits: lifecycle.DefaultLimits(),

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{&options.Database.Directory, &options.Logging.Directory} {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	// TLS and encryption need both halves of a key pair
	if ("" == options.ClientRPC.Certificate) != ("" == options.ClientRPC.PrivateKey) {
		return nil, fmt.Errorf("client_rpc: certificate and private_key must be set together")
	}
	if ("" == options.Publishing.PublicKey) != ("" == options.Publishing.PrivateKey) {
		return nil, fmt.Errorf("publishing: public_key and private_key must be set together")
	}

	return options, nil
}
