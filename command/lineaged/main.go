// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/lineaged/background"
	"github.com/bitmark-inc/lineaged/counter"
	"github.com/bitmark-inc/lineaged/lifecycle"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/membership"
	"github.com/bitmark-inc/lineaged/metrics"
	"github.com/bitmark-inc/lineaged/process"
	"github.com/bitmark-inc/lineaged/publish"
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/lineaged/rpc/certificate"
	"github.com/bitmark-inc/lineaged/rpc/listeners"
	"github.com/bitmark-inc/lineaged/rpc/server"
	"github.com/bitmark-inc/lineaged/storage"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// open the database
	log.Infof("database: %q", theConfiguration.Database.Name)
	database, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		exitwithstatus.Message("storage open error: %s", err)
	}
	defer database.Close()

	directory, err := membership.NewFromConfiguration(theConfiguration.Namespaces)
	if nil != err {
		log.Criticalf("membership error: %s", err)
		exitwithstatus.Message("membership error: %s", err)
	}
	log.Infof("namespaces: %v", directory.Namespaces())

	registry, err := process.NewFromConfiguration(theConfiguration.Processes)
	if nil != err {
		log.Criticalf("process registry error: %s", err)
		exitwithstatus.Message("process registry error: %s", err)
	}

	// metrics
	prometheusRegistry := prometheus.NewRegistry()
	prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	routerMetrics, err := metrics.New(prometheusRegistry)
	if nil != err {
		log.Criticalf("metrics error: %s", err)
		exitwithstatus.Message("metrics error: %s", err)
	}

	processes := background.Processes{}

	if "" != theConfiguration.Metrics.Listen {
		processes = append(processes, metrics.NewServer(logger.New("metrics"), theConfiguration.Metrics.Listen, prometheusRegistry))
	}

	// every committed record goes to the log and the optional broadcaster
	emitter := lineage.Multi{lineage.NewLogEmitter(logger.New("lineage"))}
	if len(theConfiguration.Publishing.Broadcast) > 0 {
		broadcaster, err := publish.New(logger.New("publish"), &theConfiguration.Publishing)
		if nil != err {
			log.Criticalf("publish error: %s", err)
			exitwithstatus.Message("publish error: %s", err)
		}
		emitter = append(emitter, broadcaster)
		processes = append(processes, broadcaster)
	}

	engine, err := lifecycle.New(logger.New("lifecycle"), lifecycle.Parameters{
		Database:   database,
		Membership: directory,
		Emitter:    emitter,
		Limits:     theConfiguration.Limits,
	})
	if nil != err {
		log.Criticalf("lifecycle error: %s", err)
		exitwithstatus.Message("lifecycle error: %s", err)
	}

	theRouter, err := router.New(logger.New("router"), engine, registry, routerMetrics)
	if nil != err {
		log.Criticalf("router error: %s", err)
		exitwithstatus.Message("router error: %s", err)
	}

	// client RPC
	rpcLog := logger.New("rpc")
	rpcCount := counter.Counter(0)
	rpcServer, err := server.Create(rpcLog, version, &rpcCount, engine, theRouter)
	if nil != err {
		exitwithstatus.Message("rpc server error: %s", err)
	}

	var tlsConfig *tls.Config
	if "" != theConfiguration.ClientRPC.Certificate {
		var fingerprint [32]byte
		tlsConfig, fingerprint, err = certificate.Get(rpcLog, "client_rpc", theConfiguration.ClientRPC.Certificate, theConfiguration.ClientRPC.PrivateKey)
		if nil != err {
			exitwithstatus.Message("rpc certificate error: %s", err)
		}
		log.Infof("rpc certificate fingerprint: %x", fingerprint)
	}

	listener, err := listeners.NewRPC(&theConfiguration.ClientRPC, rpcLog, &rpcCount, rpcServer, tlsConfig)
	if nil != err {
		exitwithstatus.Message("rpc listener error: %s", err)
	}
	processes = append(processes, listener)

	workers := background.Start(processes, nil)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	theRouter.Pause()
	workers.Stop()
}
