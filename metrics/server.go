// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/logger"
)

const shutdownTimeout = 5 * time.Second

// Configuration - metrics section of the configuration file
type Configuration struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

// Server - HTTP endpoint serving /metrics, run as a background process
type Server struct {
	log    *logger.L
	server *http.Server
}

// NewServer - an endpoint for everything registered in gatherer
func NewServer(log *logger.L, listen string, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &Server{
		log: log,
		server: &http.Server{
			Addr:              listen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler - the HTTP handler, for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run - serve until shutdown
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Infof("starting metrics server: %s", s.server.Addr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := s.server.ListenAndServe()
		if nil != err && http.ErrServerClosed != err {
			s.log.Errorf("metrics server error: %s", err)
		}
	}()

	select {
	case <-shutdown:
	case <-done:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); nil != err {
		s.log.Errorf("metrics server shutdown error: %s", err)
	}
	<-done
	s.log.Info("metrics server stopped")
}
