// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - the run state of the router
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

// Mode - type to hold the mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Normal
	Paused
	maximum
)

// Switch - the current mode, safe for concurrent use
type Switch struct {
	sync.RWMutex
	log  *logger.L
	mode Mode
}

// New - a switch that starts in Normal mode
func New(log *logger.L) *Switch {
	return &Switch{
		log:  log,
		mode: Normal,
	}
}

// Set - change mode
func (s *Switch) Set(mode Mode) {
	if mode >= Stopped && mode < maximum {
		s.Lock()
		s.mode = mode
		s.Unlock()

		s.log.Infof("set: %s", mode)
	} else {
		s.log.Errorf("ignore invalid set: %d", mode)
	}
}

// Is - detect mode
func (s *Switch) Is(mode Mode) bool {
	s.RLock()
	defer s.RUnlock()
	return mode == s.mode
}

// IsNot - detect mode
func (s *Switch) IsNot(mode Mode) bool {
	s.RLock()
	defer s.RUnlock()
	return mode != s.mode
}

// String - current mode as a string
func (s *Switch) String() string {
	s.RLock()
	defer s.RUnlock()
	return s.mode.String()
}

// String - current mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Normal:
		return "Normal"
	case Paused:
		return "Paused"
	default:
		return "*Unknown*"
	}
}
