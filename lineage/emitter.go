// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lineage

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

// Emitter - receives committed records, must not block
type Emitter interface {
	Emit(records []Record)
}

// Multi - send to several emitters in order
type Multi []Emitter

// Emit - implement Emitter
func (m Multi) Emit(records []Record) {
	for _, e := range m {
		if nil != e {
			e.Emit(records)
		}
	}
}

// LogEmitter - write records to a logger channel
type LogEmitter struct {
	log *logger.L
}

// NewLogEmitter - emitter that logs at info level
func NewLogEmitter(log *logger.L) *LogEmitter {
	return &LogEmitter{
		log: log,
	}
}

// Emit - implement Emitter
func (l *LogEmitter) Emit(records []Record) {
	for _, r := range records {
		l.log.Infof("%s[%d]: %s: %+v", r.Namespace, r.Sequence, r.Kind, r.Event)
	}
}

// Recorder - keeps every record in memory
type Recorder struct {
	sync.Mutex
	records []Record
}

// NewRecorder - an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit - implement Emitter
func (r *Recorder) Emit(records []Record) {
	r.Lock()
	r.records = append(r.records, records...)
	r.Unlock()
}

// Records - copy of everything recorded so far
func (r *Recorder) Records() []Record {
	r.Lock()
	defer r.Unlock()
	return append([]Record(nil), r.records...)
}

// Events - recorded events of one kind
func (r *Recorder) Events(kind Kind) []Event {
	r.Lock()
	defer r.Unlock()

	events := make([]Event, 0, len(r.records))
	for _, record := range r.records {
		if kind == record.Kind {
			events = append(events, record.Event)
		}
	}
	return events
}

// Reset - discard everything recorded
func (r *Recorder) Reset() {
	r.Lock()
	r.records = nil
	r.Unlock()
}
