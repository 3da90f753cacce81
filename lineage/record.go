// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lineage

import (
	"encoding/json"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/util"
)

// Record - an event with its position in the journal
type Record struct {
	Namespace asset.Namespace `json:"namespace"`
	Sequence  uint64          `json:"sequence,string"`
	Timestamp time.Time       `json:"timestamp"`
	Kind      Kind            `json:"kind"`
	Event     Event           `json:"event"`
}

// Packed - packed records are just a byte slice
type Packed []byte

var encMode cbor.EncMode

func init() {
	m, err := cbor.CoreDetEncOptions().EncMode()
	if nil != err {
		panic(err)
	}
	encMode = m
}

// Pack - Varint64(kind) ++ Varint64(timestamp) ++ CBOR(event)
//
// namespace and sequence are carried by the journal key
func (r *Record) Pack() (Packed, error) {
	if nil == r.Event {
		return nil, fault.NotEventRecord
	}
	body, err := encMode.Marshal(r.Event)
	if nil != err {
		return nil, err
	}
	buffer := util.ToVarint64(uint64(r.Event.Kind()))
	buffer = util.AppendVarint64(buffer, uint64(r.Timestamp.UnixNano()))
	return append(buffer, body...), nil
}

// Unpack - recover the kind, timestamp and event
func (packed Packed) Unpack() (Kind, time.Time, Event, error) {
	kind, n := util.FromVarint64(packed)
	if 0 == n {
		return NullKind, time.Time{}, nil, fault.NotEventRecord
	}
	event := newEvent(Kind(kind))
	if nil == event {
		return NullKind, time.Time{}, nil, fault.Detail(fault.NotEventRecord, "kind: %d", kind)
	}
	nanoseconds, timeLength := util.FromVarint64(packed[n:])
	if 0 == timeLength {
		return NullKind, time.Time{}, nil, fault.NotEventRecord
	}
	n += timeLength

	if err := cbor.Unmarshal(packed[n:], event); nil != err {
		return NullKind, time.Time{}, nil, err
	}
	return Kind(kind), time.Unix(0, int64(nanoseconds)).UTC(), event, nil
}

// UnmarshalJSON - select the event type from the kind
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Namespace asset.Namespace `json:"namespace"`
		Sequence  uint64          `json:"sequence,string"`
		Timestamp time.Time       `json:"timestamp"`
		Kind      Kind            `json:"kind"`
		Event     json.RawMessage `json:"event"`
	}
	if err := json.Unmarshal(data, &raw); nil != err {
		return err
	}
	event := newEvent(raw.Kind)
	if nil == event {
		return fault.Detail(fault.NotEventRecord, "kind: %d", raw.Kind)
	}
	if err := json.Unmarshal(raw.Event, event); nil != err {
		return err
	}
	r.Namespace = raw.Namespace
	r.Sequence = raw.Sequence
	r.Timestamp = raw.Timestamp
	r.Kind = raw.Kind
	r.Event = event
	return nil
}
