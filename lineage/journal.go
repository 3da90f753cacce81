// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lineage

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/storage"
)

// Journal - the persisted event stream
type Journal struct {
	events storage.Handle
	counts storage.Handle
}

// NewJournal - a journal over the event and event count pools
func NewJournal(events storage.Handle, counts storage.Handle) *Journal {
	return &Journal{
		events: events,
		counts: counts,
	}
}

func journalKey(ns asset.Namespace, sequence uint64) []byte {
	key := asset.NamespaceKey(ns)
	n := len(key)
	key = append(key, make([]byte, 8)...)
	binary.BigEndian.PutUint64(key[n:], sequence)
	return key
}

// Stage - number the events and stage them in trx
//
// sequence numbers start at 1 and are contiguous within a namespace
func (j *Journal) Stage(trx storage.Transaction, ns asset.Namespace, timestamp time.Time, events []Event) ([]Record, error) {
	countKey := asset.NamespaceKey(ns)
	sequence, _ := trx.GetN(j.counts, countKey)

	records := make([]Record, 0, len(events))
	for _, event := range events {
		sequence += 1
		r := Record{
			Namespace: ns,
			Sequence:  sequence,
			Timestamp: timestamp,
			Kind:      event.Kind(),
			Event:     event,
		}
		packed, err := r.Pack()
		if nil != err {
			return nil, err
		}
		trx.Put(j.events, journalKey(ns, sequence), packed)
		records = append(records, r)
	}
	if len(records) > 0 {
		trx.PutN(j.counts, countKey, sequence)
	}
	return records, nil
}

// Count - the number of committed records in a namespace
func (j *Journal) Count(ns asset.Namespace) uint64 {
	n, _ := j.counts.GetN(asset.NamespaceKey(ns))
	return n
}

// Fetch - committed records starting at a sequence number
//
// returns the records and the sequence to start the next fetch
func (j *Journal) Fetch(ns asset.Namespace, start uint64, count int) ([]Record, uint64, error) {
	if count <= 0 {
		return nil, start, fault.InvalidCount
	}
	if 0 == start {
		start = 1
	}

	prefix := asset.NamespaceKey(ns)
	cursor := j.events.NewFetchCursor().Within(prefix).Seek(journalKey(ns, start))
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, start, err
	}

	records := make([]Record, 0, len(elements))
	next := start
	for _, e := range elements {
		if len(e.Key) != len(prefix)+8 {
			return nil, start, fault.Detail(fault.NotEventRecord, "key: %x", e.Key)
		}
		sequence := binary.BigEndian.Uint64(e.Key[len(prefix):])
		kind, timestamp, event, err := Packed(e.Value).Unpack()
		if nil != err {
			return nil, start, err
		}
		records = append(records, Record{
			Namespace: ns,
			Sequence:  sequence,
			Timestamp: timestamp,
			Kind:      kind,
			Event:     event,
		})
		next = sequence + 1
	}
	return records, next, nil
}
