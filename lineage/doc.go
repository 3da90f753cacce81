// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lineage - the audit trail of lifecycle operations
//
// lineage edges are never stored as a graph, they only exist as
// events.  Events are staged into the journal in the same storage
// transaction as the asset writes that produced them, and after a
// successful commit are handed to the configured emitters.
//
// journal keys:
//
//   Varint64(length) ++ namespace ++ BigEndian(sequence)
//
// journal values:
//
//   Varint64(kind) ++ Varint64(unix nanoseconds) ++ CBOR(event)
package lineage
