// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identifier - generate asset identifiers that are unique
// within a namespace
//
// an identifier is the SHA3-256 digest of:
//
//   Varint64(length) ++ namespace
//   Varint64(count)
//   Varint64(length) ++ caller
//   Varint64(salt)
//
// count is taken from a namespace scoped Sequencer so namespaces never
// share an ordering, and salt defaults to the clock in nanoseconds.
package identifier
