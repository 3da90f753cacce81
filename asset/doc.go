// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - the asset record and its keyed store
//
// An asset is stored once per (namespace, identifier) and is only ever
// overwritten, never removed.  The Store does no validation; the
// lifecycle engine decides what may be written.
package asset
