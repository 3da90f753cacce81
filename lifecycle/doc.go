// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lifecycle - the asset state machine
//
// every asset is ACTIVE or INACTIVE.  create, and the new assets made
// by transform, split and group, start ACTIVE.  transform, split,
// group and inactivate retire an asset.  The only way back to ACTIVE
// is ungroup, and only for the components of a composite.
//
// operations run inside one storage transaction: all preconditions
// are checked, writes and journal events are staged, then everything
// is committed together.  Any error discards every staged write.
package lifecycle
