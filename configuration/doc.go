// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - run a Lua script and map the table it
// returns onto a configuration structure
//
// the script sees arg[0] as its own file name so paths can be made
// relative to it; values the script leaves out keep their defaults
package configuration
