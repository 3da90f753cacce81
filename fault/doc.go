// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Each error belongs to a class (exists, invalid, length, not found,
// permission, process) so callers can tell bad input from a refused
// caller from a precondition on stored state.  The offending values
// are attached with Detail, which keeps the original instance
// reachable through errors.Is
package fault
